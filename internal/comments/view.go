package comments

import (
	"regexp"
	"strings"
)

// AllSentiments is the filter value that disables sentiment filtering.
const AllSentiments = "All Sentiments"

// SentimentShare is one slice of the sentiment distribution.
type SentimentShare struct {
	Sentiment Sentiment `json:"sentiment"`
	Count     int       `json:"count"`
	Percent   float64   `json:"percent"`
}

// SentimentDistribution counts rows per label, in Sentiments order, skipping labels
// with no rows. It returns nil when the sentiment column is absent or the table is empty.
func (t Table) SentimentDistribution() []SentimentShare {
	if !t.Has(ColSentiment) || len(t.records) == 0 {
		return nil
	}

	counts := make(map[Sentiment]int, len(Sentiments))
	for _, r := range t.records {
		counts[r.Sentiment]++
	}

	total := float64(len(t.records))
	shares := make([]SentimentShare, 0, len(Sentiments))

	for _, label := range Sentiments {
		n := counts[label]
		if n == 0 {
			continue
		}

		shares = append(shares, SentimentShare{
			Sentiment: label,
			Count:     n,
			Percent:   float64(n) * 100 / total,
		})
	}

	return shares
}

// Filter keeps rows whose comment matches query, a case-insensitive regular
// expression, and, unless sentiment is empty or AllSentiments, whose label equals
// sentiment. A query that does not compile is matched as a plain substring. Order and
// columns are preserved.
func (t Table) Filter(query, sentiment string) Table {
	match := queryMatcher(query)
	bySentiment := sentiment != "" && sentiment != AllSentiments

	kept := make([]Record, 0, len(t.records))

	for _, r := range t.records {
		if !match(r.Comment) {
			continue
		}

		if bySentiment && string(r.Sentiment) != sentiment {
			continue
		}

		kept = append(kept, r.clone())
	}

	return Table{records: kept, columns: t.columns.with()}
}

func queryMatcher(query string) func(string) bool {
	if query == "" {
		return func(string) bool { return true }
	}

	if re, err := regexp.Compile("(?i)" + query); err == nil {
		return re.MatchString
	}

	lowered := strings.ToLower(query)

	return func(s string) bool {
		return strings.Contains(strings.ToLower(s), lowered)
	}
}
