// Package report renders an analysis for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/yousafroja/comment-analyzer/internal/comments"
	"github.com/yousafroja/comment-analyzer/internal/pipeline"
)

// MaxSuggestions is how many suggestions a report shows.
const MaxSuggestions = 5

const commentWidth = 60

// Options narrows the comments listed in a report.
type Options struct {
	Search    string
	Sentiment string
}

// Report is the presentation view of one analysis.
type Report struct {
	RunID          string                    `json:"run_id"`
	Input          string                    `json:"input"`
	Total          int                       `json:"total_comments"`
	Distribution   []comments.SentimentShare `json:"sentiment_distribution"`
	Suggestions    []string                  `json:"top_suggestions"`
	Comments       comments.Table            `json:"comments"`
	Summary        string                    `json:"summary,omitempty"`
	SummaryError   string                    `json:"summary_error,omitempty"`
	SummarySkipped bool                      `json:"summary_skipped"`
}

// Build derives the report for a with opts applied to the comment list.
func Build(a *pipeline.Analysis, opts Options) Report {
	distribution := a.Table.SentimentDistribution()
	if distribution == nil {
		distribution = []comments.SentimentShare{}
	}

	return Report{
		RunID:          a.RunID,
		Input:          a.Input,
		Total:          a.Table.Len(),
		Distribution:   distribution,
		Suggestions:    TopSuggestions(a.Suggestions),
		Comments:       a.Table.Filter(opts.Search, opts.Sentiment),
		Summary:        a.Summary,
		SummaryError:   a.SummaryError,
		SummarySkipped: a.SummarySkipped,
	}
}

// TopSuggestions returns the first MaxSuggestions entries, never nil.
func TopSuggestions(suggestions []string) []string {
	n := min(len(suggestions), MaxSuggestions)

	out := make([]string, n)
	copy(out, suggestions[:n])

	return out
}

// WriteJSON encodes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

// WriteText renders r as terminal tables.
func WriteText(w io.Writer, r Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s: %d comments analyzed for %s\n\n", r.RunID, r.Total, r.Input)

	b.WriteString("Sentiment distribution\n")
	b.WriteString(renderDistribution(r.Distribution))
	b.WriteString("\n\n")

	b.WriteString("Top viewer suggestions\n")
	if len(r.Suggestions) == 0 {
		b.WriteString("No suggestions found.\n")
	} else {
		for i, s := range r.Suggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Comments (%d shown)\n", r.Comments.Len())
	b.WriteString(renderComments(r.Comments))
	b.WriteString("\n\n")

	b.WriteString("Summary\n")
	switch {
	case r.SummarySkipped:
		b.WriteString("Summary skipped: no summarization model configured.\n")
	default:
		b.WriteString(r.Summary)
		b.WriteString("\n")
		if r.SummaryError != "" {
			fmt.Fprintf(&b, "(%s)\n", r.SummaryError)
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func renderDistribution(shares []comments.SentimentShare) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Sentiment", "Count", "Percent"})

	for _, s := range shares {
		tw.AppendRow(table.Row{string(s.Sentiment), strconv.Itoa(s.Count), fmt.Sprintf("%.1f%%", s.Percent)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func renderComments(t comments.Table) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "User", "Date", "Sentiment", "Comment", "Translated"})

	for i, r := range t.Records() {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), r.UserName, r.Date, string(r.Sentiment), r.Comment, r.Translated})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, WidthMax: commentWidth},
		{Number: 6, WidthMax: commentWidth},
	})

	return tw.Render()
}
