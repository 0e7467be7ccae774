// Package sentiment labels translated comments with a VADER compound score.
package sentiment

import (
	"fmt"

	"github.com/jonreiter/govader"
	"github.com/rs/zerolog"

	"github.com/yousafroja/comment-analyzer/internal/comments"
)

// Compound score thresholds. Scores strictly between them are Neutral.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Scorer returns a compound polarity score in [-1, 1].
type Scorer interface {
	Compound(text string) float64
}

// VaderScorer scores text with the VADER lexicon.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer loads the VADER lexicon. Build it once per process.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound implements Scorer.
func (v *VaderScorer) Compound(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}

// Classify maps a compound score to a label.
func Classify(compound float64) comments.Sentiment {
	switch {
	case compound >= PositiveThreshold:
		return comments.Positive
	case compound <= NegativeThreshold:
		return comments.Negative
	default:
		return comments.Neutral
	}
}

// Analyzer is the sentiment stage.
type Analyzer struct {
	scorer Scorer
	logger *zerolog.Logger
}

// NewAnalyzer returns a stage backed by scorer.
func NewAnalyzer(scorer Scorer, logger *zerolog.Logger) *Analyzer {
	return &Analyzer{scorer: scorer, logger: logger}
}

// AnalyzeTable returns a copy of table with the sentiment column filled from the
// translated column.
func (a *Analyzer) AnalyzeTable(table comments.Table) (comments.Table, error) {
	if err := table.Require(comments.ColTranslated); err != nil {
		return comments.Table{}, fmt.Errorf("sentiment: %w", err)
	}

	texts := table.Translated()
	labels := make([]comments.Sentiment, len(texts))
	counts := make(map[comments.Sentiment]int, len(comments.Sentiments))

	for i, text := range texts {
		labels[i] = Classify(a.scorer.Compound(text))
		counts[labels[i]]++
	}

	a.logger.Info().
		Int("positive", counts[comments.Positive]).
		Int("negative", counts[comments.Negative]).
		Int("neutral", counts[comments.Neutral]).
		Msg("Sentiment analysis finished")

	return table.WithSentiment(labels)
}
