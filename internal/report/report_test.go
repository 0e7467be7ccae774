package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yousafroja/comment-analyzer/internal/comments"
	"github.com/yousafroja/comment-analyzer/internal/pipeline"
)

func sampleAnalysis(t *testing.T) *pipeline.Analysis {
	t.Helper()

	tbl := comments.NewTable([]comments.Record{
		{Comment: "Loved it", UserName: "ana", Date: "2024-05-01T10:00:00Z"},
		{Comment: "Terrible audio", UserName: "bo", Date: "2024-05-02T10:00:00Z"},
		{Comment: "You should cover generics", UserName: "cy", Date: "2024-05-03T10:00:00Z"},
	})

	tbl, err := tbl.WithTranslated(tbl.Comments())
	require.NoError(t, err)

	tbl, err = tbl.WithSentiment([]comments.Sentiment{comments.Positive, comments.Negative, comments.Neutral})
	require.NoError(t, err)

	return &pipeline.Analysis{
		RunID:       "run-1",
		Input:       "dQw4w9WgXcQ",
		Table:       tbl,
		Suggestions: []string{"a", "b", "c", "d", "e", "f", "g"},
		Summary:     "Mixed feelings about the audio.",
	}
}

func TestTopSuggestions(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"under limit", []string{"a", "b"}, []string{"a", "b"}},
		{"over limit", []string{"a", "b", "c", "d", "e", "f"}, []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopSuggestions(tt.in))
		})
	}
}

func TestBuild_AppliesFilter(t *testing.T) {
	r := Build(sampleAnalysis(t), Options{Search: "AUDIO"})

	assert.Equal(t, 3, r.Total)
	assert.Len(t, r.Distribution, 3)
	assert.Len(t, r.Suggestions, MaxSuggestions)
	require.Equal(t, 1, r.Comments.Len())
	assert.Equal(t, "Terrible audio", r.Comments.Record(0).Comment)

	r = Build(sampleAnalysis(t), Options{Sentiment: string(comments.Positive)})
	require.Equal(t, 1, r.Comments.Len())
	assert.Equal(t, "Loved it", r.Comments.Record(0).Comment)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Build(sampleAnalysis(t), Options{})))

	var decoded struct {
		RunID        string `json:"run_id"`
		Distribution []struct {
			Sentiment string `json:"sentiment"`
			Count     int    `json:"count"`
		} `json:"sentiment_distribution"`
		Suggestions []string         `json:"top_suggestions"`
		Comments    []map[string]any `json:"comments"`
		Summary     string           `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "run-1", decoded.RunID)
	assert.Len(t, decoded.Distribution, 3)
	assert.Len(t, decoded.Suggestions, MaxSuggestions)
	assert.Len(t, decoded.Comments, 3)
	assert.Equal(t, "Mixed feelings about the audio.", decoded.Summary)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Build(sampleAnalysis(t), Options{})))

	out := buf.String()
	assert.Contains(t, out, "3 comments analyzed")
	assert.Contains(t, out, "Positive")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, "1. a")
	assert.NotContains(t, out, "6. f")
	assert.Contains(t, out, "Terrible audio")
	assert.Contains(t, out, "Mixed feelings about the audio.")
}

func TestWriteText_Empty(t *testing.T) {
	a := &pipeline.Analysis{RunID: "run-2", Table: comments.NewTable(nil), SummarySkipped: true}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Build(a, Options{})))

	assert.Contains(t, buf.String(), "No suggestions found.")
	assert.Contains(t, buf.String(), "Summary skipped")
}

func TestWriteText_SummaryError(t *testing.T) {
	a := sampleAnalysis(t)
	a.Summary = "Error generating summary."
	a.SummaryError = "gemini GenerateContent failed: 503"

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Build(a, Options{})))

	assert.Contains(t, buf.String(), "Error generating summary.")
	assert.Contains(t, buf.String(), "(gemini GenerateContent failed: 503)")
	assert.Contains(t, buf.String(), "Terrible audio", "comments are still reported")
}
