package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yousafroja/comment-analyzer/internal/apperrors"
	"github.com/yousafroja/comment-analyzer/internal/comments"
	"github.com/yousafroja/comment-analyzer/internal/pipeline"
	"github.com/yousafroja/comment-analyzer/internal/report"
)

// AnalysisHandler handles analysis endpoints
type AnalysisHandler struct {
	session *Session
	log     zerolog.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(session *Session, log zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		session: session,
		log:     log.With().Str("handler", "analysis").Logger(),
	}
}

type analyzeRequest struct {
	URL         string `json:"url"`
	MaxComments int    `json:"max_comments,omitempty"`
}

// Analyze handles POST /api/v1/analyze
// Runs the pipeline synchronously and returns the full report
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	if req.MaxComments < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_comments must not be negative"})
		return
	}

	// A client that disconnects must not cut the run short and leave a partial analysis.
	ctx := context.WithoutCancel(c.Request.Context())

	analysis, err := h.session.Analyze(ctx, req.URL, req.MaxComments)
	if err != nil {
		h.log.Error().Err(err).Str("url", req.URL).Msg("Analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report.Build(analysis, report.Options{}))
}

// Comments handles GET /api/v1/comments?q=...&sentiment=...
func (h *AnalysisHandler) Comments(c *gin.Context) {
	analysis, ok := h.latest(c)
	if !ok {
		return
	}

	sentiment := c.Query("sentiment")
	if sentiment != "" && sentiment != comments.AllSentiments {
		if _, valid := comments.ParseSentiment(sentiment); !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sentiment must be one of: Positive, Negative, Neutral, All Sentiments"})
			return
		}
	}

	filtered := analysis.Table.Filter(c.Query("q"), sentiment)

	c.JSON(http.StatusOK, gin.H{
		"run_id":   analysis.RunID,
		"count":    filtered.Len(),
		"comments": filtered,
	})
}

// Sentiment handles GET /api/v1/sentiment
func (h *AnalysisHandler) Sentiment(c *gin.Context) {
	analysis, ok := h.latest(c)
	if !ok {
		return
	}

	distribution := analysis.Table.SentimentDistribution()
	if distribution == nil {
		distribution = []comments.SentimentShare{}
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":       analysis.RunID,
		"total":        analysis.Table.Len(),
		"distribution": distribution,
	})
}

// Suggestions handles GET /api/v1/suggestions
func (h *AnalysisHandler) Suggestions(c *gin.Context) {
	analysis, ok := h.latest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":      analysis.RunID,
		"suggestions": analysis.Suggestions,
		"top":         report.TopSuggestions(analysis.Suggestions),
	})
}

// Summary handles GET /api/v1/summary
func (h *AnalysisHandler) Summary(c *gin.Context) {
	analysis, ok := h.latest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":          analysis.RunID,
		"summary":         analysis.Summary,
		"summary_skipped": analysis.SummarySkipped,
		"summary_error":   analysis.SummaryError,
	})
}

func (h *AnalysisHandler) latest(c *gin.Context) (*pipeline.Analysis, bool) {
	analysis, err := h.session.Latest()
	if errors.Is(err, apperrors.ErrNoAnalysis) {
		c.JSON(http.StatusConflict, gin.H{"error": "no analysis has been run yet"})
		return nil, false
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	return analysis, true
}
