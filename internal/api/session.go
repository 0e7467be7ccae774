package api

import (
	"context"
	"sync"

	"github.com/yousafroja/comment-analyzer/internal/apperrors"
	"github.com/yousafroja/comment-analyzer/internal/pipeline"
)

// Runner executes one analysis.
type Runner interface {
	Run(ctx context.Context, input string, maxComments int) (*pipeline.Analysis, error)
}

// Session runs analyses one at a time and keeps the latest result in memory.
type Session struct {
	runner      Runner
	maxComments int

	runMu sync.Mutex

	mu     sync.RWMutex
	latest *pipeline.Analysis
}

// NewSession returns a Session using maxComments when a request does not set a limit.
func NewSession(runner Runner, maxComments int) *Session {
	return &Session{runner: runner, maxComments: maxComments}
}

// Analyze runs the pipeline and stores the result as the latest analysis. Concurrent
// calls wait for each other. A failed run leaves the previous analysis in place.
func (s *Session) Analyze(ctx context.Context, input string, maxComments int) (*pipeline.Analysis, error) {
	if maxComments <= 0 {
		maxComments = s.maxComments
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	analysis, err := s.runner.Run(ctx, input, maxComments)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latest = analysis
	s.mu.Unlock()

	return analysis, nil
}

// Latest returns the most recent analysis or apperrors.ErrNoAnalysis.
func (s *Session) Latest() (*pipeline.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return nil, apperrors.ErrNoAnalysis
	}

	return s.latest, nil
}
