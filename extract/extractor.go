// Package extract turns free-text recruiter queries into structured
// requirement fragments.
package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/talentmatch/backend/models"
)

// Extractor is the collaborator interface consumed by the progressive
// filter. Implementations must tolerate ambiguous input: when nothing
// can be extracted, return an empty fragment rather than an error.
type Extractor interface {
	Extract(ctx context.Context, query string) (models.RequirementFragment, error)
}

// Chain tries extractors in order and returns the first non-error,
// non-empty fragment. It lets an LLM-backed extractor degrade to the
// deterministic keyword extractor when the model is unreachable.
type Chain struct {
	extractors []Extractor
	logger     *zap.SugaredLogger
}

// NewChain builds an extractor chain. Order matters: earlier extractors win.
func NewChain(logger *zap.SugaredLogger, extractors ...Extractor) *Chain {
	return &Chain{extractors: extractors, logger: logger}
}

func (c *Chain) Extract(ctx context.Context, query string) (models.RequirementFragment, error) {
	for i, ex := range c.extractors {
		frag, err := ex.Extract(ctx, query)
		if err != nil {
			c.logger.Warnw("extractor failed, trying next", "position", i, "error", err)
			continue
		}
		if !frag.IsEmpty() {
			return frag, nil
		}
	}
	// Degraded: no extractor produced constraints. Not an error.
	return models.RequirementFragment{RawQuery: query}, nil
}
