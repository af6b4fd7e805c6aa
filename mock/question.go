package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.QuestionGenerator = (*QuestionGenerator)(nil)

// QuestionGenerator is a mock implementation of docsearch.QuestionGenerator.
type QuestionGenerator struct {
	GenerateFn func(ctx context.Context, chapter string, section docsearch.PageSection) ([]docsearch.Question, error)
}

func (g *QuestionGenerator) Generate(ctx context.Context, chapter string, section docsearch.PageSection) ([]docsearch.Question, error) {
	return g.GenerateFn(ctx, chapter, section)
}
