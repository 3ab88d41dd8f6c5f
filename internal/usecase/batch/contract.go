package batch

import (
	"context"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

// Asker answers one schema-driven question (ISP).
type Asker interface {
	Ask(ctx context.Context, q domain.Question) (domain.AnswerResult, error)
}
