// Package batch runs a questions file through the answering pipeline and
// writes an answers file.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

// Item is one output entry pairing a question id with its result.
type Item struct {
	ID     int                 `json:"id"`
	Result domain.AnswerResult `json:"result"`
}

// Runner processes questions in input order. A question that fails is logged
// and omitted from the output so the answers file never carries partial
// results.
type Runner struct {
	ask    Asker
	logger *zap.Logger
}

// New creates a batch runner.
func New(ask Asker, logger *zap.Logger) *Runner {
	return &Runner{ask: ask, logger: logger}
}

// Run reads the questions file, answers each question and writes the answers
// file. Returns the number of answered questions.
func (r *Runner) Run(ctx context.Context, inputPath, outputPath string) (int, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("read questions %s: %w", inputPath, err)
	}

	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return 0, fmt.Errorf("parse questions %s: %w", inputPath, err)
	}

	runID := uuid.NewString()
	logger := r.logger.With(zap.String("run_id", runID))
	logger.Info("batch run started",
		zap.String("input", inputPath),
		zap.Int("questions", len(questions)),
	)

	items := r.Process(ctx, questions, logger)

	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal answers: %w", err)
	}
	if err := os.WriteFile(outputPath, append(out, '\n'), 0o644); err != nil {
		return 0, fmt.Errorf("write answers %s: %w", outputPath, err)
	}

	logger.Info("batch run finished",
		zap.String("output", outputPath),
		zap.Int("answered", len(items)),
		zap.Int("skipped", len(questions)-len(items)),
	)
	return len(items), nil
}

// Process answers the questions in order, skipping failures.
func (r *Runner) Process(ctx context.Context, questions []domain.Question, logger *zap.Logger) []Item {
	items := make([]Item, 0, len(questions))
	for _, q := range questions {
		result, err := r.ask.Ask(ctx, q)
		if err != nil {
			logger.Warn("question failed, skipping",
				zap.Int("id", q.ID),
				zap.String("question", q.Text),
				zap.Error(err),
			)
			continue
		}
		items = append(items, Item{ID: q.ID, Result: result})
	}
	return items
}
