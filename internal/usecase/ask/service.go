// Package ask orchestrates the question-answering pipeline: intent detection,
// entity resolution, retrieval planning, context assembly, generation, and
// answer extraction.
package ask

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/usecase/answer"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/usecase/evidence"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/usecase/intent"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/usecase/plan"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/usecase/prompt"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/usecase/roster"
)

// Service runs the full pipeline for one question at a time. All intermediate
// state is request-scoped; the only shared data is the immutable roster.
type Service struct {
	store      Store
	embed      domain.Embedder
	generate   domain.Generator
	players    []domain.Player
	rules      intent.Rules
	aliases    []roster.Alias
	teamTokens []string
	now        func() time.Time
	logger     *zap.Logger
}

// New creates the pipeline service. The roster is loaded once at startup and
// never mutated afterwards.
func New(store Store, embed domain.Embedder, generate domain.Generator, players []domain.Player, logger *zap.Logger) *Service {
	return &Service{
		store:      store,
		embed:      embed,
		generate:   generate,
		players:    players,
		rules:      intent.DefaultRules(),
		aliases:    roster.DefaultAliases(),
		teamTokens: answer.TeamTokens(),
		now:        time.Now,
		logger:     logger,
	}
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// retrieval is the request-scoped state carried between pipeline stages.
type retrieval struct {
	intent  domain.Intent
	match   *domain.EntityMatch
	plan    domain.RetrievalPlan
	games   []domain.GameRow
	players []domain.PlayerStatRow
	average *domain.SeasonAverage
	champ   *domain.TeamRecord
	reply   string
}

// Ask answers a structured question: the declared return schema drives the
// dependent fetches and the typed extraction of the reply.
func (s *Service) Ask(ctx context.Context, q domain.Question) (domain.AnswerResult, error) {
	r, err := s.run(ctx, q.Text, q.Return, false)
	if err != nil {
		return nil, err
	}

	result := answer.Extract(r.reply, q.Return, r.games, r.players, s.teamTokens)
	result[domain.EvidenceField] = evidence.Build(r.games, r.players, r.match)
	return result, nil
}

// Chat answers a free-form question and returns the raw model reply with
// evidence references.
func (s *Service) Chat(ctx context.Context, text string) (domain.Answer, error) {
	r, err := s.run(ctx, text, nil, true)
	if err != nil {
		return domain.Answer{}, err
	}

	return domain.Answer{
		ID:       uuid.NewString(),
		Text:     r.reply,
		Evidence: evidence.Build(r.games, r.players, r.match),
	}, nil
}

// run executes detection, planning, retrieval, and generation. Empty fetches
// degrade to empty collections; store and model-service failures abort the
// question, since no answer can be trusted without retrieved context.
func (s *Service) run(ctx context.Context, text string, schema domain.ReturnSchema, alwaysStats bool) (*retrieval, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyQuestion
	}

	r := &retrieval{
		intent: intent.Detect(text, s.now(), s.rules),
		match:  roster.Resolve(text, s.players, s.aliases),
	}
	r.plan = plan.Build(r.intent, r.match, schema)
	if alwaysStats {
		// Free-form questions have no schema; fetch stats whenever games are
		// found so the model sees the full picture.
		r.plan.NeedsPlayers = true
	}

	s.logger.Debug("retrieval planned",
		zap.String("strategy", string(r.plan.Strategy)),
		zap.Int("limit", r.plan.Limit),
		zap.Bool("descending", r.plan.Descending),
		zap.Int("year_filter", r.plan.Year()),
		zap.String("date_filter", r.plan.DateFilter),
		zap.Int64("player_id", r.plan.PlayerID),
	)

	if err := s.fetchGames(ctx, text, r); err != nil {
		return nil, err
	}
	if err := s.fetchDependents(ctx, r); err != nil {
		return nil, err
	}

	instruction := prompt.Instruction(s.now(), r.intent, r.match != nil, r.plan.Descending)
	if schema != nil {
		instruction += "\n\n" + prompt.Guidance(schema)
	}
	assembled := prompt.Assemble(prompt.Input{
		Intent:        r.intent,
		Entity:        r.match,
		Games:         r.games,
		Players:       r.players,
		SeasonAverage: r.average,
		Champion:      r.champ,
	})

	gen, err := s.generate.Generate(ctx, prompt.Render(instruction, assembled, text))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	r.reply = gen.Text

	return r, nil
}

// fetchGames executes the plan's primary fetch.
func (s *Service) fetchGames(ctx context.Context, text string, r *retrieval) error {
	p := r.plan
	var err error

	switch p.Strategy {
	case domain.StrategyAggregate:
		r.champ, err = s.store.TopTeamByWins(ctx, p.YearFilter)
		if err != nil {
			return fmt.Errorf("top team by wins: %w", err)
		}
		if r.champ == nil {
			return nil
		}
		r.games, err = s.store.GamesWonByTeam(ctx, r.champ.TeamID, p.YearFilter, p.Limit)
		if err != nil {
			return fmt.Errorf("games won by team: %w", err)
		}

	case domain.StrategyEntityScoped:
		r.games, err = s.store.GamesByPlayer(ctx, p.PlayerID, p.YearFilter, p.Descending, p.Limit)
		if err != nil {
			return fmt.Errorf("games by player: %w", err)
		}

	case domain.StrategyRecordLookup:
		r.games, err = s.store.GamesByRecency(ctx, p.YearFilter, p.DateFilter, p.Limit)
		if err != nil {
			return fmt.Errorf("recent games: %w", err)
		}

	default:
		var emb domain.EmbeddingResult
		emb, err = s.embed.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("embed question: %w", err)
		}
		r.games, err = s.store.GamesBySimilarity(ctx, emb.Embedding, p.YearFilter, p.DateFilter, p.Limit)
		if err != nil {
			return fmt.Errorf("games by similarity: %w", err)
		}
	}

	return nil
}

// fetchDependents runs the secondary fetches scoped to the primary game set.
func (s *Service) fetchDependents(ctx context.Context, r *retrieval) error {
	if len(r.games) == 0 {
		return nil
	}
	p := r.plan

	if p.Strategy == domain.StrategyEntityScoped && p.NeedsSeasonAverage {
		avg, err := s.store.SeasonAverage(ctx, p.PlayerID, p.YearFilter)
		if err != nil {
			return fmt.Errorf("season average: %w", err)
		}
		r.average = avg
	}

	if !p.NeedsPlayers {
		return nil
	}

	ids := make([]int64, len(r.games))
	for i, g := range r.games {
		ids[i] = g.ID
	}

	stats, err := s.store.PlayerStatsForGames(ctx, ids, p.PlayerID, p.Descending, p.PlayerStatsLimit)
	if err != nil {
		return fmt.Errorf("player stats: %w", err)
	}
	r.players = stats
	return nil
}
