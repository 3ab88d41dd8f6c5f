package ask

import (
	"context"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

// Store defines the data-fetch contract the pipeline plans against.
// Implementations return rows in the requested order; empty results are not
// errors.
type Store interface {
	// GamesBySimilarity ranks games by vector distance to the question
	// embedding, honoring optional year/date pre-filters.
	GamesBySimilarity(ctx context.Context, vec []float32, year *int, date string, limit int) ([]domain.GameRow, error)

	// GamesByRecency fetches the most recent games by timestamp, descending.
	GamesByRecency(ctx context.Context, year *int, date string, limit int) ([]domain.GameRow, error)

	// GamesByPlayer fetches games the player appeared in, ascending or
	// descending by timestamp.
	GamesByPlayer(ctx context.Context, playerID int64, year *int, descending bool, limit int) ([]domain.GameRow, error)

	// TopTeamByWins returns the team with the most recorded wins within the
	// optional year filter, or nil when no games match.
	TopTeamByWins(ctx context.Context, year *int) (*domain.TeamRecord, error)

	// GamesWonByTeam fetches games the team won, most recent first.
	GamesWonByTeam(ctx context.Context, teamID int64, year *int, limit int) ([]domain.GameRow, error)

	// PlayerStatsForGames fetches box scores scoped to the given game ids.
	// With a player id the rows follow game chronology; with playerID == 0 it
	// returns top performers ordered by points, rebounds, assists descending.
	PlayerStatsForGames(ctx context.Context, gameIDs []int64, playerID int64, descending bool, limit int) ([]domain.PlayerStatRow, error)

	// SeasonAverage computes the per-entity aggregate within the optional
	// year filter, or nil when the player has no matching games.
	SeasonAverage(ctx context.Context, playerID int64, year *int) (*domain.SeasonAverage, error)
}
