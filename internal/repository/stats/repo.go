// Package stats is the PostgreSQL read model for games, box scores and
// the player roster. Game embeddings are stored in a pgvector column on
// game_details and ranked with the L2 distance operator.
package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

const gameSelect = `SELECT g.game_id, g.game_timestamp,
       ht.city || ' ' || ht.name AS home_team,
       at.city || ' ' || at.name AS away_team,
       g.home_points, g.away_points,
       CASE WHEN g.home_points > g.away_points THEN ht.city || ' ' || ht.name
            ELSE at.city || ' ' || at.name END AS winner
FROM game_details g
JOIN teams ht ON g.home_team_id = ht.team_id
JOIN teams at ON g.away_team_id = at.team_id
`

const statSelect = `SELECT p.game_id, p.person_id,
       pl.first_name || ' ' || pl.last_name AS player_name,
       p.points, p.offensive_reb + p.defensive_reb AS rebounds, p.assists,
       t.city || ' ' || t.name AS team_name,
       CASE WHEN g.home_team_id = p.team_id THEN at.city || ' ' || at.name
            ELSE ht.city || ' ' || ht.name END AS opponent,
       g.game_timestamp
FROM player_box_scores p
JOIN players pl ON p.person_id = pl.player_id
JOIN teams t ON p.team_id = t.team_id
JOIN game_details g ON p.game_id = g.game_id
JOIN teams ht ON g.home_team_id = ht.team_id
JOIN teams at ON g.away_team_id = at.team_id
`

// Repo implements the retrieval store on a pgx connection pool.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a stats repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Roster returns all known players ordered by id.
func (r *Repo) Roster(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT player_id, first_name, last_name FROM players ORDER BY player_id")
	if err != nil {
		return nil, storeErr("load roster", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName); err != nil {
			return nil, storeErr("scan player", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate roster", err)
	}
	return players, nil
}

// GamesBySimilarity ranks games by embedding distance to the question vector.
func (r *Repo) GamesBySimilarity(
	ctx context.Context, vec []float32, year *int, date string, limit int,
) ([]domain.GameRow, error) {
	f := newFilter(pgvector.NewVector(vec), limit)
	f.temporal(year, date)

	query := gameSelect + f.whereSQL() +
		" ORDER BY g.embedding <-> $1 LIMIT $2"
	return r.queryGames(ctx, "similarity games", query, f.args)
}

// GamesByRecency returns the latest games matching the temporal filters.
func (r *Repo) GamesByRecency(
	ctx context.Context, year *int, date string, limit int,
) ([]domain.GameRow, error) {
	f := newFilter(limit)
	f.temporal(year, date)

	query := gameSelect + f.whereSQL() +
		" ORDER BY g.game_timestamp DESC LIMIT $1"
	return r.queryGames(ctx, "recent games", query, f.args)
}

// GamesByPlayer returns games the player appeared in, oldest first unless
// descending is set.
func (r *Repo) GamesByPlayer(
	ctx context.Context, playerID int64, year *int, descending bool, limit int,
) ([]domain.GameRow, error) {
	f := newFilter(playerID, limit)
	f.conds = append(f.conds, "p.person_id = $1")
	if year != nil {
		f.cond("EXTRACT(YEAR FROM g.game_timestamp::timestamp) = %s", *year)
	}

	query := `SELECT DISTINCT g.game_id, g.game_timestamp,
       ht.city || ' ' || ht.name AS home_team,
       at.city || ' ' || at.name AS away_team,
       g.home_points, g.away_points,
       CASE WHEN g.home_points > g.away_points THEN ht.city || ' ' || ht.name
            ELSE at.city || ' ' || at.name END AS winner
FROM game_details g
JOIN teams ht ON g.home_team_id = ht.team_id
JOIN teams at ON g.away_team_id = at.team_id
JOIN player_box_scores p ON g.game_id = p.game_id
` + f.whereSQL() +
		" ORDER BY g.game_timestamp " + orderDirection(descending) + " LIMIT $2"
	return r.queryGames(ctx, "player games", query, f.args)
}

// TopTeamByWins returns the team with the most wins, or nil when no games
// match the year filter.
func (r *Repo) TopTeamByWins(ctx context.Context, year *int) (*domain.TeamRecord, error) {
	f := newFilter()
	if year != nil {
		f.cond("EXTRACT(YEAR FROM g.game_timestamp::timestamp) = %s", *year)
	}

	query := `SELECT t.team_id, t.city || ' ' || t.name AS team_name, COUNT(*) AS wins
FROM game_details g
JOIN teams t ON g.winning_team_id = t.team_id
` + f.whereSQL() + `
GROUP BY t.team_id, t.city, t.name
ORDER BY wins DESC LIMIT 1`

	var rec domain.TeamRecord
	err := r.pool.QueryRow(ctx, query, f.args...).
		Scan(&rec.TeamID, &rec.TeamName, &rec.Wins)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("top team", err)
	}
	return &rec, nil
}

// GamesWonByTeam returns the team's latest wins.
func (r *Repo) GamesWonByTeam(
	ctx context.Context, teamID int64, year *int, limit int,
) ([]domain.GameRow, error) {
	f := newFilter(teamID, limit)
	f.conds = append(f.conds, "g.winning_team_id = $1")
	if year != nil {
		f.cond("EXTRACT(YEAR FROM g.game_timestamp::timestamp) = %s", *year)
	}

	query := gameSelect + f.whereSQL() +
		" ORDER BY g.game_timestamp DESC LIMIT $2"
	return r.queryGames(ctx, "team wins", query, f.args)
}

// PlayerStatsForGames returns box scores from the given games. When playerID
// is set the rows are scoped to that player and ordered chronologically;
// otherwise the top performers across the games are returned.
func (r *Repo) PlayerStatsForGames(
	ctx context.Context, gameIDs []int64, playerID int64, descending bool, limit int,
) ([]domain.PlayerStatRow, error) {
	var query string
	var args []any
	if playerID != 0 {
		query = statSelect +
			"WHERE p.person_id = $1 AND p.game_id = ANY($2)" +
			" ORDER BY g.game_timestamp " + orderDirection(descending) + " LIMIT $3"
		args = []any{playerID, gameIDs, limit}
	} else {
		query = statSelect +
			"WHERE p.game_id = ANY($1)" +
			" ORDER BY p.points DESC, rebounds DESC, p.assists DESC LIMIT $2"
		args = []any{gameIDs, limit}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("box scores", err)
	}
	defer rows.Close()

	var stats []domain.PlayerStatRow
	for rows.Next() {
		var s domain.PlayerStatRow
		if err := rows.Scan(
			&s.GameID, &s.PlayerID, &s.PlayerName,
			&s.Points, &s.Rebounds, &s.Assists,
			&s.TeamName, &s.Opponent, &s.Timestamp,
		); err != nil {
			return nil, storeErr("scan box score", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate box scores", err)
	}
	return stats, nil
}

// SeasonAverage returns the player's per-game averages, or nil when the
// player has no box scores in range.
func (r *Repo) SeasonAverage(
	ctx context.Context, playerID int64, year *int,
) (*domain.SeasonAverage, error) {
	f := newFilter(playerID)
	f.conds = append(f.conds, "p.person_id = $1")
	if year != nil {
		f.cond("EXTRACT(YEAR FROM g.game_timestamp::timestamp) = %s", *year)
	}

	query := `SELECT COUNT(*) AS games_played,
       ROUND(AVG(p.points)::numeric, 1) AS avg_points,
       ROUND(AVG(p.offensive_reb + p.defensive_reb)::numeric, 1) AS avg_rebounds,
       ROUND(AVG(p.assists)::numeric, 1) AS avg_assists,
       pl.first_name || ' ' || pl.last_name AS player_name
FROM player_box_scores p
JOIN players pl ON p.person_id = pl.player_id
JOIN game_details g ON p.game_id = g.game_id
` + f.whereSQL() + `
GROUP BY pl.first_name, pl.last_name`

	var avg domain.SeasonAverage
	err := r.pool.QueryRow(ctx, query, f.args...).Scan(
		&avg.GamesPlayed, &avg.Points, &avg.Rebounds, &avg.Assists, &avg.PlayerName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("season average", err)
	}
	return &avg, nil
}

// Ping verifies database connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Repo) Close() {
	r.pool.Close()
}

func (r *Repo) queryGames(
	ctx context.Context, op, query string, args []any,
) ([]domain.GameRow, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var games []domain.GameRow
	for rows.Next() {
		var g domain.GameRow
		if err := rows.Scan(
			&g.ID, &g.Timestamp, &g.HomeTeam, &g.AwayTeam,
			&g.HomePoints, &g.AwayPoints, &g.Winner,
		); err != nil {
			return nil, storeErr("scan game", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate games", err)
	}
	return games, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
