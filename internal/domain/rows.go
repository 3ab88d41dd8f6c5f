package domain

// GameRow is a read-only game projection from the store.
type GameRow struct {
	ID         int64
	Timestamp  string
	HomeTeam   string
	AwayTeam   string
	HomePoints int
	AwayPoints int
	Winner     string
}

// Date truncates the raw timestamp to calendar-day precision.
func (g GameRow) Date() string {
	return truncateDate(g.Timestamp)
}

// PlayerStatRow is a read-only per-game box score projection.
type PlayerStatRow struct {
	GameID     int64
	PlayerID   int64
	PlayerName string
	Points     int
	Rebounds   int
	Assists    int
	TeamName   string
	Opponent   string
	Timestamp  string
}

// Date truncates the raw timestamp to calendar-day precision.
func (p PlayerStatRow) Date() string {
	return truncateDate(p.Timestamp)
}

// SeasonAverage is the per-entity aggregate over games matching the active
// year filter.
type SeasonAverage struct {
	PlayerName  string
	GamesPlayed int
	Points      float64
	Rebounds    float64
	Assists     float64
}

// TeamRecord is a win-count aggregate used by championship-proxy lookups.
type TeamRecord struct {
	TeamID   int64
	TeamName string
	Wins     int
}

// Source table tags carried on evidence references.
const (
	TableGames     = "game_details"
	TableBoxScores = "player_box_scores"
)

func truncateDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
