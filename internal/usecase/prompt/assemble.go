// Package prompt renders retrieved rows into the bounded textual context and
// instruction block handed to the generation model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

// Context is the ordered sequence of rendered segments for one question.
// Consumed once, never retained.
type Context struct {
	segments []string
}

// Render joins the segments into the context block.
func (c Context) Render() string {
	return strings.Join(c.segments, "\n")
}

// Input carries everything the assembler renders.
type Input struct {
	Intent        domain.Intent
	Entity        *domain.EntityMatch
	Games         []domain.GameRow
	Players       []domain.PlayerStatRow
	SeasonAverage *domain.SeasonAverage
	Champion      *domain.TeamRecord
}

// Assemble renders the context deterministically: season-average block first,
// championship disclaimer second, then games in planner order, and last (only
// when an entity was resolved) that player's stat lines in matching order.
func Assemble(in Input) Context {
	var segs []string

	if in.SeasonAverage != nil {
		segs = append(segs, "=== SEASON AVERAGES ===")
		segs = append(segs, fmt.Sprintf(
			"%s averaged %.1f points, %.1f rebounds, and %.1f assists per game over %d games in %s.",
			in.SeasonAverage.PlayerName,
			in.SeasonAverage.Points, in.SeasonAverage.Rebounds, in.SeasonAverage.Assists,
			in.SeasonAverage.GamesPlayed, seasonPhrase(in.Intent.YearFilter),
		))
		segs = append(segs, "")
	}

	if in.Champion != nil {
		segs = append(segs, "=== IMPORTANT: DATA LIMITATION ===")
		segs = append(segs, "The database only contains REGULAR SEASON games. Playoff and NBA Finals data is NOT available.")
		segs = append(segs, fmt.Sprintf(
			"Based on regular season data: The %s had the best record in %s with %d wins.",
			in.Champion.TeamName, seasonPhrase(in.Intent.YearFilter), in.Champion.Wins,
		))
		segs = append(segs, "Note: This does NOT indicate who won the NBA Championship/Finals, as playoff data is not included.")
		segs = append(segs, "")
	}

	segs = append(segs, "=== GAMES ===")
	for _, g := range in.Games {
		segs = append(segs, fmt.Sprintf(
			"%s %d vs %s %d on %s. Winner: %s",
			g.HomeTeam, g.HomePoints, g.AwayTeam, g.AwayPoints, g.Date(), g.Winner,
		))
	}

	if in.Entity != nil && len(in.Players) > 0 {
		segs = append(segs, "", "=== PLAYER STATS ===")
		for _, p := range in.Players {
			segs = append(segs, fmt.Sprintf(
				"%s (%s) vs %s on %s: %d pts, %d reb, %d ast",
				p.PlayerName, p.TeamName, p.Opponent, p.Date(),
				p.Points, p.Rebounds, p.Assists,
			))
		}
	}

	return Context{segments: segs}
}

// SeasonLabel renders a calendar year as its season span, e.g. 2024 -> "2024-25".
func SeasonLabel(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

func seasonPhrase(year *int) string {
	if year == nil {
		return "the season"
	}
	return SeasonLabel(*year) + " season"
}
