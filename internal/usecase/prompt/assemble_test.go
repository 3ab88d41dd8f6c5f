package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

func intPtr(v int) *int { return &v }

func sampleGames() []domain.GameRow {
	return []domain.GameRow{
		{
			ID: 101, Timestamp: "2024-03-01T19:30:00",
			HomeTeam: "Denver Nuggets", AwayTeam: "Los Angeles Lakers",
			HomePoints: 114, AwayPoints: 106, Winner: "Denver Nuggets",
		},
		{
			ID: 102, Timestamp: "2024-03-03T20:00:00",
			HomeTeam: "Boston Celtics", AwayTeam: "Denver Nuggets",
			HomePoints: 110, AwayPoints: 115, Winner: "Denver Nuggets",
		},
	}
}

func TestAssemble_GameLines(t *testing.T) {
	ctx := Assemble(Input{Games: sampleGames()})
	out := ctx.Render()

	if !strings.Contains(out, "=== GAMES ===") {
		t.Fatalf("missing games header:\n%s", out)
	}
	want := "Denver Nuggets 114 vs Los Angeles Lakers 106 on 2024-03-01. Winner: Denver Nuggets"
	if !strings.Contains(out, want) {
		t.Errorf("missing game line %q in:\n%s", want, out)
	}
	// Date truncated to calendar-day precision.
	if strings.Contains(out, "19:30") {
		t.Errorf("timestamps must be truncated to dates:\n%s", out)
	}
}

func TestAssemble_BlockOrder(t *testing.T) {
	in := Input{
		Intent: domain.Intent{YearFilter: intPtr(2024), Championship: true, Average: true},
		Entity: &domain.EntityMatch{PlayerID: 7, Name: "Nikola Jokić"},
		Games:  sampleGames(),
		Players: []domain.PlayerStatRow{
			{
				GameID: 101, PlayerID: 7, PlayerName: "Nikola Jokić",
				TeamName: "Denver Nuggets", Opponent: "Los Angeles Lakers",
				Timestamp: "2024-03-01T19:30:00", Points: 26, Rebounds: 12, Assists: 9,
			},
		},
		SeasonAverage: &domain.SeasonAverage{
			PlayerName: "Nikola Jokić", GamesPlayed: 70,
			Points: 26.4, Rebounds: 12.4, Assists: 9.0,
		},
		Champion: &domain.TeamRecord{TeamID: 3, TeamName: "Denver Nuggets", Wins: 57},
	}

	out := Assemble(in).Render()

	order := []string{
		"=== SEASON AVERAGES ===",
		"=== IMPORTANT: DATA LIMITATION ===",
		"=== GAMES ===",
		"=== PLAYER STATS ===",
	}
	last := -1
	for _, header := range order {
		idx := strings.Index(out, header)
		if idx < 0 {
			t.Fatalf("missing block %q in:\n%s", header, out)
		}
		if idx < last {
			t.Fatalf("block %q out of order in:\n%s", header, out)
		}
		last = idx
	}

	if !strings.Contains(out, "averaged 26.4 points, 12.4 rebounds, and 9.0 assists per game over 70 games in 2024-25 season.") {
		t.Errorf("season average line wrong:\n%s", out)
	}
	if !strings.Contains(out, "The Denver Nuggets had the best record in 2024-25 season with 57 wins.") {
		t.Errorf("championship line wrong:\n%s", out)
	}
	if !strings.Contains(out, "Nikola Jokić (Denver Nuggets) vs Los Angeles Lakers on 2024-03-01: 26 pts, 12 reb, 9 ast") {
		t.Errorf("player stat line wrong:\n%s", out)
	}
}

func TestAssemble_PlayerBlockOnlyWithEntity(t *testing.T) {
	in := Input{
		Games: sampleGames(),
		Players: []domain.PlayerStatRow{
			{PlayerName: "Jamal Murray", TeamName: "Denver Nuggets", Opponent: "Boston Celtics"},
		},
	}
	out := Assemble(in).Render()
	if strings.Contains(out, "=== PLAYER STATS ===") {
		t.Fatalf("player block requires a resolved entity:\n%s", out)
	}
}

func TestSeasonLabel(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{2024, "2024-25"},
		{2025, "2025-26"},
		{2029, "2029-30"},
	}
	for _, tt := range tests {
		if got := SeasonLabel(tt.year); got != tt.want {
			t.Errorf("SeasonLabel(%d) = %q, want %q", tt.year, got, tt.want)
		}
	}
}

func TestInstruction(t *testing.T) {
	now := time.Date(2025, time.November, 14, 9, 0, 0, 0, time.UTC)

	t.Run("year filter and descending", func(t *testing.T) {
		got := Instruction(now, domain.Intent{YearFilter: intPtr(2024)}, true, true)

		for _, want := range []string{
			"Today's date: 2025-11-14.",
			"Current NBA season: 2025-26 (games in 2025).",
			"Last season: 2024-25 (games in 2024).",
			"(filtered to show only games from 2024-25 season, calendar year 2024)",
			"REVERSE chronological order (MOST RECENT first)",
			"The FIRST game/stats listed is the player's MOST RECENT game.",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %q in:\n%s", want, got)
			}
		}
	})

	t.Run("date filter ascending", func(t *testing.T) {
		got := Instruction(now, domain.Intent{DateFilter: "12-25"}, false, false)

		if !strings.Contains(got, "(filtered to show only games on December 25)") {
			t.Errorf("missing date filter note:\n%s", got)
		}
		if !strings.Contains(got, "listed chronologically (earliest first)") {
			t.Errorf("missing chronological note:\n%s", got)
		}
		if strings.Contains(got, "MOST RECENT first") {
			t.Errorf("ascending instruction leaked the descending note:\n%s", got)
		}
	})
}

func TestRender(t *testing.T) {
	ctx := Assemble(Input{Games: sampleGames()})
	got := Render("instruction text", ctx, "Who won?")

	if !strings.HasPrefix(got, "instruction text\n\nContext:\n") {
		t.Errorf("prompt must lead with the instruction:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n\nQ:Who won?\nA:") {
		t.Errorf("prompt must end with the question:\n%s", got)
	}
}
