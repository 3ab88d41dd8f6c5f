package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

// Instruction renders the side-channel block the generation call needs next to
// the rows: today's date, the season-year mapping, which filter (if any) was
// applied, and the chronological direction of the listed rows. The rows alone
// do not disambiguate ordering, so this block is required context.
func Instruction(now time.Time, intent domain.Intent, entityResolved, descending bool) string {
	currentSeason := now.Year()
	lastSeason := currentSeason - 1

	var b strings.Builder

	fmt.Fprintf(&b,
		"Today's date: %s. Current NBA season: %s (games in %d). Last season: %s (games in %d).",
		now.Format("2006-01-02"),
		SeasonLabel(currentSeason), currentSeason,
		SeasonLabel(lastSeason), lastSeason,
	)

	b.WriteString("\n\nAnswer based only on the context above")
	switch {
	case intent.DateFilter != "":
		b.WriteString(" (filtered to show only games on December 25)")
	case intent.YearFilter != nil:
		fmt.Fprintf(&b, " (filtered to show only games from %s season, calendar year %d)",
			SeasonLabel(*intent.YearFilter), *intent.YearFilter)
	}
	b.WriteString(". ")

	if descending {
		b.WriteString("Games and stats are listed in REVERSE chronological order (MOST RECENT first).")
		if entityResolved {
			b.WriteString(" The FIRST game/stats listed is the player's MOST RECENT game.")
		}
	} else {
		b.WriteString("Games and stats are listed chronologically (earliest first).")
		if entityResolved {
			b.WriteString(" The first game/stats listed is the player's earliest game in the data.")
		}
	}

	fmt.Fprintf(&b,
		"\n\nDate references: 'last year' = %s season (games in %d), 'this year' = %s season (games in %d), 'Christmas' = December 25.",
		SeasonLabel(lastSeason), lastSeason,
		SeasonLabel(currentSeason), currentSeason,
	)

	return b.String()
}

// Guidance returns schema-specific answering hints appended to the
// instruction block.
func Guidance(schema domain.ReturnSchema) string {
	if schema.NeedsPlayers() {
		return strings.Join([]string{
			"Use exact player names from the context.",
			"Provide specific numbers.",
			"If asking about a triple-double, it requires at least 10 in pts/reb/ast.",
		}, " ")
	}
	return "Provide specific numbers and team names. Be concise and factual."
}

// Render builds the final generation prompt from the instruction, the
// assembled context, and the question.
func Render(instruction string, ctx Context, question string) string {
	return fmt.Sprintf("%s\n\nContext:\n%s\n\nQ:%s\nA:", instruction, ctx.Render(), question)
}
