// Package answer coerces the model's free-text reply into the typed result
// fields declared by the question schema, with deterministic fallbacks drawn
// from the retrieved rows.
package answer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

var (
	numberPattern = regexp.MustCompile(`\b(\d+)\b`)
	scorePattern  = regexp.MustCompile(`(\d{2,3})\s*[-to]+\s*(\d{2,3})`)
)

// statOrder is the positional contract for multi-numeric schemas: the Nth
// stat field takes the Nth number occurring in the reply.
var statOrder = []string{"points", "rebounds", "assists"}

// candidateWindow bounds how many top-ranked stat rows the player-name scan
// considers.
const candidateWindow = 10

// Extract parses the reply into one typed value per declared schema field
// (excluding evidence). Extraction is best-effort and never rejects a value:
// a miss falls back to the corresponding value of the highest-ranked retrieved
// row, and with no rows at all to the field's zero value. Every declared field
// is always present in the result.
func Extract(
	reply string,
	schema domain.ReturnSchema,
	games []domain.GameRow,
	players []domain.PlayerStatRow,
	teamTokens []string,
) domain.AnswerResult {
	numbers := numberPattern.FindAllString(reply, -1)
	result := make(domain.AnswerResult, len(schema))

	for field := range schema {
		if field == domain.EvidenceField {
			continue
		}
		switch field {
		case "points", "rebounds", "assists":
			result[field] = extractStat(field, numbers, games, players)
		case "winner":
			result[field] = extractWinner(reply, teamTokens, games)
		case "score":
			result[field] = extractScore(reply, games)
		case "player_name":
			result[field] = extractPlayerName(reply, players)
		default:
			result[field] = extractGeneric(field, schema, numbers)
		}
	}

	return result
}

// extractStat takes the field's positional number occurrence, falling back to
// the top stat row, then (for points only) to the winning side's score of the
// top game row.
func extractStat(field string, numbers []string, games []domain.GameRow, players []domain.PlayerStatRow) int {
	pos := statPosition(field)
	if pos < len(numbers) {
		if v, err := strconv.Atoi(numbers[pos]); err == nil {
			return v
		}
	}

	if len(players) > 0 {
		top := players[0]
		switch field {
		case "points":
			return top.Points
		case "rebounds":
			return top.Rebounds
		case "assists":
			return top.Assists
		}
	}

	if field == "points" && len(games) > 0 {
		g := games[0]
		if g.HomePoints > g.AwayPoints {
			return g.HomePoints
		}
		return g.AwayPoints
	}

	return 0
}

func statPosition(field string) int {
	for i, name := range statOrder {
		if name == field {
			return i
		}
	}
	return 0
}

// extractWinner scans the reply word by word, punctuation stripped, for the
// first word containing a known team token.
func extractWinner(reply string, teamTokens []string, games []domain.GameRow) string {
	for _, word := range strings.Fields(reply) {
		clean := strings.Trim(word, ".,!?")
		for _, token := range teamTokens {
			if strings.Contains(clean, token) {
				return clean
			}
		}
	}
	if len(games) > 0 {
		return games[0].Winner
	}
	return ""
}

// extractScore matches a two-group numeric pattern separated by a dash or the
// word "to", falling back to the top game row's scoreline.
func extractScore(reply string, games []domain.GameRow) string {
	if m := scorePattern.FindStringSubmatch(reply); m != nil {
		return m[1] + "-" + m[2]
	}
	if len(games) > 0 {
		return fmt.Sprintf("%d-%d", games[0].HomePoints, games[0].AwayPoints)
	}
	return ""
}

// extractPlayerName prefers any top-ranked candidate whose full name appears
// in the reply; absent a hit, the top-ranked row's name.
func extractPlayerName(reply string, players []domain.PlayerStatRow) string {
	lower := strings.ToLower(reply)
	limit := len(players)
	if limit > candidateWindow {
		limit = candidateWindow
	}
	for _, p := range players[:limit] {
		if strings.Contains(lower, strings.ToLower(p.PlayerName)) {
			return p.PlayerName
		}
	}
	if len(players) > 0 {
		return players[0].PlayerName
	}
	return ""
}

// extractGeneric handles schema fields without a dedicated rule: integers take
// the first number in the reply, strings default to empty.
func extractGeneric(field string, schema domain.ReturnSchema, numbers []string) any {
	if schema.IsInt(field) {
		if len(numbers) > 0 {
			if v, err := strconv.Atoi(numbers[0]); err == nil {
				return v
			}
		}
		return 0
	}
	return ""
}
