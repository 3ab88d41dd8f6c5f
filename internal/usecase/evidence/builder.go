// Package evidence selects a bounded, ranked subset of retrieved rows as
// citable references for an answer.
package evidence

import (
	"fmt"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

const (
	maxStatRefs = 3
	maxGameRefs = 3
)

// Build ranks evidence for one answer. With a resolved entity it favors up to
// three stat rows plus one representative game row; otherwise the top game
// rows alone. Output is always bounded and every id comes from the input rows.
func Build(games []domain.GameRow, players []domain.PlayerStatRow, match *domain.EntityMatch) []domain.EvidenceRef {
	if match != nil && len(players) > 0 {
		refs := make([]domain.EvidenceRef, 0, maxStatRefs+1)
		for _, p := range players {
			if len(refs) == maxStatRefs {
				break
			}
			refs = append(refs, domain.EvidenceRef{
				Table: domain.TableBoxScores,
				ID:    p.PlayerID,
				Details: fmt.Sprintf("%s vs %s: %d pts, %d reb, %d ast",
					p.PlayerName, p.Opponent, p.Points, p.Rebounds, p.Assists),
				Date: p.Date(),
			})
		}
		if len(games) > 0 {
			refs = append(refs, gameRef(games[0]))
		}
		return refs
	}

	refs := make([]domain.EvidenceRef, 0, maxGameRefs)
	for _, g := range games {
		if len(refs) == maxGameRefs {
			break
		}
		refs = append(refs, gameRef(g))
	}
	return refs
}

func gameRef(g domain.GameRow) domain.EvidenceRef {
	return domain.EvidenceRef{
		Table: domain.TableGames,
		ID:    g.ID,
		Details: fmt.Sprintf("%s %d vs %s %d",
			g.HomeTeam, g.HomePoints, g.AwayTeam, g.AwayPoints),
		Date: g.Date(),
	}
}
