// Package plan turns a detected intent and an optional resolved entity into a
// concrete retrieval plan against the stats store.
package plan

import (
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

// Fetch windows per strategy. Recency requests get a strictly smaller window
// than the defaults so the model sees only the freshest rows.
const (
	recentWindow       = 3
	entityWindow       = 10
	semanticWindow     = 5
	championshipWindow = 5
	playerStatsWindow  = 10
)

// Build selects a retrieval strategy and its fetch parameters. Strategy
// precedence, highest first: championship proxy, entity-scoped scan, recency
// lookup, semantic similarity. Championship ignores both the resolved entity
// and similarity ranking; recency is a hard override of similarity ranking.
func Build(intent domain.Intent, match *domain.EntityMatch, schema domain.ReturnSchema) domain.RetrievalPlan {
	p := domain.RetrievalPlan{
		YearFilter:       intent.YearFilter,
		DateFilter:       intent.DateFilter,
		NeedsPlayers:     schema.NeedsPlayers(),
		PlayerStatsLimit: playerStatsWindow,
	}

	switch {
	case intent.Championship:
		p.Strategy = domain.StrategyAggregate
		p.Limit = championshipWindow
		p.Descending = true

	case match != nil:
		p.Strategy = domain.StrategyEntityScoped
		p.PlayerID = match.PlayerID
		p.PlayerName = match.Name
		if intent.Recency {
			p.Limit = recentWindow
			p.Descending = true
		} else {
			p.Limit = entityWindow
		}
		p.NeedsSeasonAverage = intent.Average
		// Entity questions always carry the player's own stat lines, whatever
		// the declared schema asks for.
		p.NeedsPlayers = true

	case intent.Recency:
		p.Strategy = domain.StrategyRecordLookup
		p.Limit = recentWindow
		p.Descending = true

	default:
		p.Strategy = domain.StrategySemantic
		p.Limit = semanticWindow
	}

	return p
}
