package domain

// Strategy tags the retrieval approach chosen for one question.
type Strategy string

const (
	// StrategySemantic ranks games by vector distance to the question embedding.
	StrategySemantic Strategy = "semantic"
	// StrategyEntityScoped scans games the resolved player appeared in.
	StrategyEntityScoped Strategy = "entity-scoped"
	// StrategyRecordLookup fetches the most recent games by timestamp.
	StrategyRecordLookup Strategy = "record-lookup"
	// StrategyAggregate computes the team with the most recorded wins.
	StrategyAggregate Strategy = "aggregate"
)

// RetrievalPlan is the concrete fetch specification derived from an intent and
// an optional entity match. Built fresh per question.
type RetrievalPlan struct {
	Strategy   Strategy
	Limit      int
	Descending bool

	YearFilter *int
	DateFilter string

	// PlayerID and PlayerName are set for entity-scoped plans.
	PlayerID   int64
	PlayerName string

	// NeedsPlayers plans the dependent box-score fetch over the primary
	// game-id set.
	NeedsPlayers bool
	// PlayerStatsLimit caps the dependent box-score fetch.
	PlayerStatsLimit int
	// NeedsSeasonAverage plans the per-entity season aggregate fetch.
	NeedsSeasonAverage bool
}

// Year returns the plan's year filter value, or 0 when unset.
func (p RetrievalPlan) Year() int {
	if p.YearFilter == nil {
		return 0
	}
	return *p.YearFilter
}
