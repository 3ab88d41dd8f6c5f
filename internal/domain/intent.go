package domain

// Intent classifies one question's temporal, aggregation, recency, and
// championship character. Recomputed per question, never persisted.
//
// At most one of YearFilter and DateFilter is set: the temporal rules run as
// an ordered chain and the first hit wins.
type Intent struct {
	// YearFilter restricts retrieval to games in one calendar year.
	YearFilter *int
	// DateFilter restricts retrieval to one month-day, formatted "MM-DD".
	DateFilter string
	// Championship marks championship/finals questions.
	Championship bool
	// Average marks per-game average questions.
	Average bool
	// Recency marks most-recent-game questions.
	Recency bool
}

// Year returns the year filter value, or 0 when unset.
func (i Intent) Year() int {
	if i.YearFilter == nil {
		return 0
	}
	return *i.YearFilter
}

// HasTemporalFilter reports whether any year or date restriction applies.
func (i Intent) HasTemporalFilter() bool {
	return i.YearFilter != nil || i.DateFilter != ""
}

// Player is one entry in the read-only entity roster, loaded once per request
// from the store in stable id order.
type Player struct {
	ID        int64
	FirstName string
	LastName  string
}

// FullName returns "First Last".
func (p Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// EntityMatch is a resolved player reference. Resolution is single-valued:
// the first hit under nickname-then-roster precedence wins.
type EntityMatch struct {
	PlayerID int64
	Name     string
}
