package domain

// Question is one incoming natural-language question, immutable once received.
// Return declares the fields the caller expects in the result, keyed by field
// name with a type tag ("int", "str", or "list" for the evidence list).
type Question struct {
	ID     int          `json:"id"`
	Text   string       `json:"question"`
	Return ReturnSchema `json:"return"`
}

// ReturnSchema maps declared result field names to their type tags.
type ReturnSchema map[string]string

// EvidenceField is the reserved schema key for the evidence list; it is filled
// by the evidence builder, never by answer extraction.
const EvidenceField = "evidence"

// IsInt reports whether the named field is declared as an integer.
func (s ReturnSchema) IsInt(field string) bool {
	return s[field] == "int"
}

// Has reports whether the schema declares the named field.
func (s ReturnSchema) Has(field string) bool {
	_, ok := s[field]
	return ok
}

// NeedsPlayers reports whether answering requires player-level statistics.
func (s ReturnSchema) NeedsPlayers() bool {
	return s.Has("player_name")
}

// AnswerResult is the externally observable output: one value per declared
// schema field plus the evidence list. Every declared field is always present;
// extraction misses are filled from retrieved rows or with zero values.
type AnswerResult map[string]any

// Answer is the interactive-mode response: the raw model reply plus evidence.
type Answer struct {
	ID       string        `json:"id"`
	Text     string        `json:"answer"`
	Evidence []EvidenceRef `json:"evidence"`
}

// EvidenceRef cites one retrieved row supporting an answer.
type EvidenceRef struct {
	Table   string `json:"table"`
	ID      int64  `json:"id"`
	Details string `json:"details,omitempty"`
	Date    string `json:"date,omitempty"`
}
