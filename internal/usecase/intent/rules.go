package intent

import "regexp"

// Rules holds the fixed keyword vocabulary the detector matches against.
// The sets are injected rather than inlined so tests can substitute them
// without touching the detection logic.
type Rules struct {
	// Championship terms, matched as substrings of the lower-cased question.
	Championship []string
	// Average/per-game terms.
	Average []string
	// Most-recent-game terms.
	Recency []string
	// ChristmasKeyword sets the fixed month-day filter.
	ChristmasKeyword string
	// ChristmasDate is the month-day filter value, "MM-DD".
	ChristmasDate string
}

// explicitYear matches a bare 4-digit year in the dataset's coverage window.
var explicitYear = regexp.MustCompile(`\b(202[0-9])\b`)

// DefaultRules returns the production keyword vocabulary.
func DefaultRules() Rules {
	return Rules{
		Championship: []string{
			"championship", "champion", "finals", "won the championship", "nba finals",
		},
		Average: []string{
			"average", "avg", "per game", "ppg", "rpg", "apg", "averages",
		},
		Recency: []string{
			"last game", "most recent game", "latest game", "most recent", "last match",
		},
		ChristmasKeyword: "christmas",
		ChristmasDate:    "12-25",
	}
}
