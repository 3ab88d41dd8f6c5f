package answer

// TeamTokens is the fixed vocabulary of team-name tokens the winner scan
// recognizes. Externalized so tests can substitute it without touching the
// extraction logic.
func TeamTokens() []string {
	return []string{
		"Warriors", "Kings", "Thunder", "Timberwolves",
		"Nuggets", "Denver", "Golden", "Lakers", "Celtics",
		"Mavericks", "Hawks", "Jazz", "Rockets", "Spurs",
	}
}
