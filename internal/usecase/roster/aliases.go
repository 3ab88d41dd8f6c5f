package roster

// Alias maps a common nickname or abbreviation to a player's full name.
// The table is ordered: earlier entries win when several nicknames appear in
// the same question.
type Alias struct {
	Nickname string
	FullName string
}

// DefaultAliases returns the production nickname table.
func DefaultAliases() []Alias {
	return []Alias{
		{"sga", "Shai Gilgeous-Alexander"},
		{"wemby", "Victor Wembanyama"},
		{"wembanyama", "Victor Wembanyama"},
		{"luka", "Luka Dončić"},
		{"doncic", "Luka Dončić"},
		{"lebron", "LeBron James"},
		{"giannis", "Giannis Antetokounmpo"},
		{"jokic", "Nikola Jokić"},
		{"embiid", "Joel Embiid"},
		{"steph", "Stephen Curry"},
		{"curry", "Stephen Curry"},
		{"kd", "Kevin Durant"},
		{"durant", "Kevin Durant"},
		{"ad", "Anthony Davis"},
		{"dame", "Damian Lillard"},
		{"lillard", "Damian Lillard"},
		{"kawhi", "Kawhi Leonard"},
		{"pg", "Paul George"},
		{"cp3", "Chris Paul"},
		{"book", "Devin Booker"},
		{"booker", "Devin Booker"},
		{"tatum", "Jayson Tatum"},
		{"ant", "Anthony Edwards"},
		{"ja", "Ja Morant"},
		{"morant", "Ja Morant"},
		{"harden", "James Harden"},
		{"kyrie", "Kyrie Irving"},
		{"irving", "Kyrie Irving"},
	}
}
