// Package roster resolves player mentions in question text against the
// known-player roster, with a nickname table checked first.
package roster

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

// minFirstNameLen guards first-name matching: short first names like "Ja"
// collide with ordinary words, so they only resolve via last name or nickname.
const minFirstNameLen = 4

// Resolve matches the question against the alias table, then against the
// roster itself. The first hit wins; roster iteration order is the tie-break,
// so callers must supply a stable order. Returns nil when nothing matches.
func Resolve(text string, players []domain.Player, aliases []Alias) *domain.EntityMatch {
	lower := strings.ToLower(text)

	for _, alias := range aliases {
		if !containsWord(lower, alias.Nickname) {
			continue
		}
		for _, p := range players {
			if strings.EqualFold(p.FullName(), alias.FullName) {
				return &domain.EntityMatch{PlayerID: p.ID, Name: p.FullName()}
			}
		}
	}

	for _, p := range players {
		full := strings.ToLower(p.FullName())
		last := strings.ToLower(p.LastName)
		first := strings.ToLower(p.FirstName)

		if containsWord(lower, full) || containsWord(lower, last) ||
			(utf8.RuneCountInString(first) >= minFirstNameLen && containsWord(lower, first)) {
			return &domain.EntityMatch{PlayerID: p.ID, Name: p.FullName()}
		}
	}

	return nil
}

// containsWord reports whether needle occurs in haystack bounded by non-word
// runes. A hand-rolled scan rather than regexp \b, which is ASCII-only and
// mishandles names with diacritics.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for from := 0; ; {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		from = start + 1
	}
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return !isWordRune(r)
}

func boundaryAfter(s string, idx int) bool {
	if idx >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[idx:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
