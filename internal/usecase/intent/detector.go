// Package intent classifies question text into a temporal, aggregation,
// recency, and championship intent using fixed keyword rules.
package intent

import (
	"strconv"
	"strings"
	"time"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

// Detect scans the question for the rule vocabulary and returns the derived
// intent. Pure: deterministic given identical text and date, no side effects,
// and never fails; unmatched text yields an all-empty intent.
//
// Seasons span two calendar years; "this year" means the season whose games
// fall in now's calendar year, "last year" the one before. The temporal rules
// run as an ordered chain: relative-year keywords, then the christmas keyword,
// then a bare 4-digit year. The first rule that sets a filter wins, so at
// most one of the year and date filters is ever set.
func Detect(text string, now time.Time, rules Rules) domain.Intent {
	lower := strings.ToLower(text)

	out := domain.Intent{
		Championship: containsAny(lower, rules.Championship),
		Average:      containsAny(lower, rules.Average),
		Recency:      containsAny(lower, rules.Recency),
	}

	currentSeason := now.Year()
	lastSeason := currentSeason - 1

	switch {
	case strings.Contains(lower, "last year"):
		out.YearFilter = &lastSeason
	case strings.Contains(lower, "this year"):
		out.YearFilter = &currentSeason
	case rules.ChristmasKeyword != "" && strings.Contains(lower, rules.ChristmasKeyword):
		out.DateFilter = rules.ChristmasDate
	}

	if out.YearFilter == nil && out.DateFilter == "" {
		if m := explicitYear.FindStringSubmatch(text); m != nil {
			year, err := strconv.Atoi(m[1])
			if err == nil {
				out.YearFilter = &year
			}
		}
	}

	return out
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
