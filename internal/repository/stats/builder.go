package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// filter accumulates WHERE conditions with positional placeholders.
// Placeholders are numbered from the number of args already bound, so a
// query can bind fixed parameters first and append filtered conditions after.
type filter struct {
	conds []string
	args  []any
}

func newFilter(fixed ...any) *filter {
	return &filter{args: fixed}
}

// bind registers v and returns its placeholder.
func (f *filter) bind(v any) string {
	f.args = append(f.args, v)
	return "$" + strconv.Itoa(len(f.args))
}

// cond appends a condition; expr must contain exactly one %s for the
// bound placeholder.
func (f *filter) cond(expr string, v any) {
	f.conds = append(f.conds, fmt.Sprintf(expr, f.bind(v)))
}

// temporal applies the year and month-day filters when set.
func (f *filter) temporal(year *int, date string) {
	if year != nil {
		f.cond("EXTRACT(YEAR FROM g.game_timestamp::timestamp) = %s", *year)
	}
	if date != "" {
		f.cond("TO_CHAR(g.game_timestamp::timestamp, 'MM-DD') = %s", date)
	}
}

// whereSQL renders "WHERE a AND b", or "" with no conditions.
func (f *filter) whereSQL() string {
	if len(f.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(f.conds, " AND ")
}

func orderDirection(descending bool) string {
	if descending {
		return "DESC"
	}
	return "ASC"
}
