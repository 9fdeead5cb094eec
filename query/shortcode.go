package query

import (
	"strconv"
	"strings"
)

// buildLabels assigns every column a result label of the form
// "<shortcode>_on_<alias>". The shortcode is the initials of the column's
// snake_case words ("service_cd" -> "sc"); on a collision within the entity
// it falls back to the full column name, then to a position suffix. Labels
// depend only on (column list, alias), so the same inputs always produce
// the same labels and Result always matches SelectAll.
func buildLabels(columns []string, alias string) map[string]string {
	labels := make(map[string]string, len(columns))
	taken := make(map[string]struct{}, len(columns))
	for i, col := range columns {
		code := initials(col)
		if _, ok := taken[code]; ok {
			code = col
		}
		if _, ok := taken[code]; ok {
			code = col + "_" + strconv.Itoa(i)
		}
		taken[code] = struct{}{}
		labels[col] = code + "_on_" + alias
	}
	return labels
}

// initials returns the first rune of each underscore-separated word.
func initials(col string) string {
	var sb strings.Builder
	for _, part := range strings.Split(col, "_") {
		if part == "" {
			continue
		}
		sb.WriteString(part[:1])
	}
	if sb.Len() == 0 {
		return col
	}
	return sb.String()
}
