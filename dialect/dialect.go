// Package dialect abstracts the per-engine SQL syntax the renderer needs:
// identifier quoting and placeholder style. Values are never rendered into
// statement text; they always travel as bind parameters.
package dialect

import "strings"

type Dialect interface {
	// QuoteIdentifier quotes a single identifier, escaping embedded quotes.
	QuoteIdentifier(name string) string
	// Placeholder returns the marker for the n-th bind value (1-based).
	Placeholder(n int) string
}

// Question is the default dialect: positional "?" markers and double-quoted
// identifiers. It matches MySQL, SQLite and most database/sql drivers.
type Question struct{}

func (Question) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (Question) Placeholder(n int) string {
	return "?"
}
