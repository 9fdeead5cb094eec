// Package template assembles parameterized SQL from caller-authored text
// with "?" holes. Every hole is filled by exactly one argument: a bind
// value (or sequence of bind values), a *Fragment of validated literal SQL,
// or a nested *Template spliced in place. The rendered statement always
// satisfies placeholder count == bind value count, and text supplied as a
// value can never leak into the statement.
package template

import (
	"fmt"
	"strings"
)

// Template is an ordered sequence of literal text chunks and holes. The
// format text is trusted author input; everything arriving through a hole
// is classified at render time.
type Template struct {
	text string
	args []any
	err  error
}

// New builds a template from format text and one argument per "?" hole.
// An arity mismatch is recorded immediately and surfaced at render.
func New(text string, args ...any) *Template {
	t := &Template{text: text, args: args}
	if n := strings.Count(text, "?"); n != len(args) {
		t.err = fmt.Errorf("sqlt: template has %d holes but %d arguments: %q", n, len(args), text)
	}
	return t
}

// In wraps a sequence value in a parenthesized expansion hole, for use in
// IN (...) predicates. A sequence of length n renders as n comma-joined
// placeholders; a zero-length sequence renders as (NULL), which is valid
// SQL that matches no row.
func In(v any) *Template {
	return New("(?)", v)
}

// Err reports a construction-time arity error, if any.
func (t *Template) Err() error {
	return t.err
}
