package template

import (
	"fmt"
	"strings"
)

// Fragment is a piece of literal SQL text. Its contents are spliced into the
// rendered statement verbatim and contribute no bind values, so a Fragment
// must only ever be built from trusted, caller-authored input: the Raw and
// Join constructors here, or the validated column/table references produced
// by the query package. Never wrap user-supplied strings in a Fragment.
type Fragment struct {
	text string
	err  error
}

// Raw marks caller-authored text as literal SQL.
func Raw(text string) *Fragment {
	return &Fragment{text: text}
}

// Rawf is Raw with fmt.Sprintf formatting. The format arguments become part
// of the statement text, not bind values.
func Rawf(format string, args ...any) *Fragment {
	return &Fragment{text: fmt.Sprintf(format, args...)}
}

// Fail returns a fragment that carries an error instead of text. Rendering a
// template containing it fails with that error before any statement text is
// produced.
func Fail(err error) *Fragment {
	return &Fragment{err: err}
}

// Join concatenates fragments with a separator. The first errored fragment
// poisons the result.
func Join(sep string, frags ...*Fragment) *Fragment {
	parts := make([]string, 0, len(frags))
	for _, f := range frags {
		if f.err != nil {
			return &Fragment{err: f.err}
		}
		parts = append(parts, f.text)
	}
	return &Fragment{text: strings.Join(parts, sep)}
}

// Text returns the literal SQL text, or the deferred error if the fragment
// was produced by a failed reference.
func (f *Fragment) Text() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// Err reports the deferred error without consuming the text.
func (f *Fragment) Err() error {
	return f.err
}
