// Package query binds entity metadata to SQL aliases and produces the
// validated column references, aliased select lists, and result labels used
// inside templates. Field names are checked against the entity's column
// list at first reference, before any statement reaches a database.
package query

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Konsultn-Engineering/sqlt/schema"
	"github.com/Konsultn-Engineering/sqlt/template"
)

// InvalidColumnError reports a field reference whose converted column does
// not exist on the entity.
type InvalidColumnError struct {
	Entity string
	Field  string
	Column string
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("sqlt: entity %s has no column %q (field %q)", e.Entity, e.Column, e.Field)
}

// UnresolvedError reports a syntax provider whose entity metadata could not
// be resolved by render time.
type UnresolvedError struct {
	Entity string
	Err    error
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("sqlt: entity %s is unresolved: %v", e.Entity, e.Err)
}

func (e *UnresolvedError) Unwrap() error { return e.Err }

// Syntax binds one entity occurrence in a query to an alias. It is a
// per-query value: create one Syntax per alias, even for the same entity.
// All outputs are fragments, so a failed reference carries its error into
// the render instead of panicking mid-assembly.
type Syntax struct {
	alias  string
	entity string

	mu      sync.Mutex
	meta    *schema.EntityMeta
	labels  map[string]string
	resolve func() (*schema.EntityMeta, error)
}

// NewSyntax wraps already-resolved metadata with an alias.
func NewSyntax(meta *schema.EntityMeta, alias string) *Syntax {
	return &Syntax{
		alias:  alias,
		entity: meta.Name,
		meta:   meta,
		labels: buildLabels(meta.Columns, alias),
	}
}

// For builds a provider that resolves T through the registry on first
// reference. If resolution fails, every fragment from this provider renders
// to an UnresolvedError; a later reference retries, since the registry
// caches nothing on failure.
func For[T any](ctx context.Context, r *schema.Registry, alias string) *Syntax {
	s := &Syntax{alias: alias, entity: typeName[T]()}
	s.resolve = func() (*schema.EntityMeta, error) {
		return schema.Resolve[T](ctx, r)
	}
	return s
}

func typeName[T any]() string {
	var zero T
	return strings.TrimPrefix(fmt.Sprintf("%T", zero), "*")
}

func (s *Syntax) resolveMeta() (*schema.EntityMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meta != nil {
		return s.meta, nil
	}
	meta, err := s.resolve()
	if err != nil {
		return nil, &UnresolvedError{Entity: s.entity, Err: err}
	}
	s.meta = meta
	s.labels = buildLabels(meta.Columns, s.alias)
	return meta, nil
}

// Err forces resolution and reports any failure, letting callers validate a
// provider ahead of building templates.
func (s *Syntax) Err() error {
	_, err := s.resolveMeta()
	return err
}

// Alias returns the bound alias.
func (s *Syntax) Alias() string {
	return s.alias
}

// Col returns the alias-qualified column reference for a field, e.g.
// "g.service_cd". The field must map to one of the entity's columns.
func (s *Syntax) Col(field string) *template.Fragment {
	col, frag := s.lookup(field)
	if frag != nil {
		return frag
	}
	return template.Raw(s.alias + "." + col)
}

// Result returns the bare result label for a field, e.g. "sc_on_g". It is
// byte-for-byte the AS label SelectAll emits for the same field and alias,
// so rows selected through SelectAll can be read back by this label.
func (s *Syntax) Result(field string) *template.Fragment {
	col, frag := s.lookup(field)
	if frag != nil {
		return frag
	}
	return template.Raw(s.labels[col])
}

// SelectAll returns the full aliased select list in column declaration
// order: "g.id AS i_on_g, g.name AS n_on_g".
func (s *Syntax) SelectAll() *template.Fragment {
	meta, err := s.resolveMeta()
	if err != nil {
		return template.Fail(err)
	}
	var sb strings.Builder
	for i, col := range meta.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.alias)
		sb.WriteByte('.')
		sb.WriteString(col)
		sb.WriteString(" AS ")
		sb.WriteString(s.labels[col])
	}
	return template.Raw(sb.String())
}

// Table returns the aliased table reference: "[schema.]table alias".
func (s *Syntax) Table() *template.Fragment {
	meta, err := s.resolveMeta()
	if err != nil {
		return template.Fail(err)
	}
	return template.Raw(meta.QualifiedTable() + " " + s.alias)
}

// lookup resolves a field to its column and validates membership. A non-nil
// fragment carries the failure.
func (s *Syntax) lookup(field string) (string, *template.Fragment) {
	meta, err := s.resolveMeta()
	if err != nil {
		return "", template.Fail(err)
	}
	col := meta.ToColumn(field)
	if !meta.HasColumn(col) {
		return "", template.Fail(&InvalidColumnError{Entity: meta.Name, Field: field, Column: col})
	}
	return col, nil
}
