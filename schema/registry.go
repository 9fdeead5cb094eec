// Package schema maps entity struct types onto database tables: naming
// conversion, per-entity metadata, and a process-wide registry that resolves
// and memoizes that metadata, optionally against a live column source.
package schema

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ColumnSource returns the ordered column list for a table. Implementations
// may block on I/O; the registry invokes a source at most once per entity
// for the lifetime of its cache entry.
type ColumnSource interface {
	Columns(ctx context.Context, schemaName, table string) ([]string, error)
}

// LookupError reports a failed or empty external column lookup. The failed
// entity stays out of the registry cache, so a later Resolve retries.
type LookupError struct {
	Table string
	Err   error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("sqlt: column lookup for table %q failed: %v", e.Table, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Registry resolves entity types to immutable EntityMeta values. Resolution
// is memoized per type; concurrent first access performs any external
// lookup exactly once. The registry is the only shared mutable state in the
// engine and is safe for concurrent use.
type Registry struct {
	source ColumnSource
	conv   *Converter
	logger *slog.Logger

	entities sync.Map // reflect.Type -> *EntityMeta
	configs  sync.Map // reflect.Type -> *entityConfig
	group    singleflight.Group
}

type Option func(*Registry)

// WithSource injects the external column lookup used for entities without
// an explicit column list.
func WithSource(src ColumnSource) Option {
	return func(r *Registry) { r.source = src }
}

// WithConverter replaces the default camelCase-to-snake_case converter.
func WithConverter(conv *Converter) Option {
	return func(r *Registry) { r.conv = conv }
}

// WithLogger enables debug logging around external lookups.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{conv: NewConverter()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// entityConfig is the per-entity declaration surface.
type entityConfig struct {
	table    string
	schema   string
	columns  []string
	convOpts []ConverterOption
}

type EntityOption func(*entityConfig)

// WithTable overrides the derived table name.
func WithTable(name string) EntityOption {
	return func(c *entityConfig) { c.table = name }
}

// WithSchema qualifies the table with a schema name.
func WithSchema(name string) EntityOption {
	return func(c *entityConfig) { c.schema = name }
}

// WithColumns declares the column list explicitly. No external lookup is
// performed for the entity.
func WithColumns(columns ...string) EntityOption {
	return func(c *entityConfig) { c.columns = columns }
}

// WithNameOverride adds a field-name rewrite rule scoped to this entity.
// The first matching pattern wins and its replacement is the column name.
func WithNameOverride(pattern, replace string) EntityOption {
	return func(c *entityConfig) {
		c.convOpts = append(c.convOpts, WithOverride(pattern, replace))
	}
}

// WithIdentityColumns disables case conversion for this entity's fields.
func WithIdentityColumns() EntityOption {
	return func(c *entityConfig) {
		c.convOpts = append(c.convOpts, WithoutConversion())
	}
}

// Declare records declaration options for an entity type ahead of its first
// resolution. Declaring is optional; undeclared entities resolve with
// defaults.
func Declare[T any](r *Registry, opts ...EntityOption) {
	cfg := &entityConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	r.configs.Store(typeOf[T](), cfg)
}

// Resolve returns the metadata for T, building and caching it on first use.
func Resolve[T any](ctx context.Context, r *Registry) (*EntityMeta, error) {
	return r.resolveType(ctx, typeOf[T]())
}

// ResolveValue is Resolve for a value or reflect.Type held as any.
func (r *Registry) ResolveValue(ctx context.Context, entity any) (*EntityMeta, error) {
	t, ok := entity.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(entity)
	}
	return r.resolveType(ctx, t)
}

// Invalidate drops the cached metadata for T so the next Resolve rebuilds
// it, re-running any external lookup.
func Invalidate[T any](r *Registry) {
	r.entities.Delete(typeOf[T]())
}

func typeOf[T any]() reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func (r *Registry) resolveType(ctx context.Context, t reflect.Type) (*EntityMeta, error) {
	if t == nil {
		return nil, fmt.Errorf("sqlt: cannot resolve nil entity type")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if meta, ok := r.entities.Load(t); ok {
		return meta.(*EntityMeta), nil
	}

	// Serialize concurrent first access so the external lookup runs once.
	// A failed build stores nothing, leaving the key retryable.
	key := t.PkgPath() + "." + t.String()
	v, err, _ := r.group.Do(key, func() (any, error) {
		if meta, ok := r.entities.Load(t); ok {
			return meta.(*EntityMeta), nil
		}
		meta, err := r.build(ctx, t)
		if err != nil {
			return nil, err
		}
		r.entities.Store(t, meta)
		return meta, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*EntityMeta), nil
}

func (r *Registry) build(ctx context.Context, t reflect.Type) (*EntityMeta, error) {
	cfg := &entityConfig{}
	if v, ok := r.configs.Load(t); ok {
		cfg = v.(*entityConfig)
	}

	conv := r.conv
	if len(cfg.convOpts) > 0 {
		conv = conv.extend(cfg.convOpts...)
	}

	meta, err := buildMeta(t, cfg, conv)
	if err != nil {
		return nil, err
	}

	switch {
	case len(cfg.columns) > 0:
		meta.setColumns(cfg.columns)
	case r.source != nil:
		if r.logger != nil {
			r.logger.DebugContext(ctx, "looking up columns",
				slog.String("entity", meta.Name),
				slog.String("table", meta.QualifiedTable()))
		}
		cols, err := r.source.Columns(ctx, meta.Schema, meta.TableName)
		if err != nil {
			return nil, &LookupError{Table: meta.QualifiedTable(), Err: err}
		}
		if len(cols) == 0 && len(meta.Fields) > 0 {
			return nil, &LookupError{
				Table: meta.QualifiedTable(),
				Err:   fmt.Errorf("empty column list for entity %s with %d fields", meta.Name, len(meta.Fields)),
			}
		}
		meta.setColumns(cols)
	default:
		meta.setColumns(meta.fieldColumns())
	}

	return meta, nil
}
