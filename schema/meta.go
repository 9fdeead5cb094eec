package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// EntityMeta describes one entity type's table mapping: table and schema
// names, the ordered column list, and per-field column assignments. Metadata
// is built once per entity by the registry and immutable afterwards, so it
// may be shared freely across goroutines and alias providers.
type EntityMeta struct {
	Type      reflect.Type
	Name      string
	Schema    string
	TableName string
	Columns   []string // ordered, unique, case-preserving
	Fields    []*FieldMeta
	FieldMap  map[string]*FieldMeta // Go field name -> FieldMeta
	ColumnMap map[string]*FieldMeta // column name -> FieldMeta

	colSet map[string]struct{}
	conv   *Converter
}

// FieldMeta records one struct field's column mapping.
type FieldMeta struct {
	Name   string
	Column string
	Type   reflect.Type
	Index  []int
}

// TableNamer lets an entity override its derived table name.
type TableNamer interface {
	TableName() string
}

// ToColumn resolves a field name to its column: declared fields use their
// assigned column, anything else falls through to the naming converter.
func (m *EntityMeta) ToColumn(field string) string {
	if fm, ok := m.FieldMap[field]; ok {
		return fm.Column
	}
	return m.conv.ToColumn(field)
}

// ToField is the diagnostic inverse of ToColumn.
func (m *EntityMeta) ToField(column string) string {
	if fm, ok := m.ColumnMap[column]; ok {
		return fm.Name
	}
	return m.conv.ToField(column)
}

// HasColumn reports whether col is one of the entity's columns.
func (m *EntityMeta) HasColumn(col string) bool {
	_, ok := m.colSet[col]
	return ok
}

// QualifiedTable returns "schema.table" or just "table" when no schema is
// set.
func (m *EntityMeta) QualifiedTable() string {
	if m.Schema != "" {
		return m.Schema + "." + m.TableName
	}
	return m.TableName
}

// buildMeta walks the struct type and assigns a column to every exported,
// non-anonymous field. Tags: `db:"name"` overrides the converted name,
// `db:"-"` skips the field. Columns are attached afterwards by the registry
// (see setColumns), since they may come from an external lookup.
func buildMeta(t reflect.Type, cfg *entityConfig, conv *Converter) (*EntityMeta, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("sqlt: invalid entity type %s (expected struct)", t.Kind())
	}

	numFields := t.NumField()
	meta := &EntityMeta{
		Type:      t,
		Name:      t.Name(),
		Schema:    cfg.schema,
		Fields:    make([]*FieldMeta, 0, numFields),
		FieldMap:  make(map[string]*FieldMeta, numFields),
		ColumnMap: make(map[string]*FieldMeta, numFields),
		conv:      conv,
	}

	switch {
	case cfg.table != "":
		meta.TableName = cfg.table
	default:
		if tn, ok := reflect.New(t).Interface().(TableNamer); ok {
			meta.TableName = tn.TableName()
		} else {
			meta.TableName = DeriveTableName(t.Name())
		}
	}

	for i := 0; i < numFields; i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}

		column := conv.ToColumn(f.Name)
		if tag, ok := f.Tag.Lookup("db"); ok {
			tag = strings.TrimSpace(tag)
			if tag == "-" {
				continue
			}
			if tag != "" {
				column = tag
			}
		}

		if _, dup := meta.ColumnMap[column]; dup {
			return nil, fmt.Errorf("sqlt: entity %s maps two fields to column %q", meta.Name, column)
		}

		fm := &FieldMeta{
			Name:   f.Name,
			Column: column,
			Type:   f.Type,
			Index:  f.Index,
		}
		meta.Fields = append(meta.Fields, fm)
		meta.FieldMap[f.Name] = fm
		meta.ColumnMap[column] = fm
	}

	return meta, nil
}

// setColumns installs the entity's column list, deduplicating while keeping
// first-occurrence order.
func (m *EntityMeta) setColumns(columns []string) {
	m.Columns = make([]string, 0, len(columns))
	m.colSet = make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if _, ok := m.colSet[col]; ok {
			continue
		}
		m.colSet[col] = struct{}{}
		m.Columns = append(m.Columns, col)
	}
}

// fieldColumns derives the column list from the declared fields, in
// declaration order.
func (m *EntityMeta) fieldColumns() []string {
	cols := make([]string, 0, len(m.Fields))
	for _, fm := range m.Fields {
		cols = append(cols, fm.Column)
	}
	return cols
}
