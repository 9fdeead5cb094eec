// Package stdsql provides a driver-agnostic column source over a *sql.DB.
// It discovers columns by preparing a result set that matches no rows and
// reading its column names, so it works with any database/sql driver.
package stdsql

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqlt/dialect"
	"github.com/Konsultn-Engineering/sqlt/schema"
)

// Source implements schema.ColumnSource over database/sql.
type Source struct {
	db      *sql.DB
	dialect dialect.Dialect
}

// NewSource wraps a database handle. The dialect is used only for
// identifier quoting; pass nil for the default double-quote style.
func NewSource(db *sql.DB, d dialect.Dialect) *Source {
	if d == nil {
		d = dialect.Question{}
	}
	return &Source{db: db, dialect: d}
}

// Columns returns the table's columns in result-set order. An unknown table
// surfaces as the driver's query error.
func (s *Source) Columns(ctx context.Context, schemaName, table string) ([]string, error) {
	ident := s.dialect.QuoteIdentifier(table)
	if schemaName != "" {
		ident = s.dialect.QuoteIdentifier(schemaName) + "." + ident
	}

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+ident+" WHERE 1=0")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	return columns, rows.Err()
}

var _ schema.ColumnSource = (*Source)(nil)
