// Package sqlt is a statically checked SQL template engine with
// metadata-driven entity-to-table mapping.
//
// Templates are caller-authored format strings with "?" holes. Values bound
// through holes always travel as driver parameters, never as statement
// text; literal SQL enters a statement only through validated fragments.
// The schema registry derives and memoizes per-entity table and column
// metadata, and the query package binds that metadata to per-query aliases,
// validating field references before any statement reaches a database.
//
//	reg := schema.NewRegistry()
//	g := query.For[Group](ctx, reg, "g")
//	t := template.New("SELECT ? FROM ? WHERE ? IN ?",
//		g.SelectAll(), g.Table(), g.Col("ID"), template.In([]int64{1, 2, 3}))
//	sql, args, err := template.Render(t)
//	// SELECT g.id AS i_on_g, g.name AS n_on_g FROM groups g
//	// WHERE g.id IN (?, ?, ?)   args: [1 2 3]
package sqlt
