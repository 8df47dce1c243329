// Package query builds SQL statements from projection maps that tie logical field
// names to table columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view property names to columns of a single table.
// The schema may be empty, in which case table references are unqualified.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns map[string]string
	names   []string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
		names:   make([]string, 0),
	}
}

// Project adds a column mapping from database column to view property name.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	p.columns[viewName] = column
	p.names = append(p.names, column)
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Name returns the table name, schema-qualified when a schema is set.
func (p *ProjectionMap) Name() string {
	if p.schema == "" {
		return p.table
	}
	return p.schema + "." + p.table
}

// Table returns the table reference with its alias, for use in FROM clauses.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s %s", p.Name(), p.alias)
}

// Column returns the alias-qualified column for a view property name,
// or the input unchanged if not mapped.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return p.alias + "." + col
	}
	return viewName
}

// Columns returns all mapped columns, alias-qualified and comma-separated.
func (p *ProjectionMap) Columns() string {
	qualified := make([]string, len(p.names))
	for i, name := range p.names {
		qualified[i] = p.alias + "." + name
	}
	return strings.Join(qualified, ", ")
}

// Returning returns all mapped columns unqualified, for RETURNING clauses.
func (p *ProjectionMap) Returning() string {
	return strings.Join(p.names, ", ")
}
