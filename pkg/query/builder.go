package query

import (
	"fmt"
	"strings"
)

// SortField represents a single column in an ORDER BY clause.
// Field is the logical field name (mapped via ProjectionMap).
// Descending controls sort direction (false = ASC, true = DESC).
type SortField struct {
	Field      string
	Descending bool
}

// Builder constructs full-scan SELECT statements over a projection.
type Builder struct {
	projection        *ProjectionMap
	defaultSortFields []SortField
}

// NewBuilder creates a Builder for the given projection ordered by the given sort fields.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:        projection,
		defaultSortFields: defaultSort,
	}
}

// Build returns a SELECT statement over every projected column with the current ordering.
func (b *Builder) Build() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "SELECT %s FROM %s", b.projection.Columns(), b.projection.Table())

	sb.WriteString(b.buildOrderBy())

	return sb.String()
}

func (b *Builder) buildOrderBy() string {
	fields := b.defaultSortFields
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = fmt.Sprintf("%s %s", b.projection.Column(f.Field), dir)
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}
