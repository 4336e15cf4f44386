package xerrors

import (
	"errors"
	"sort"
	"strings"
)

// RoutingConflictError is returned when one unsplittable request touches tables
// owned by different endpoints
type RoutingConflictError struct {
	// Tables maps table name to address of its owner
	Tables map[string]string
}

func (e *RoutingConflictError) Error() string {
	tables := make([]string, 0, len(e.Tables))
	for table := range e.Tables {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	var b strings.Builder
	b.WriteString("routing conflict: tables are owned by different endpoints [")
	for i, table := range tables {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(table)
		b.WriteString(" -> ")
		b.WriteString(e.Tables[table])
	}
	b.WriteByte(']')

	return b.String()
}

func IsRoutingConflict(err error) bool {
	var r *RoutingConflictError

	return errors.As(err, &r)
}

// NoRouteError lists tables which server does not know about
type NoRouteError struct {
	Tables []string
}

func (e *NoRouteError) Error() string {
	return "no route for tables [" + strings.Join(e.Tables, ", ") + "]"
}

func IsNoRoute(err error) bool {
	var r *NoRouteError

	return errors.As(err, &r)
}
