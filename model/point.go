package model

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrEmptyTable      = errors.New("table name is empty")
	ErrNoTimestamp     = errors.New("timestamp is not set")
	ErrNoFields        = errors.New("point has no fields")
	ErrEmptyColumnName = errors.New("column name is empty")
	ErrReservedColumn  = errors.New("column name is reserved")
)

// reserved names of columns maintained by server
var reservedColumns = map[string]struct{}{
	"timestamp": {},
	"tsid":      {},
}

// Point is a single row of a table: tags identify the series, fields carry data
type Point struct {
	table     string
	timestamp int64
	tags      map[string]Value
	fields    map[string]Value
}

func (p Point) Table() string {
	return p.table
}

// Timestamp in milliseconds since unix epoch
func (p Point) Timestamp() int64 {
	return p.timestamp
}

func (p Point) Tags() map[string]Value {
	return p.tags
}

func (p Point) Fields() map[string]Value {
	return p.fields
}

// TagNames returns tag names in ascending order
func (p Point) TagNames() []string {
	return sortedKeys(p.tags)
}

// FieldNames returns field names in ascending order
func (p Point) FieldNames() []string {
	return sortedKeys(p.fields)
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// PointBuilder accumulates point columns, errors are reported by Build
type PointBuilder struct {
	table        string
	timestamp    int64
	hasTimestamp bool
	tags         map[string]Value
	fields       map[string]Value
}

func NewPointBuilder(table string) *PointBuilder {
	return &PointBuilder{
		table:  table,
		tags:   make(map[string]Value),
		fields: make(map[string]Value),
	}
}

// SetTimestamp sets timestamp in milliseconds since unix epoch
func (b *PointBuilder) SetTimestamp(ms int64) *PointBuilder {
	b.timestamp = ms
	b.hasTimestamp = true

	return b
}

// AddTag sets tag value, a repeated name overwrites previous value
func (b *PointBuilder) AddTag(name string, v Value) *PointBuilder {
	b.tags[name] = v

	return b
}

// AddField sets field value, a repeated name overwrites previous value
func (b *PointBuilder) AddField(name string, v Value) *PointBuilder {
	b.fields[name] = v

	return b
}

func (b *PointBuilder) Build() (Point, error) {
	if b.table == "" {
		return Point{}, ErrEmptyTable
	}
	if !b.hasTimestamp {
		return Point{}, fmt.Errorf("table %q: %w", b.table, ErrNoTimestamp)
	}
	if len(b.fields) == 0 {
		return Point{}, fmt.Errorf("table %q: %w", b.table, ErrNoFields)
	}
	for _, columns := range []map[string]Value{b.tags, b.fields} {
		for name := range columns {
			if name == "" {
				return Point{}, fmt.Errorf("table %q: %w", b.table, ErrEmptyColumnName)
			}
			if _, has := reservedColumns[name]; has {
				return Point{}, fmt.Errorf("table %q, column %q: %w", b.table, name, ErrReservedColumn)
			}
		}
	}

	p := Point{
		table:     b.table,
		timestamp: b.timestamp,
		tags:      make(map[string]Value, len(b.tags)),
		fields:    make(map[string]Value, len(b.fields)),
	}
	for k, v := range b.tags {
		p.tags[k] = v
	}
	for k, v := range b.fields {
		p.fields[k] = v
	}

	return p, nil
}
