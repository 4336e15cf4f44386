package client

import (
	"strconv"
	"strings"

	"github.com/horaedb/horaedb-client-go/internal/storagepb"
	"github.com/horaedb/horaedb-client-go/model"
)

func toStorageValue(v model.Value) storagepb.Value {
	switch v.DataType() {
	case model.Timestamp:
		return storagepb.Value{Kind: storagepb.KindTimestamp, Int: v.Int()}
	case model.Double:
		return storagepb.Value{Kind: storagepb.KindFloat64, Float: v.Float()}
	case model.Float:
		return storagepb.Value{Kind: storagepb.KindFloat32, Float: v.Float()}
	case model.Varbinary:
		return storagepb.Value{Kind: storagepb.KindVarbinary, Bytes: v.Bytes()}
	case model.String:
		return storagepb.Value{Kind: storagepb.KindString, Str: v.Str()}
	case model.UInt64:
		return storagepb.Value{Kind: storagepb.KindUint64, Uint: v.Uint()}
	case model.UInt32:
		return storagepb.Value{Kind: storagepb.KindUint32, Uint: v.Uint()}
	case model.UInt16:
		return storagepb.Value{Kind: storagepb.KindUint16, Uint: v.Uint()}
	case model.UInt8:
		return storagepb.Value{Kind: storagepb.KindUint8, Uint: v.Uint()}
	case model.Int64:
		return storagepb.Value{Kind: storagepb.KindInt64, Int: v.Int()}
	case model.Int32:
		return storagepb.Value{Kind: storagepb.KindInt32, Int: v.Int()}
	case model.Int16:
		return storagepb.Value{Kind: storagepb.KindInt16, Int: v.Int()}
	case model.Int8:
		return storagepb.Value{Kind: storagepb.KindInt8, Int: v.Int()}
	case model.Boolean:
		return storagepb.Value{Kind: storagepb.KindBool, Bool: v.Bool()}
	default:
		return storagepb.Value{Kind: storagepb.KindNull}
	}
}

// toWriteTableRequests groups points by table and by series.
// Tables keep order of first appearance, points of one series are kept in one entry.
func toWriteTableRequests(points []model.Point) []storagepb.WriteTableRequest {
	type tableBuilder struct {
		req     storagepb.WriteTableRequest
		tags    map[string]uint32
		fields  map[string]uint32
		entries map[string]int
	}

	var (
		order    []string
		builders = make(map[string]*tableBuilder)
	)
	for _, p := range points {
		b, has := builders[p.Table()]
		if !has {
			b = &tableBuilder{
				req:     storagepb.WriteTableRequest{Table: p.Table()},
				tags:    make(map[string]uint32),
				fields:  make(map[string]uint32),
				entries: make(map[string]int),
			}
			builders[p.Table()] = b
			order = append(order, p.Table())
		}

		tagNames := p.TagNames()
		key := seriesKey(p, tagNames)
		idx, has := b.entries[key]
		if !has {
			entry := storagepb.WriteSeriesEntry{
				Tags: make([]storagepb.Tag, 0, len(tagNames)),
			}
			for _, name := range tagNames {
				entry.Tags = append(entry.Tags, storagepb.Tag{
					NameIndex: nameIndex(b.tags, &b.req.TagNames, name),
					Value:     toStorageValue(p.Tags()[name]),
				})
			}
			idx = len(b.req.Entries)
			b.entries[key] = idx
			b.req.Entries = append(b.req.Entries, entry)
		}

		fieldNames := p.FieldNames()
		group := storagepb.FieldGroup{
			Timestamp: p.Timestamp(),
			Fields:    make([]storagepb.Field, 0, len(fieldNames)),
		}
		for _, name := range fieldNames {
			group.Fields = append(group.Fields, storagepb.Field{
				NameIndex: nameIndex(b.fields, &b.req.FieldNames, name),
				Value:     toStorageValue(p.Fields()[name]),
			})
		}
		b.req.Entries[idx].FieldGroups = append(b.req.Entries[idx].FieldGroups, group)
	}

	requests := make([]storagepb.WriteTableRequest, 0, len(order))
	for _, table := range order {
		requests = append(requests, builders[table].req)
	}

	return requests
}

func nameIndex(indexes map[string]uint32, names *[]string, name string) uint32 {
	if idx, has := indexes[name]; has {
		return idx
	}
	idx := uint32(len(*names))
	indexes[name] = idx
	*names = append(*names, name)

	return idx
}

// seriesKey identifies series by its sorted tag names and typed values.
// Every part is length prefixed so arbitrary tag bytes can't collide.
func seriesKey(p model.Point, tagNames []string) string {
	var b strings.Builder
	for _, name := range tagNames {
		v := p.Tags()[name]
		for _, part := range [...]string{name, v.DataType().String(), v.String()} {
			b.WriteString(strconv.Itoa(len(part)))
			b.WriteByte(':')
			b.WriteString(part)
		}
	}

	return b.String()
}

func fromStorageQueryResponse(resp *storagepb.SQLQueryResponse) *model.SQLQueryResponse {
	res := &model.SQLQueryResponse{
		AffectedRows: resp.AffectedRows,
	}
	if resp.Arrow != nil {
		res.RecordBatches = resp.Arrow.RecordBatches
		if resp.Arrow.Compression == storagepb.CompressionZstd {
			res.Compression = model.CompressionZstd
		}
	}

	return res
}

// groupByTable returns points of every table and tables in order of first appearance
func groupByTable(points []model.Point) (map[string][]model.Point, []string) {
	var (
		tables  []string
		byTable = make(map[string][]model.Point)
	)
	for _, p := range points {
		if _, has := byTable[p.Table()]; !has {
			tables = append(tables, p.Table())
		}
		byTable[p.Table()] = append(byTable[p.Table()], p)
	}

	return byTable, tables
}
