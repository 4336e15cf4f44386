package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/horaedb/horaedb-client-go/internal/endpoint"
	"github.com/horaedb/horaedb-client-go/internal/storagepb"
	"github.com/horaedb/horaedb-client-go/model"
)

func mustPoint(t *testing.T, b *model.PointBuilder) model.Point {
	t.Helper()

	p, err := b.Build()
	require.NoError(t, err)

	return p
}

func TestToWriteTableRequests(t *testing.T) {
	points := []model.Point{
		mustPoint(t, model.NewPointBuilder("cpu").SetTimestamp(1).
			AddTag("host", model.NewStringValue("h1")).
			AddField("value", model.NewDoubleValue(0.5))),
		mustPoint(t, model.NewPointBuilder("mem").SetTimestamp(1).
			AddTag("host", model.NewStringValue("h1")).
			AddField("used", model.NewUint64Value(1024))),
		mustPoint(t, model.NewPointBuilder("cpu").SetTimestamp(1).
			AddTag("host", model.NewStringValue("h2")).
			AddField("value", model.NewDoubleValue(0.7))),
		mustPoint(t, model.NewPointBuilder("cpu").SetTimestamp(2).
			AddTag("host", model.NewStringValue("h1")).
			AddField("value", model.NewDoubleValue(0.6)).
			AddField("count", model.NewInt32Value(3))),
	}

	requests := toWriteTableRequests(points)
	require.Len(t, requests, 2)

	cpu := requests[0]
	require.Equal(t, "cpu", cpu.Table)
	require.Equal(t, []string{"host"}, cpu.TagNames)
	require.Equal(t, []string{"value", "count"}, cpu.FieldNames)
	require.Len(t, cpu.Entries, 2)

	h1 := cpu.Entries[0]
	require.Equal(t, []storagepb.Tag{
		{NameIndex: 0, Value: storagepb.Value{Kind: storagepb.KindString, Str: "h1"}},
	}, h1.Tags)
	require.Equal(t, []storagepb.FieldGroup{
		{
			Timestamp: 1,
			Fields: []storagepb.Field{
				{NameIndex: 0, Value: storagepb.Value{Kind: storagepb.KindFloat64, Float: 0.5}},
			},
		},
		{
			Timestamp: 2,
			Fields: []storagepb.Field{
				{NameIndex: 1, Value: storagepb.Value{Kind: storagepb.KindInt32, Int: 3}},
				{NameIndex: 0, Value: storagepb.Value{Kind: storagepb.KindFloat64, Float: 0.6}},
			},
		},
	}, h1.FieldGroups)

	h2 := cpu.Entries[1]
	require.Equal(t, "h2", h2.Tags[0].Value.Str)
	require.Len(t, h2.FieldGroups, 1)

	mem := requests[1]
	require.Equal(t, "mem", mem.Table)
	require.Equal(t, []string{"used"}, mem.FieldNames)
	require.Equal(t, storagepb.Value{Kind: storagepb.KindUint64, Uint: 1024}, mem.Entries[0].FieldGroups[0].Fields[0].Value)
}

func TestSeriesKeyTyped(t *testing.T) {
	points := []model.Point{
		mustPoint(t, model.NewPointBuilder("t").SetTimestamp(1).
			AddTag("id", model.NewStringValue("1")).
			AddField("value", model.NewDoubleValue(1))),
		mustPoint(t, model.NewPointBuilder("t").SetTimestamp(1).
			AddTag("id", model.NewInt64Value(1)).
			AddField("value", model.NewDoubleValue(1))),
		mustPoint(t, model.NewPointBuilder("t").SetTimestamp(1).
			AddField("value", model.NewDoubleValue(1))),
	}

	requests := toWriteTableRequests(points)
	require.Len(t, requests, 1)
	require.Len(t, requests[0].Entries, 3)
	require.Empty(t, requests[0].Entries[2].Tags)
}

func TestSeriesKeyTagValueWithSeparators(t *testing.T) {
	points := []model.Point{
		mustPoint(t, model.NewPointBuilder("cpu").SetTimestamp(1).
			AddTag("a", model.NewStringValue("x\x00b=string:y")).
			AddField("value", model.NewDoubleValue(1))),
		mustPoint(t, model.NewPointBuilder("cpu").SetTimestamp(2).
			AddTag("a", model.NewStringValue("x")).
			AddTag("b", model.NewStringValue("y")).
			AddField("value", model.NewDoubleValue(2))),
	}

	requests := toWriteTableRequests(points)
	require.Len(t, requests, 1)
	require.Equal(t, []string{"a", "b"}, requests[0].TagNames)
	require.Len(t, requests[0].Entries, 2)

	first := requests[0].Entries[0]
	require.Equal(t, []storagepb.Tag{
		{NameIndex: 0, Value: storagepb.Value{Kind: storagepb.KindString, Str: "x\x00b=string:y"}},
	}, first.Tags)
	require.Len(t, first.FieldGroups, 1)
	require.EqualValues(t, 1, first.FieldGroups[0].Timestamp)

	second := requests[0].Entries[1]
	require.Equal(t, []storagepb.Tag{
		{NameIndex: 0, Value: storagepb.Value{Kind: storagepb.KindString, Str: "x"}},
		{NameIndex: 1, Value: storagepb.Value{Kind: storagepb.KindString, Str: "y"}},
	}, second.Tags)
	require.Len(t, second.FieldGroups, 1)
	require.EqualValues(t, 2, second.FieldGroups[0].Timestamp)
}

func TestToStorageValue(t *testing.T) {
	for _, tt := range []struct {
		v   model.Value
		exp storagepb.Value
	}{
		{v: model.NewNullValue(), exp: storagepb.Value{Kind: storagepb.KindNull}},
		{v: model.NewTimestampValue(7), exp: storagepb.Value{Kind: storagepb.KindTimestamp, Int: 7}},
		{v: model.NewFloatValue(1.5), exp: storagepb.Value{Kind: storagepb.KindFloat32, Float: 1.5}},
		{v: model.NewVarbinaryValue([]byte{1}), exp: storagepb.Value{Kind: storagepb.KindVarbinary, Bytes: []byte{1}}},
		{v: model.NewUint8Value(8), exp: storagepb.Value{Kind: storagepb.KindUint8, Uint: 8}},
		{v: model.NewInt16Value(-16), exp: storagepb.Value{Kind: storagepb.KindInt16, Int: -16}},
		{v: model.NewBoolValue(true), exp: storagepb.Value{Kind: storagepb.KindBool, Bool: true}},
	} {
		t.Run(tt.v.DataType().String(), func(t *testing.T) {
			require.Equal(t, tt.exp, toStorageValue(tt.v))
		})
	}
}

func TestFromStorageQueryResponse(t *testing.T) {
	resp := fromStorageQueryResponse(&storagepb.SQLQueryResponse{
		Arrow: &storagepb.ArrowPayload{
			RecordBatches: [][]byte{{1}, {2}},
			Compression:   storagepb.CompressionZstd,
		},
	})
	require.Equal(t, model.CompressionZstd, resp.Compression)
	require.Equal(t, [][]byte{{1}, {2}}, resp.RecordBatches)

	resp = fromStorageQueryResponse(&storagepb.SQLQueryResponse{AffectedRows: 3})
	require.Equal(t, model.CompressionNone, resp.Compression)
	require.Empty(t, resp.RecordBatches)
	require.EqualValues(t, 3, resp.AffectedRows)
}

func TestPartitionByEndpoint(t *testing.T) {
	var (
		node1 = endpoint.New("10.0.0.1", 8831)
		node2 = endpoint.New("10.0.0.2", 8831)
	)

	parts := partitionByEndpoint([]string{"t3", "t1", "t2", "t4"}, map[string]endpoint.Endpoint{
		"t1": node1,
		"t2": node2,
		"t3": node2,
	})
	require.Len(t, parts, 2)
	require.Equal(t, node1, parts[0].endpoint)
	require.Equal(t, []string{"t1"}, parts[0].tables)
	require.Equal(t, node2, parts[1].endpoint)
	require.Equal(t, []string{"t3", "t2"}, parts[1].tables)
}
