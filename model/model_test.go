package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	for _, tt := range []struct {
		v        Value
		dataType DataType
		str      string
	}{
		{v: NewNullValue(), dataType: Null, str: "null"},
		{v: Value{}, dataType: Null, str: "null"},
		{v: NewTimestampValue(1700000000000), dataType: Timestamp, str: "1700000000000"},
		{v: NewDoubleValue(0.5), dataType: Double, str: "0.5"},
		{v: NewFloatValue(1.5), dataType: Float, str: "1.5"},
		{v: NewVarbinaryValue([]byte{0xab, 0x01}), dataType: Varbinary, str: "ab01"},
		{v: NewStringValue("host-1"), dataType: String, str: "host-1"},
		{v: NewUint64Value(math.MaxUint64), dataType: UInt64, str: "18446744073709551615"},
		{v: NewUint32Value(32), dataType: UInt32, str: "32"},
		{v: NewUint16Value(16), dataType: UInt16, str: "16"},
		{v: NewUint8Value(8), dataType: UInt8, str: "8"},
		{v: NewInt64Value(math.MinInt64), dataType: Int64, str: "-9223372036854775808"},
		{v: NewInt32Value(-32), dataType: Int32, str: "-32"},
		{v: NewInt16Value(-16), dataType: Int16, str: "-16"},
		{v: NewInt8Value(-8), dataType: Int8, str: "-8"},
		{v: NewBoolValue(true), dataType: Boolean, str: "true"},
	} {
		t.Run(tt.dataType.String(), func(t *testing.T) {
			require.Equal(t, tt.dataType, tt.v.DataType())
			require.Equal(t, tt.dataType == Null, tt.v.IsNull())
			require.Equal(t, tt.str, tt.v.String())
		})
	}
}

func TestVarbinaryValueCopied(t *testing.T) {
	b := []byte{1, 2, 3}
	v := NewVarbinaryValue(b)
	b[0] = 9
	require.Equal(t, []byte{1, 2, 3}, v.Bytes())
}

func TestPointBuilder(t *testing.T) {
	t.Run("Build", func(t *testing.T) {
		p, err := NewPointBuilder("cpu").
			SetTimestamp(1000).
			AddTag("host", NewStringValue("h1")).
			AddTag("dc", NewStringValue("eu")).
			AddField("value", NewDoubleValue(0.5)).
			AddField("count", NewUint32Value(1)).
			Build()
		require.NoError(t, err)
		require.Equal(t, "cpu", p.Table())
		require.EqualValues(t, 1000, p.Timestamp())
		require.Equal(t, []string{"dc", "host"}, p.TagNames())
		require.Equal(t, []string{"count", "value"}, p.FieldNames())
		require.Equal(t, NewStringValue("h1"), p.Tags()["host"])
	})
	t.Run("BuilderReuse", func(t *testing.T) {
		b := NewPointBuilder("cpu").SetTimestamp(1).AddField("value", NewDoubleValue(1))
		first, err := b.Build()
		require.NoError(t, err)
		b.AddField("other", NewDoubleValue(2))
		require.Len(t, first.Fields(), 1)
	})
	for _, tt := range []struct {
		name string
		b    *PointBuilder
		err  error
	}{
		{
			name: "EmptyTable",
			b:    NewPointBuilder("").SetTimestamp(1).AddField("value", NewDoubleValue(1)),
			err:  ErrEmptyTable,
		},
		{
			name: "NoTimestamp",
			b:    NewPointBuilder("cpu").AddField("value", NewDoubleValue(1)),
			err:  ErrNoTimestamp,
		},
		{
			name: "NoFields",
			b:    NewPointBuilder("cpu").SetTimestamp(1).AddTag("host", NewStringValue("h1")),
			err:  ErrNoFields,
		},
		{
			name: "EmptyTagName",
			b:    NewPointBuilder("cpu").SetTimestamp(1).AddTag("", NewStringValue("h1")).AddField("value", NewDoubleValue(1)),
			err:  ErrEmptyColumnName,
		},
		{
			name: "ReservedTag",
			b:    NewPointBuilder("cpu").SetTimestamp(1).AddTag("tsid", NewUint64Value(1)).AddField("value", NewDoubleValue(1)),
			err:  ErrReservedColumn,
		},
		{
			name: "ReservedField",
			b:    NewPointBuilder("cpu").SetTimestamp(1).AddField("timestamp", NewTimestampValue(1)),
			err:  ErrReservedColumn,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Build()
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestWriteRequestTables(t *testing.T) {
	point := func(table string) Point {
		p, err := NewPointBuilder(table).SetTimestamp(1).AddField("value", NewDoubleValue(1)).Build()
		require.NoError(t, err)

		return p
	}

	r := NewWriteRequest(point("t2"), point("t1"))
	r.AddPoint(point("t2"), point("t3"))

	require.Len(t, r.Points(), 4)
	require.Equal(t, []string{"t2", "t1", "t3"}, r.Tables())
	require.Empty(t, NewWriteRequest().Tables())
}
