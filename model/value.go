package model

import (
	"fmt"
	"strconv"
)

// DataType is the type of a column value
type DataType int

const (
	Null = DataType(iota)
	Timestamp
	Double
	Float
	Varbinary
	String
	UInt64
	UInt32
	UInt16
	UInt8
	Int64
	Int32
	Int16
	Int8
	Boolean
)

func (t DataType) String() string {
	switch t {
	case Null:
		return "null"
	case Timestamp:
		return "timestamp"
	case Double:
		return "double"
	case Float:
		return "float"
	case Varbinary:
		return "varbinary"
	case String:
		return "string"
	case UInt64:
		return "uint64"
	case UInt32:
		return "uint32"
	case UInt16:
		return "uint16"
	case UInt8:
		return "uint8"
	case Int64:
		return "int64"
	case Int32:
		return "int32"
	case Int16:
		return "int16"
	case Int8:
		return "int8"
	case Boolean:
		return "boolean"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// Value is an immutable typed value of a tag or a field.
// Zero Value is null.
type Value struct {
	dataType DataType
	i        int64
	u        uint64
	f        float64
	b        bool
	s        string
	bytes    []byte
}

func NewNullValue() Value {
	return Value{}
}

// NewTimestampValue creates timestamp value in milliseconds since unix epoch
func NewTimestampValue(ms int64) Value {
	return Value{dataType: Timestamp, i: ms}
}

func NewDoubleValue(v float64) Value {
	return Value{dataType: Double, f: v}
}

func NewFloatValue(v float32) Value {
	return Value{dataType: Float, f: float64(v)}
}

func NewVarbinaryValue(v []byte) Value {
	return Value{dataType: Varbinary, bytes: append([]byte(nil), v...)}
}

func NewStringValue(v string) Value {
	return Value{dataType: String, s: v}
}

func NewUint64Value(v uint64) Value {
	return Value{dataType: UInt64, u: v}
}

func NewUint32Value(v uint32) Value {
	return Value{dataType: UInt32, u: uint64(v)}
}

func NewUint16Value(v uint16) Value {
	return Value{dataType: UInt16, u: uint64(v)}
}

func NewUint8Value(v uint8) Value {
	return Value{dataType: UInt8, u: uint64(v)}
}

func NewInt64Value(v int64) Value {
	return Value{dataType: Int64, i: v}
}

func NewInt32Value(v int32) Value {
	return Value{dataType: Int32, i: int64(v)}
}

func NewInt16Value(v int16) Value {
	return Value{dataType: Int16, i: int64(v)}
}

func NewInt8Value(v int8) Value {
	return Value{dataType: Int8, i: int64(v)}
}

func NewBoolValue(v bool) Value {
	return Value{dataType: Boolean, b: v}
}

func (v Value) DataType() DataType {
	return v.dataType
}

func (v Value) IsNull() bool {
	return v.dataType == Null
}

// Int returns value of Timestamp and signed integer types
func (v Value) Int() int64 {
	return v.i
}

// Uint returns value of unsigned integer types
func (v Value) Uint() uint64 {
	return v.u
}

// Float returns value of Double and Float types
func (v Value) Float() float64 {
	return v.f
}

func (v Value) Bool() bool {
	return v.b
}

func (v Value) Str() string {
	return v.s
}

func (v Value) Bytes() []byte {
	return v.bytes
}

func (v Value) String() string {
	switch v.dataType {
	case Null:
		return "null"
	case Timestamp, Int64, Int32, Int16, Int8:
		return strconv.FormatInt(v.i, 10)
	case UInt64, UInt32, UInt16, UInt8:
		return strconv.FormatUint(v.u, 10)
	case Double:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case Boolean:
		return strconv.FormatBool(v.b)
	case String:
		return v.s
	case Varbinary:
		return fmt.Sprintf("%x", v.bytes)
	default:
		return "unknown"
	}
}
