package storagepb

import (
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Kind is a field number of the `value` oneof
type Kind int32

const (
	KindNull      = Kind(0)
	KindFloat64   = Kind(1)
	KindString    = Kind(2)
	KindInt64     = Kind(3)
	KindFloat32   = Kind(4)
	KindInt32     = Kind(5)
	KindInt16     = Kind(6)
	KindInt8      = Kind(7)
	KindBool      = Kind(8)
	KindUint64    = Kind(9)
	KindUint32    = Kind(10)
	KindUint16    = Kind(11)
	KindUint8     = Kind(12)
	KindTimestamp = Kind(13)
	KindVarbinary = Kind(14)
)

// Value is a flattened `storage.Value`: only the slot selected by Kind is meaningful
type Value struct {
	Kind  Kind
	Int   int64
	Uint  uint64
	Float float64
	Bool  bool
	Str   string
	Bytes []byte
}

func (v Value) toProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(valueDesc)
	if v.Kind == KindNull {
		return m
	}

	fd := valueDesc.Fields().ByNumber(protoreflect.FieldNumber(v.Kind))
	if fd == nil {
		return m
	}

	var pv protoreflect.Value
	switch v.Kind {
	case KindFloat64:
		pv = protoreflect.ValueOfFloat64(v.Float)
	case KindFloat32:
		pv = protoreflect.ValueOfFloat32(float32(v.Float))
	case KindString:
		pv = protoreflect.ValueOfString(v.Str)
	case KindInt64, KindTimestamp:
		pv = protoreflect.ValueOfInt64(v.Int)
	case KindInt32, KindInt16, KindInt8:
		pv = protoreflect.ValueOfInt32(int32(v.Int))
	case KindUint64:
		pv = protoreflect.ValueOfUint64(v.Uint)
	case KindUint32, KindUint16, KindUint8:
		pv = protoreflect.ValueOfUint32(uint32(v.Uint))
	case KindBool:
		pv = protoreflect.ValueOfBool(v.Bool)
	case KindVarbinary:
		pv = protoreflect.ValueOfBytes(v.Bytes)
	default:
		return m
	}
	m.Set(fd, pv)

	return m
}

// valueFromProto reads `value` field of parent Tag or Field message
func valueFromProto(parent protoreflect.Message) Value {
	f := parent.Descriptor().Fields().ByName("value")
	if !parent.Has(f) {
		return Value{}
	}
	m := parent.Get(f).Message()

	fd := m.WhichOneof(valueDesc.Oneofs().ByName("value"))
	if fd == nil {
		return Value{}
	}

	v := Value{Kind: Kind(fd.Number())}
	pv := m.Get(fd)
	switch v.Kind {
	case KindFloat64, KindFloat32:
		v.Float = pv.Float()
	case KindString:
		v.Str = pv.String()
	case KindInt64, KindTimestamp, KindInt32, KindInt16, KindInt8:
		v.Int = pv.Int()
	case KindUint64, KindUint32, KindUint16, KindUint8:
		v.Uint = pv.Uint()
	case KindBool:
		v.Bool = pv.Bool()
	case KindVarbinary:
		v.Bytes = pv.Bytes()
	}

	return v
}
