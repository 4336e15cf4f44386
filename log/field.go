package log

import (
	"fmt"
	"strconv"
	"time"
)

type FieldType int

const (
	InvalidType FieldType = iota
	IntType
	Int64Type
	StringType
	BoolType
	DurationType
	StringsType
	ErrorType
	StringerType
	AnyType
)

// Field is a typed key-value pair of log record.
// Only the slot selected by ftype is meaningful.
type Field struct {
	ftype FieldType
	key   string

	vint int64
	vstr string
	vany interface{}
}

func (f Field) Type() FieldType {
	return f.ftype
}

func (f Field) Key() string {
	return f.key
}

func (f Field) IntValue() int {
	return int(f.vint)
}

func (f Field) Int64Value() int64 {
	return f.vint
}

func (f Field) StringValue() string {
	return f.vstr
}

func (f Field) BoolValue() bool {
	return f.vint != 0
}

func (f Field) DurationValue() time.Duration {
	return time.Duration(f.vint)
}

func (f Field) StringsValue() []string {
	v, _ := f.vany.([]string)

	return v
}

func (f Field) ErrorValue() error {
	v, _ := f.vany.(error)

	return v
}

func (f Field) StringerValue() fmt.Stringer {
	v, _ := f.vany.(fmt.Stringer)

	return v
}

func (f Field) AnyValue() interface{} {
	return f.vany
}

// String returns a human-readable representation of value regardless of its type
func (f Field) String() string {
	switch f.ftype {
	case IntType, Int64Type:
		return strconv.FormatInt(f.vint, 10)
	case StringType:
		return f.vstr
	case BoolType:
		return strconv.FormatBool(f.BoolValue())
	case DurationType:
		return f.DurationValue().String()
	case StringsType:
		return fmt.Sprintf("%v", f.StringsValue())
	case ErrorType:
		if err := f.ErrorValue(); err != nil {
			return err.Error()
		}

		return "<nil>"
	case StringerType:
		if s := f.StringerValue(); s != nil {
			return s.String()
		}

		return "<nil>"
	case AnyType:
		return fmt.Sprintf("%v", f.vany)
	default:
		panic(fmt.Sprintf("log: unknown field type %d of %q", f.ftype, f.key))
	}
}

func Int(k string, v int) Field {
	return Field{ftype: IntType, key: k, vint: int64(v)}
}

func Int64(k string, v int64) Field {
	return Field{ftype: Int64Type, key: k, vint: v}
}

func String(k, v string) Field {
	return Field{ftype: StringType, key: k, vstr: v}
}

func Bool(k string, v bool) Field {
	var vint int64
	if v {
		vint = 1
	}

	return Field{ftype: BoolType, key: k, vint: vint}
}

func Duration(k string, v time.Duration) Field {
	return Field{ftype: DurationType, key: k, vint: v.Nanoseconds()}
}

func Strings(k string, v []string) Field {
	return Field{ftype: StringsType, key: k, vany: v}
}

func NamedError(k string, v error) Field {
	return Field{ftype: ErrorType, key: k, vany: v}
}

func Error(v error) Field {
	return NamedError("error", v)
}

func Stringer(k string, v fmt.Stringer) Field {
	return Field{ftype: StringerType, key: k, vany: v}
}

func Any(k string, v interface{}) Field {
	return Field{ftype: AnyType, key: k, vany: v}
}
