package storagepb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

const (
	ServiceName = "storage.StorageService"

	RouteFullMethodName    = "/storage.StorageService/Route"
	WriteFullMethodName    = "/storage.StorageService/Write"
	SQLQueryFullMethodName = "/storage.StorageService/SqlQuery"
)

var (
	optional = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	repeated = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
)

func field(
	name string, number int32, label *descriptorpb.FieldDescriptorProto_Label,
	typ descriptorpb.FieldDescriptorProto_Type, typeName string,
) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(jsonName(name)),
		Number:   proto.Int32(number),
		Label:    label,
		Type:     typ.Enum(),
	}
	if typeName != "" {
		f.TypeName = proto.String(typeName)
	}

	return f
}

func oneofField(
	name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, typeName string, oneof int32,
) *descriptorpb.FieldDescriptorProto {
	f := field(name, number, optional, typ, typeName)
	f.OneofIndex = proto.Int32(oneof)

	return f
}

func jsonName(name string) string {
	b := make([]byte, 0, len(name))
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_':
			upper = true
		case upper && 'a' <= c && c <= 'z':
			b = append(b, c-'a'+'A')
			upper = false
		default:
			b = append(b, c)
			upper = false
		}
	}

	return string(b)
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:  proto.String(name),
		Field: fields,
	}
}

func commonFile() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("common.proto"),
		Package: proto.String("common"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			message("ResponseHeader",
				field("code", 1, optional, descriptorpb.FieldDescriptorProto_TYPE_UINT32, ""),
				field("error", 2, optional, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
			),
		},
	}
}

//nolint:funlen
func storageFile() *descriptorpb.FileDescriptorProto {
	const (
		tString  = descriptorpb.FieldDescriptorProto_TYPE_STRING
		tBytes   = descriptorpb.FieldDescriptorProto_TYPE_BYTES
		tBool    = descriptorpb.FieldDescriptorProto_TYPE_BOOL
		tDouble  = descriptorpb.FieldDescriptorProto_TYPE_DOUBLE
		tFloat   = descriptorpb.FieldDescriptorProto_TYPE_FLOAT
		tInt32   = descriptorpb.FieldDescriptorProto_TYPE_INT32
		tInt64   = descriptorpb.FieldDescriptorProto_TYPE_INT64
		tUint32  = descriptorpb.FieldDescriptorProto_TYPE_UINT32
		tUint64  = descriptorpb.FieldDescriptorProto_TYPE_UINT64
		tMessage = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
		tEnum    = descriptorpb.FieldDescriptorProto_TYPE_ENUM
	)

	value := message("Value",
		oneofField("float64_value", int32(KindFloat64), tDouble, "", 0),
		oneofField("string_value", int32(KindString), tString, "", 0),
		oneofField("int64_value", int32(KindInt64), tInt64, "", 0),
		oneofField("float32_value", int32(KindFloat32), tFloat, "", 0),
		oneofField("int32_value", int32(KindInt32), tInt32, "", 0),
		oneofField("int16_value", int32(KindInt16), tInt32, "", 0),
		oneofField("int8_value", int32(KindInt8), tInt32, "", 0),
		oneofField("bool_value", int32(KindBool), tBool, "", 0),
		oneofField("uint64_value", int32(KindUint64), tUint64, "", 0),
		oneofField("uint32_value", int32(KindUint32), tUint32, "", 0),
		oneofField("uint16_value", int32(KindUint16), tUint32, "", 0),
		oneofField("uint8_value", int32(KindUint8), tUint32, "", 0),
		oneofField("timestamp_value", int32(KindTimestamp), tInt64, "", 0),
		oneofField("varbinary_value", int32(KindVarbinary), tBytes, "", 0),
	)
	value.OneofDecl = []*descriptorpb.OneofDescriptorProto{{Name: proto.String("value")}}

	arrow := message("ArrowPayload",
		field("record_batches", 1, repeated, tBytes, ""),
		field("compression", 2, optional, tEnum, ".storage.ArrowPayload.Compression"),
	)
	arrow.EnumType = []*descriptorpb.EnumDescriptorProto{{
		Name: proto.String("Compression"),
		Value: []*descriptorpb.EnumValueDescriptorProto{
			{Name: proto.String("NONE"), Number: proto.Int32(int32(CompressionNone))},
			{Name: proto.String("ZSTD"), Number: proto.Int32(int32(CompressionZstd))},
		},
	}}

	sqlQueryResponse := message("SqlQueryResponse",
		field("header", 1, optional, tMessage, ".common.ResponseHeader"),
		oneofField("arrow", 2, tMessage, ".storage.ArrowPayload", 0),
		oneofField("affected_rows", 3, tUint32, "", 0),
	)
	sqlQueryResponse.OneofDecl = []*descriptorpb.OneofDescriptorProto{{Name: proto.String("output")}}

	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String("storage.proto"),
		Package:    proto.String("storage"),
		Syntax:     proto.String("proto3"),
		Dependency: []string{"common.proto"},
		MessageType: []*descriptorpb.DescriptorProto{
			message("RequestContext",
				field("database", 1, optional, tString, ""),
			),
			message("RouteRequest",
				field("context", 1, optional, tMessage, ".storage.RequestContext"),
				field("tables", 2, repeated, tString, ""),
			),
			message("Endpoint",
				field("ip", 1, optional, tString, ""),
				field("port", 2, optional, tUint32, ""),
			),
			message("Route",
				field("table", 1, optional, tString, ""),
				field("endpoint", 2, optional, tMessage, ".storage.Endpoint"),
			),
			message("RouteResponse",
				field("header", 1, optional, tMessage, ".common.ResponseHeader"),
				field("routes", 2, repeated, tMessage, ".storage.Route"),
			),
			value,
			message("Field",
				field("name_index", 1, optional, tUint32, ""),
				field("value", 2, optional, tMessage, ".storage.Value"),
			),
			message("FieldGroup",
				field("timestamp", 1, optional, tInt64, ""),
				field("fields", 2, repeated, tMessage, ".storage.Field"),
			),
			message("Tag",
				field("name_index", 1, optional, tUint32, ""),
				field("value", 2, optional, tMessage, ".storage.Value"),
			),
			message("WriteSeriesEntry",
				field("tags", 1, repeated, tMessage, ".storage.Tag"),
				field("field_groups", 2, repeated, tMessage, ".storage.FieldGroup"),
			),
			message("WriteTableRequest",
				field("table", 1, optional, tString, ""),
				field("tag_names", 2, repeated, tString, ""),
				field("field_names", 3, repeated, tString, ""),
				field("entries", 4, repeated, tMessage, ".storage.WriteSeriesEntry"),
			),
			message("WriteRequest",
				field("context", 1, optional, tMessage, ".storage.RequestContext"),
				field("table_requests", 2, repeated, tMessage, ".storage.WriteTableRequest"),
			),
			message("WriteResponse",
				field("header", 1, optional, tMessage, ".common.ResponseHeader"),
				field("success", 2, optional, tUint32, ""),
				field("failed", 3, optional, tUint32, ""),
			),
			message("SqlQueryRequest",
				field("context", 1, optional, tMessage, ".storage.RequestContext"),
				field("tables", 2, repeated, tString, ""),
				field("sql", 3, optional, tString, ""),
			),
			arrow,
			sqlQueryResponse,
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("StorageService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				{
					Name:       proto.String("Route"),
					InputType:  proto.String(".storage.RouteRequest"),
					OutputType: proto.String(".storage.RouteResponse"),
				},
				{
					Name:       proto.String("Write"),
					InputType:  proto.String(".storage.WriteRequest"),
					OutputType: proto.String(".storage.WriteResponse"),
				},
				{
					Name:       proto.String("SqlQuery"),
					InputType:  proto.String(".storage.SqlQueryRequest"),
					OutputType: proto.String(".storage.SqlQueryResponse"),
				},
			},
		}},
	}
}

// File is the storage service schema
var File = mustBuild()

func mustBuild() protoreflect.FileDescriptor {
	files := new(protoregistry.Files)

	common, err := protodesc.NewFile(commonFile(), files)
	if err != nil {
		panic(fmt.Sprintf("storagepb: build common.proto: %v", err))
	}
	if err = files.RegisterFile(common); err != nil {
		panic(fmt.Sprintf("storagepb: register common.proto: %v", err))
	}

	storage, err := protodesc.NewFile(storageFile(), files)
	if err != nil {
		panic(fmt.Sprintf("storagepb: build storage.proto: %v", err))
	}

	return storage
}

func messageDescriptor(name protoreflect.Name) protoreflect.MessageDescriptor {
	md := File.Messages().ByName(name)
	if md == nil {
		panic(fmt.Sprintf("storagepb: unknown message %q", name))
	}

	return md
}

var (
	requestContextDesc    = messageDescriptor("RequestContext")
	routeRequestDesc      = messageDescriptor("RouteRequest")
	endpointDesc          = messageDescriptor("Endpoint")
	routeDesc             = messageDescriptor("Route")
	routeResponseDesc     = messageDescriptor("RouteResponse")
	valueDesc             = messageDescriptor("Value")
	fieldDesc             = messageDescriptor("Field")
	fieldGroupDesc        = messageDescriptor("FieldGroup")
	tagDesc               = messageDescriptor("Tag")
	writeSeriesEntryDesc  = messageDescriptor("WriteSeriesEntry")
	writeTableRequestDesc = messageDescriptor("WriteTableRequest")
	writeRequestDesc      = messageDescriptor("WriteRequest")
	writeResponseDesc     = messageDescriptor("WriteResponse")
	sqlQueryRequestDesc   = messageDescriptor("SqlQueryRequest")
	arrowPayloadDesc      = messageDescriptor("ArrowPayload")
	sqlQueryResponseDesc  = messageDescriptor("SqlQueryResponse")
	responseHeaderDesc    = routeResponseDesc.Fields().ByName("header").Message()
)
