package storagepb

import (
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

type Compression int32

const (
	CompressionNone = Compression(0)
	CompressionZstd = Compression(1)
)

type ResponseHeader struct {
	Code  uint32
	Error string
}

type RequestContext struct {
	Database string
}

type RouteRequest struct {
	Context RequestContext
	Tables  []string
}

type Endpoint struct {
	IP   string
	Port uint32
}

type Route struct {
	Table    string
	Endpoint *Endpoint
}

type RouteResponse struct {
	Header *ResponseHeader
	Routes []Route
}

type Field struct {
	NameIndex uint32
	Value     Value
}

type FieldGroup struct {
	Timestamp int64
	Fields    []Field
}

type Tag struct {
	NameIndex uint32
	Value     Value
}

type WriteSeriesEntry struct {
	Tags        []Tag
	FieldGroups []FieldGroup
}

type WriteTableRequest struct {
	Table      string
	TagNames   []string
	FieldNames []string
	Entries    []WriteSeriesEntry
}

type WriteRequest struct {
	Context       RequestContext
	TableRequests []WriteTableRequest
}

type WriteResponse struct {
	Header  *ResponseHeader
	Success uint32
	Failed  uint32
}

type SQLQueryRequest struct {
	Context RequestContext
	Tables  []string
	SQL     string
}

type ArrowPayload struct {
	RecordBatches [][]byte
	Compression   Compression
}

// SQLQueryResponse carries either Arrow payload or affected rows
type SQLQueryResponse struct {
	Header       *ResponseHeader
	Arrow        *ArrowPayload
	AffectedRows uint32
}

func NewRouteResponseMessage() *dynamicpb.Message {
	return dynamicpb.NewMessage(routeResponseDesc)
}

func NewWriteResponseMessage() *dynamicpb.Message {
	return dynamicpb.NewMessage(writeResponseDesc)
}

func NewSQLQueryResponseMessage() *dynamicpb.Message {
	return dynamicpb.NewMessage(sqlQueryResponseDesc)
}

func NewRouteRequestMessage() *dynamicpb.Message {
	return dynamicpb.NewMessage(routeRequestDesc)
}

func NewWriteRequestMessage() *dynamicpb.Message {
	return dynamicpb.NewMessage(writeRequestDesc)
}

func NewSQLQueryRequestMessage() *dynamicpb.Message {
	return dynamicpb.NewMessage(sqlQueryRequestDesc)
}

func (h *ResponseHeader) toProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(responseHeaderDesc)
	setUint32(m, "code", h.Code)
	setString(m, "error", h.Error)

	return m
}

// Header returns header of a storage response message, nil if header is absent
func Header(m protoreflect.Message) *ResponseHeader {
	return headerFromProto(m)
}

func headerFromProto(m protoreflect.Message) *ResponseHeader {
	f := m.Descriptor().Fields().ByName("header")
	if !m.Has(f) {
		return nil
	}
	h := m.Get(f).Message()

	return &ResponseHeader{
		Code:  getUint32(h, "code"),
		Error: getString(h, "error"),
	}
}

func setHeader(m *dynamicpb.Message, h *ResponseHeader) {
	if h != nil {
		setMessage(m, "header", h.toProto())
	}
}

func (c RequestContext) toProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(requestContextDesc)
	setString(m, "database", c.Database)

	return m
}

func requestContextFromProto(m protoreflect.Message) RequestContext {
	f := m.Descriptor().Fields().ByName("context")
	if !m.Has(f) {
		return RequestContext{}
	}

	return RequestContext{
		Database: getString(m.Get(f).Message(), "database"),
	}
}

func (r *RouteRequest) ToProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(routeRequestDesc)
	setMessage(m, "context", r.Context.toProto())
	setStrings(m, "tables", r.Tables)

	return m
}

func (r *RouteRequest) FromProto(m protoreflect.Message) {
	r.Context = requestContextFromProto(m)
	r.Tables = getStrings(m, "tables")
}

func (r *RouteResponse) ToProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(routeResponseDesc)
	setHeader(m, r.Header)
	routes := m.Mutable(routeResponseDesc.Fields().ByName("routes")).List()
	for i := range r.Routes {
		route := dynamicpb.NewMessage(routeDesc)
		setString(route, "table", r.Routes[i].Table)
		if e := r.Routes[i].Endpoint; e != nil {
			endpoint := dynamicpb.NewMessage(endpointDesc)
			setString(endpoint, "ip", e.IP)
			setUint32(endpoint, "port", e.Port)
			setMessage(route, "endpoint", endpoint)
		}
		routes.Append(protoreflect.ValueOfMessage(route))
	}

	return m
}

func (r *RouteResponse) FromProto(m protoreflect.Message) {
	r.Header = headerFromProto(m)
	routes := m.Get(m.Descriptor().Fields().ByName("routes")).List()
	r.Routes = make([]Route, 0, routes.Len())
	for i := 0; i < routes.Len(); i++ {
		route := routes.Get(i).Message()
		rr := Route{
			Table: getString(route, "table"),
		}
		if f := route.Descriptor().Fields().ByName("endpoint"); route.Has(f) {
			endpoint := route.Get(f).Message()
			rr.Endpoint = &Endpoint{
				IP:   getString(endpoint, "ip"),
				Port: getUint32(endpoint, "port"),
			}
		}
		r.Routes = append(r.Routes, rr)
	}
}

func (r *WriteRequest) ToProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(writeRequestDesc)
	setMessage(m, "context", r.Context.toProto())
	tableRequests := m.Mutable(writeRequestDesc.Fields().ByName("table_requests")).List()
	for i := range r.TableRequests {
		tableRequests.Append(protoreflect.ValueOfMessage(r.TableRequests[i].toProto()))
	}

	return m
}

func (r *WriteRequest) FromProto(m protoreflect.Message) {
	r.Context = requestContextFromProto(m)
	tableRequests := m.Get(m.Descriptor().Fields().ByName("table_requests")).List()
	r.TableRequests = make([]WriteTableRequest, tableRequests.Len())
	for i := range r.TableRequests {
		r.TableRequests[i].fromProto(tableRequests.Get(i).Message())
	}
}

func (r *WriteTableRequest) toProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(writeTableRequestDesc)
	setString(m, "table", r.Table)
	setStrings(m, "tag_names", r.TagNames)
	setStrings(m, "field_names", r.FieldNames)
	entries := m.Mutable(writeTableRequestDesc.Fields().ByName("entries")).List()
	for i := range r.Entries {
		entry := dynamicpb.NewMessage(writeSeriesEntryDesc)
		tags := entry.Mutable(writeSeriesEntryDesc.Fields().ByName("tags")).List()
		for _, tag := range r.Entries[i].Tags {
			t := dynamicpb.NewMessage(tagDesc)
			setUint32(t, "name_index", tag.NameIndex)
			setMessage(t, "value", tag.Value.toProto())
			tags.Append(protoreflect.ValueOfMessage(t))
		}
		groups := entry.Mutable(writeSeriesEntryDesc.Fields().ByName("field_groups")).List()
		for _, group := range r.Entries[i].FieldGroups {
			g := dynamicpb.NewMessage(fieldGroupDesc)
			setInt64(g, "timestamp", group.Timestamp)
			fields := g.Mutable(fieldGroupDesc.Fields().ByName("fields")).List()
			for _, field := range group.Fields {
				f := dynamicpb.NewMessage(fieldDesc)
				setUint32(f, "name_index", field.NameIndex)
				setMessage(f, "value", field.Value.toProto())
				fields.Append(protoreflect.ValueOfMessage(f))
			}
			groups.Append(protoreflect.ValueOfMessage(g))
		}
		entries.Append(protoreflect.ValueOfMessage(entry))
	}

	return m
}

func (r *WriteTableRequest) fromProto(m protoreflect.Message) {
	r.Table = getString(m, "table")
	r.TagNames = getStrings(m, "tag_names")
	r.FieldNames = getStrings(m, "field_names")
	entries := m.Get(m.Descriptor().Fields().ByName("entries")).List()
	r.Entries = make([]WriteSeriesEntry, entries.Len())
	for i := range r.Entries {
		entry := entries.Get(i).Message()
		tags := entry.Get(writeSeriesEntryDesc.Fields().ByName("tags")).List()
		for j := 0; j < tags.Len(); j++ {
			t := tags.Get(j).Message()
			r.Entries[i].Tags = append(r.Entries[i].Tags, Tag{
				NameIndex: getUint32(t, "name_index"),
				Value:     valueFromProto(t),
			})
		}
		groups := entry.Get(writeSeriesEntryDesc.Fields().ByName("field_groups")).List()
		for j := 0; j < groups.Len(); j++ {
			g := groups.Get(j).Message()
			group := FieldGroup{
				Timestamp: getInt64(g, "timestamp"),
			}
			fields := g.Get(fieldGroupDesc.Fields().ByName("fields")).List()
			for k := 0; k < fields.Len(); k++ {
				f := fields.Get(k).Message()
				group.Fields = append(group.Fields, Field{
					NameIndex: getUint32(f, "name_index"),
					Value:     valueFromProto(f),
				})
			}
			r.Entries[i].FieldGroups = append(r.Entries[i].FieldGroups, group)
		}
	}
}

func (r *WriteResponse) ToProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(writeResponseDesc)
	setHeader(m, r.Header)
	setUint32(m, "success", r.Success)
	setUint32(m, "failed", r.Failed)

	return m
}

func (r *WriteResponse) FromProto(m protoreflect.Message) {
	r.Header = headerFromProto(m)
	r.Success = getUint32(m, "success")
	r.Failed = getUint32(m, "failed")
}

func (r *SQLQueryRequest) ToProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(sqlQueryRequestDesc)
	setMessage(m, "context", r.Context.toProto())
	setStrings(m, "tables", r.Tables)
	setString(m, "sql", r.SQL)

	return m
}

func (r *SQLQueryRequest) FromProto(m protoreflect.Message) {
	r.Context = requestContextFromProto(m)
	r.Tables = getStrings(m, "tables")
	r.SQL = getString(m, "sql")
}

func (r *SQLQueryResponse) ToProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(sqlQueryResponseDesc)
	setHeader(m, r.Header)
	if r.Arrow != nil {
		arrow := dynamicpb.NewMessage(arrowPayloadDesc)
		batches := arrow.Mutable(arrowPayloadDesc.Fields().ByName("record_batches")).List()
		for _, batch := range r.Arrow.RecordBatches {
			batches.Append(protoreflect.ValueOfBytes(batch))
		}
		arrow.Set(
			arrowPayloadDesc.Fields().ByName("compression"),
			protoreflect.ValueOfEnum(protoreflect.EnumNumber(r.Arrow.Compression)),
		)
		setMessage(m, "arrow", arrow)
	} else {
		m.Set(
			sqlQueryResponseDesc.Fields().ByName("affected_rows"),
			protoreflect.ValueOfUint32(r.AffectedRows),
		)
	}

	return m
}

func (r *SQLQueryResponse) FromProto(m protoreflect.Message) {
	r.Header = headerFromProto(m)
	if f := sqlQueryResponseDesc.Fields().ByName("arrow"); m.Has(f) {
		arrow := m.Get(f).Message()
		batches := arrow.Get(arrowPayloadDesc.Fields().ByName("record_batches")).List()
		r.Arrow = &ArrowPayload{
			RecordBatches: make([][]byte, 0, batches.Len()),
			Compression:   Compression(arrow.Get(arrowPayloadDesc.Fields().ByName("compression")).Enum()),
		}
		for i := 0; i < batches.Len(); i++ {
			r.Arrow.RecordBatches = append(r.Arrow.RecordBatches, batches.Get(i).Bytes())
		}
	}
	r.AffectedRows = getUint32(m, "affected_rows")
}

func setMessage(m *dynamicpb.Message, name protoreflect.Name, v *dynamicpb.Message) {
	m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfMessage(v))
}

func setString(m *dynamicpb.Message, name protoreflect.Name, v string) {
	m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfString(v))
}

func setUint32(m *dynamicpb.Message, name protoreflect.Name, v uint32) {
	m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfUint32(v))
}

func setInt64(m *dynamicpb.Message, name protoreflect.Name, v int64) {
	m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfInt64(v))
}

func setStrings(m *dynamicpb.Message, name protoreflect.Name, v []string) {
	list := m.Mutable(m.Descriptor().Fields().ByName(name)).List()
	for _, s := range v {
		list.Append(protoreflect.ValueOfString(s))
	}
}

func getString(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(m.Descriptor().Fields().ByName(name)).String()
}

func getUint32(m protoreflect.Message, name protoreflect.Name) uint32 {
	return uint32(m.Get(m.Descriptor().Fields().ByName(name)).Uint())
}

func getInt64(m protoreflect.Message, name protoreflect.Name) int64 {
	return m.Get(m.Descriptor().Fields().ByName(name)).Int()
}

func getStrings(m protoreflect.Message, name protoreflect.Name) []string {
	list := m.Get(m.Descriptor().Fields().ByName(name)).List()
	if list.Len() == 0 {
		return nil
	}
	v := make([]string, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		v = append(v, list.Get(i).String())
	}

	return v
}
