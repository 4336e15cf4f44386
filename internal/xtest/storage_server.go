package xtest

import (
	"context"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/horaedb/horaedb-client-go/internal/storagepb"
	"github.com/horaedb/horaedb-client-go/internal/status"
)

type (
	RouteHandler func(ctx context.Context, req *storagepb.RouteRequest) (*storagepb.RouteResponse, error)
	WriteHandler func(ctx context.Context, req *storagepb.WriteRequest) (*storagepb.WriteResponse, error)
	QueryHandler func(ctx context.Context, req *storagepb.SQLQueryRequest) (*storagepb.SQLQueryResponse, error)
)

// StorageServer is a loopback storage service for tests
type StorageServer struct {
	address  string
	server   *grpc.Server
	listener *countingListener

	mu    sync.Mutex
	route RouteHandler
	write WriteHandler
	query QueryHandler
	md    metadata.MD

	routeCalls atomic.Int64
	writeCalls atomic.Int64
	queryCalls atomic.Int64
}

// NewStorageServer starts server on 127.0.0.1 with a random port. The server is stopped on test cleanup.
func NewStorageServer(t testing.TB) *StorageServer {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := &StorageServer{
		address:  lis.Addr().String(),
		server:   grpc.NewServer(),
		listener: &countingListener{Listener: lis},
		route: func(context.Context, *storagepb.RouteRequest) (*storagepb.RouteResponse, error) {
			return &storagepb.RouteResponse{Header: &storagepb.ResponseHeader{Code: status.OK}}, nil
		},
		write: func(_ context.Context, req *storagepb.WriteRequest) (*storagepb.WriteResponse, error) {
			return &storagepb.WriteResponse{
				Header:  &storagepb.ResponseHeader{Code: status.OK},
				Success: CountRows(req),
			}, nil
		},
		query: func(context.Context, *storagepb.SQLQueryRequest) (*storagepb.SQLQueryResponse, error) {
			return &storagepb.SQLQueryResponse{Header: &storagepb.ResponseHeader{Code: status.OK}}, nil
		},
	}
	s.server.RegisterService(&storageServiceDesc, s)

	go func() {
		_ = s.server.Serve(s.listener)
	}()
	t.Cleanup(s.Stop)

	return s
}

func (s *StorageServer) Address() string {
	return s.address
}

func (s *StorageServer) Stop() {
	s.server.Stop()
}

func (s *StorageServer) SetRouteHandler(h RouteHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = h
}

func (s *StorageServer) SetWriteHandler(h WriteHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write = h
}

func (s *StorageServer) SetQueryHandler(h QueryHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = h
}

func (s *StorageServer) RouteCalls() int64 {
	return s.routeCalls.Load()
}

func (s *StorageServer) WriteCalls() int64 {
	return s.writeCalls.Load()
}

func (s *StorageServer) QueryCalls() int64 {
	return s.queryCalls.Load()
}

// Connections returns number of accepted transport connections
func (s *StorageServer) Connections() int64 {
	return s.listener.accepted.Load()
}

// Metadata returns incoming metadata of the last call
func (s *StorageServer) Metadata() metadata.MD {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.md.Copy()
}

func (s *StorageServer) remember(ctx context.Context) {
	md, _ := metadata.FromIncomingContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.md = md
}

func (s *StorageServer) handlers() (RouteHandler, WriteHandler, QueryHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.route, s.write, s.query
}

// RouteTo returns route handler which resolves known tables to given host:port addresses.
// Unknown tables are omitted from the response.
func RouteTo(routes map[string]string) RouteHandler {
	return func(_ context.Context, req *storagepb.RouteRequest) (*storagepb.RouteResponse, error) {
		resp := &storagepb.RouteResponse{Header: &storagepb.ResponseHeader{Code: status.OK}}
		for _, table := range req.Tables {
			address, has := routes[table]
			if !has {
				continue
			}
			host, port, err := net.SplitHostPort(address)
			if err != nil {
				return nil, err
			}
			p, err := strconv.ParseUint(port, 10, 32)
			if err != nil {
				return nil, err
			}
			resp.Routes = append(resp.Routes, storagepb.Route{
				Table:    table,
				Endpoint: &storagepb.Endpoint{IP: host, Port: uint32(p)},
			})
		}

		return resp, nil
	}
}

// CountRows returns number of field groups in write request
func CountRows(req *storagepb.WriteRequest) (n uint32) {
	for _, table := range req.TableRequests {
		for _, entry := range table.Entries {
			n += uint32(len(entry.FieldGroups))
		}
	}

	return n
}

type countingListener struct {
	net.Listener
	accepted atomic.Int64
}

func (l *countingListener) Accept() (net.Conn, error) {
	c, err := l.Listener.Accept()
	if err == nil {
		l.accepted.Add(1)
	}

	return c, err
}

type storageService interface {
	routeCall(ctx context.Context, req *storagepb.RouteRequest) (*storagepb.RouteResponse, error)
	writeCall(ctx context.Context, req *storagepb.WriteRequest) (*storagepb.WriteResponse, error)
	queryCall(ctx context.Context, req *storagepb.SQLQueryRequest) (*storagepb.SQLQueryResponse, error)
}

func (s *StorageServer) routeCall(ctx context.Context, req *storagepb.RouteRequest) (*storagepb.RouteResponse, error) {
	s.routeCalls.Add(1)
	s.remember(ctx)
	h, _, _ := s.handlers()

	return h(ctx, req)
}

func (s *StorageServer) writeCall(ctx context.Context, req *storagepb.WriteRequest) (*storagepb.WriteResponse, error) {
	s.writeCalls.Add(1)
	s.remember(ctx)
	_, h, _ := s.handlers()

	return h(ctx, req)
}

func (s *StorageServer) queryCall(ctx context.Context, req *storagepb.SQLQueryRequest) (*storagepb.SQLQueryResponse, error) {
	s.queryCalls.Add(1)
	s.remember(ctx)
	_, _, h := s.handlers()

	return h(ctx, req)
}

var storageServiceDesc = grpc.ServiceDesc{
	ServiceName: storagepb.ServiceName,
	HandlerType: (*storageService)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Route",
			Handler:    routeHandler,
		},
		{
			MethodName: "Write",
			Handler:    writeHandler,
		},
		{
			MethodName: "SqlQuery",
			Handler:    queryHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storage.proto",
}

//nolint:revive // context-as-argument: gRPC handler requires this signature
func routeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	in := storagepb.NewRouteRequestMessage()
	if err := dec(in); err != nil {
		return nil, err
	}
	var req storagepb.RouteRequest
	req.FromProto(in)

	resp, err := srv.(storageService).routeCall(ctx, &req)
	if err != nil {
		return nil, err
	}

	return resp.ToProto(), nil
}

//nolint:revive // context-as-argument: gRPC handler requires this signature
func writeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	in := storagepb.NewWriteRequestMessage()
	if err := dec(in); err != nil {
		return nil, err
	}
	var req storagepb.WriteRequest
	req.FromProto(in)

	resp, err := srv.(storageService).writeCall(ctx, &req)
	if err != nil {
		return nil, err
	}

	return resp.ToProto(), nil
}

//nolint:revive // context-as-argument: gRPC handler requires this signature
func queryHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	in := storagepb.NewSQLQueryRequestMessage()
	if err := dec(in); err != nil {
		return nil, err
	}
	var req storagepb.SQLQueryRequest
	req.FromProto(in)

	resp, err := srv.(storageService).queryCall(ctx, &req)
	if err != nil {
		return nil, err
	}

	return resp.ToProto(), nil
}
