// Package model contains requests and responses of the client
package model

// WriteRequest is a batch of points, possibly of different tables
type WriteRequest struct {
	points []Point
}

func NewWriteRequest(points ...Point) *WriteRequest {
	return &WriteRequest{
		points: append([]Point(nil), points...),
	}
}

func (r *WriteRequest) AddPoint(points ...Point) *WriteRequest {
	r.points = append(r.points, points...)

	return r
}

func (r *WriteRequest) Points() []Point {
	return r.points
}

// Tables returns distinct tables of points in order of first appearance
func (r *WriteRequest) Tables() []string {
	seen := make(map[string]struct{}, len(r.points))
	tables := make([]string, 0, len(r.points))
	for _, p := range r.points {
		if _, has := seen[p.table]; has {
			continue
		}
		seen[p.table] = struct{}{}
		tables = append(tables, p.table)
	}

	return tables
}

// WriteResponse counts rows accepted and rejected by server
type WriteResponse struct {
	Success uint32
	Failed  uint32
}

// SQLQueryRequest is a sql statement over tables.
// Tables are used to route the request, all of them must be owned by one endpoint.
type SQLQueryRequest struct {
	Tables []string
	SQL    string
}

// Compression of arrow record batches
type Compression int

const (
	CompressionNone = Compression(iota)
	CompressionZstd
)

// SQLQueryResponse contains either arrow encoded rows or number of affected rows
type SQLQueryResponse struct {
	// RecordBatches are arrow IPC encoded batches of result rows
	RecordBatches [][]byte
	Compression   Compression
	AffectedRows  uint32
}
