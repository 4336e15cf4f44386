package meta

import (
	"context"
	"encoding/base64"

	"google.golang.org/grpc/metadata"

	"github.com/horaedb/horaedb-client-go/internal/xerrors"
)

const (
	HeaderAuthorization = "authorization"
	HeaderTraceID       = "x-request-id"
)

// BasicAuth returns value of authorization header for given credentials
func BasicAuth(username, password string) string {
	buf := make([]byte, 0, len(username)+len(password)+1)
	buf = append(buf, username...)
	buf = append(buf, ':')
	buf = append(buf, password...)

	return "Basic " + base64.StdEncoding.EncodeToString(buf)
}

type Option func(m *Meta)

// WithBasicAuth encodes credentials once, every call reuses encoded value
func WithBasicAuth(username, password string) Option {
	return func(m *Meta) {
		m.authorization = BasicAuth(username, password)
	}
}

func WithTraceIDGenerator(newTraceID func() (string, error)) Option {
	return func(m *Meta) {
		if newTraceID != nil {
			m.newTraceID = newTraceID
		}
	}
}

// Meta holds request-level metadata attached to every outgoing call
type Meta struct {
	authorization string
	newTraceID    func() (string, error)
}

func New(opts ...Option) *Meta {
	m := &Meta{
		newTraceID: newTraceID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

func (m *Meta) Authorization() (string, bool) {
	return m.authorization, m.authorization != ""
}

// Context returns a copy of ctx with outgoing authorization and trace id headers.
// Configured authorization replaces one set by the caller.
func (m *Meta) Context(ctx context.Context) (_ context.Context, traceID string, err error) {
	ctx, traceID, err = TraceID(ctx, m.newTraceID)
	if err != nil {
		return ctx, "", xerrors.WithStackTrace(err)
	}

	if m.authorization != "" {
		md, _ := metadata.FromOutgoingContext(ctx)
		md = md.Copy()
		md.Set(HeaderAuthorization, m.authorization)
		ctx = metadata.NewOutgoingContext(ctx, md)
	}

	return ctx, traceID, nil
}
