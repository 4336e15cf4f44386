package meta

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"

	"github.com/horaedb/horaedb-client-go/internal/xerrors"
)

func newTraceID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// WithTraceID returns a copy of parent context with traceID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, HeaderTraceID, traceID)
}

// TraceID returns trace id of outgoing call, a new one is generated if ctx has none
func TraceID(ctx context.Context, generate func() (string, error)) (context.Context, string, error) {
	if md, has := metadata.FromOutgoingContext(ctx); has {
		if ids := md.Get(HeaderTraceID); len(ids) > 0 {
			return ctx, ids[0], nil
		}
	}

	if generate == nil {
		generate = newTraceID
	}

	id, err := generate()
	if err != nil {
		return ctx, "", xerrors.WithStackTrace(err)
	}

	return WithTraceID(ctx, id), id, nil
}
