package log

import (
	"context"
)

type scopeKey struct{}

// scope is a logging scope of context: level of the record and logger names
type scope struct {
	level Level
	names []string
}

func scopeFromContext(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)

	return s
}

func WithLevel(ctx context.Context, lvl Level) context.Context {
	s := scopeFromContext(ctx)
	s.level = lvl

	return context.WithValue(ctx, scopeKey{}, s)
}

func LevelFromContext(ctx context.Context) Level {
	return scopeFromContext(ctx).level
}

// WithNames appends logger names. Sibling contexts never share appended names.
func WithNames(ctx context.Context, names ...string) context.Context {
	s := scopeFromContext(ctx)
	s.names = append(s.names[:len(s.names):len(s.names)], names...)

	return context.WithValue(ctx, scopeKey{}, s)
}

func NamesFromContext(ctx context.Context) []string {
	names := scopeFromContext(ctx).names

	return names[:len(names):len(names)]
}
