package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var dbTracer = otel.Tracer("settleup/sqlite")

// tracedDB wraps *sql.DB so every statement gets its own span.
type tracedDB struct {
	*sql.DB
}

func (db *tracedDB) start(ctx context.Context, name, query string) (context.Context, trace.Span) {
	return dbTracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("db.system", "sqlite"),
		attribute.String("db.operation", sqlVerb(query)),
		attribute.String("db.statement", strings.Join(strings.Fields(query), " ")),
	))
}

// ExecContext wraps sql.DB.ExecContext with tracing.
func (db *tracedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, span := db.start(ctx, "db.Exec", query)
	defer span.End()

	res, err := db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil {
		span.SetAttributes(attribute.Int64("db.rows_affected", n))
	}
	return res, nil
}

// QueryContext wraps sql.DB.QueryContext with tracing.
func (db *tracedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	ctx, span := db.start(ctx, "db.Query", query)
	defer span.End()

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rows, nil
}

// QueryRowContext wraps sql.DB.QueryRowContext with tracing.
// Scan errors surface to the caller, not the span.
func (db *tracedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	ctx, span := db.start(ctx, "db.QueryRow", query)
	defer span.End()
	return db.DB.QueryRowContext(ctx, query, args...)
}

func sqlVerb(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// placeholders returns "?, ?, ?" for n arguments.
// Used for building IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
