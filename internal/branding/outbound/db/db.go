// Package db implements the branding persistence layer on PostgreSQL.
package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
)

const pgUniqueViolation = "23505"

// DB holds the connection pool and tracer for the branding queries.
type DB struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

// New creates the branding DB layer.
func New(pool *pgxpool.Pool, ins *instrument.Instrument) *DB {
	return &DB{pool: pool, tracer: ins.Tracer("branding.outbound.db")}
}

func (d *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return d.tracer.Start(ctx, name)
}

func (d *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return goerror.ErrConflict
	}

	return err
}
