package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"melodie/pkg/midds/codec"
	"melodie/pkg/platform/tx"
)

// PostgresStore persists records in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL-backed store. The schema is
// applied separately (see migrations/).
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const uniqueViolation = "23505"

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// db returns the context transaction when one is present so Save and
// NextID can participate in a caller-managed transaction.
func (s *PostgresStore) db(ctx context.Context) querier {
	if txn, ok := tx.From(ctx); ok {
		return txn
	}
	return s.pool
}

func (s *PostgresStore) Save(ctx context.Context, record Record) error {
	_, err := s.db(ctx).Exec(ctx, `
		INSERT INTO midds_records (kind, id, payload, digest, registered_by, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		record.Kind.String(), record.ID, record.Payload,
		record.Digest, record.RegisteredBy, record.RegisteredAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrConflict
		}
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, kind codec.Kind, id uint64) (Record, error) {
	var record Record
	var rawKind string
	err := s.db(ctx).QueryRow(ctx, `
		SELECT kind, id, payload, digest, registered_by, registered_at
		FROM midds_records WHERE kind = $1 AND id = $2`,
		kind.String(), id,
	).Scan(&rawKind, &record.ID, &record.Payload, &record.Digest,
		&record.RegisteredBy, &record.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("find record: %w", err)
	}
	record.Kind = codec.Kind(rawKind)
	return record, nil
}

func (s *PostgresStore) NextID(ctx context.Context, kind codec.Kind) (uint64, error) {
	var id uint64
	err := s.db(ctx).QueryRow(ctx, `
		INSERT INTO midds_sequences (kind, value) VALUES ($1, 1)
		ON CONFLICT (kind) DO UPDATE SET value = midds_sequences.value + 1
		RETURNING value`,
		kind.String(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("allocate id: %w", err)
	}
	return id, nil
}
