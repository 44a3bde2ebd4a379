package aiusage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles generation_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Insert appends one ledger row.
func (s *Store) Insert(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO generation_usage
			(request_id, destination, model, input_tokens, output_tokens, cost_usd, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.RequestID, rec.Destination, rec.Model, rec.InputTokens, rec.OutputTokens, rec.CostUSD, rec.GeneratedAt)
	return err
}
