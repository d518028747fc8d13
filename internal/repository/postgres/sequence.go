package postgres

import "context"

type sequenceRepository struct {
	q dbtx
}

// Next atomically increments and returns the named counter. The upsert
// keeps concurrent callers from ever seeing the same value.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int32, error) {
	var value int32
	query := `INSERT INTO entity_sequences (name, value) VALUES ($1, 1)
	          ON CONFLICT (name) DO UPDATE SET value = entity_sequences.value + 1
	          RETURNING value`
	err := r.q.QueryRowContext(ctx, query, name).Scan(&value)
	return value, mapError(err)
}
