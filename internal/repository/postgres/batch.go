package postgres

import (
	"context"
	"time"

	"academyhub-backend/internal/domain"
)

type batchRepository struct {
	q dbtx
}

const batchColumns = `id, batch_code, academy_id, student_capacity, warning_cutoff, created_at`

func (r *batchRepository) Create(ctx context.Context, b *domain.Batch) error {
	query := `INSERT INTO batches (batch_code, academy_id, student_capacity, warning_cutoff, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	b.CreatedAt = time.Now()
	err := r.q.QueryRowContext(ctx, query, b.BatchCode, b.AcademyID, b.StudentCapacity, b.WarningCutoff, b.CreatedAt).Scan(&b.ID)
	return mapError(err)
}

func (r *batchRepository) GetByID(ctx context.Context, id int32) (*domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *batchRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

func (r *batchRepository) ListByAcademy(ctx context.Context, academyID int32) ([]domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE academy_id = $1 ORDER BY id`
	return r.list(ctx, query, academyID)
}

func (r *batchRepository) ListByCoach(ctx context.Context, coachID int32) ([]domain.Batch, error) {
	query := `SELECT b.id, b.batch_code, b.academy_id, b.student_capacity, b.warning_cutoff, b.created_at
	          FROM batches b JOIN batch_coaches bc ON bc.batch_id = b.id
	          WHERE bc.user_id = $1 ORDER BY b.id`
	return r.list(ctx, query, coachID)
}

func (r *batchRepository) IsCoach(ctx context.Context, batchID, userID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM batch_coaches WHERE batch_id = $1 AND user_id = $2)`
	err := r.q.QueryRowContext(ctx, query, batchID, userID).Scan(&exists)
	return exists, mapError(err)
}

func (r *batchRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.Batch, error) {
	b := &domain.Batch{}
	err := r.q.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.BatchCode, &b.AcademyID, &b.StudentCapacity, &b.WarningCutoff, &b.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *batchRepository) list(ctx context.Context, query string, args ...any) ([]domain.Batch, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var batches []domain.Batch
	for rows.Next() {
		var b domain.Batch
		if err := rows.Scan(&b.ID, &b.BatchCode, &b.AcademyID, &b.StudentCapacity, &b.WarningCutoff, &b.CreatedAt); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
