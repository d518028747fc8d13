package postgres

import (
	"context"
	"time"

	"academyhub-backend/internal/domain"
)

type academyRepository struct {
	q dbtx
}

func (r *academyRepository) Create(ctx context.Context, a *domain.Academy) error {
	query := `INSERT INTO academies (name, status, created_at) VALUES ($1, $2, $3) RETURNING id`
	a.CreatedAt = time.Now()
	err := r.q.QueryRowContext(ctx, query, a.Name, a.Status, a.CreatedAt).Scan(&a.ID)
	return mapError(err)
}

func (r *academyRepository) GetByID(ctx context.Context, id int32) (*domain.Academy, error) {
	a := &domain.Academy{}
	query := `SELECT id, name, status, created_at FROM academies WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *academyRepository) List(ctx context.Context, page, limit int32) ([]domain.Academy, int32, error) {
	var total int32
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM academies`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	take, skip := pageToOffset(page, limit)
	query := `SELECT id, name, status, created_at FROM academies ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.QueryContext(ctx, query, take, skip)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var academies []domain.Academy
	for rows.Next() {
		var a domain.Academy
		if err := rows.Scan(&a.ID, &a.Name, &a.Status, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		academies = append(academies, a)
	}
	return academies, total, rows.Err()
}

func (r *academyRepository) ListByAdmin(ctx context.Context, userID int32) ([]domain.Academy, error) {
	query := `SELECT a.id, a.name, a.status, a.created_at
	          FROM academies a JOIN academy_admins aa ON aa.academy_id = a.id
	          WHERE aa.user_id = $1 ORDER BY a.id`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var academies []domain.Academy
	for rows.Next() {
		var a domain.Academy
		if err := rows.Scan(&a.ID, &a.Name, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		academies = append(academies, a)
	}
	return academies, rows.Err()
}

func (r *academyRepository) Update(ctx context.Context, a *domain.Academy) error {
	query := `UPDATE academies SET name = $1, status = $2 WHERE id = $3`
	_, err := r.q.ExecContext(ctx, query, a.Name, a.Status, a.ID)
	return mapError(err)
}
