package postgres

import (
	"context"
	"time"

	"academyhub-backend/internal/domain"
)

type taskRepository struct {
	q dbtx
}

const taskColumns = `id, title, COALESCE(description, ''), assignee_type, assigned_to, assigned_by, status, due_date, created_at, updated_at`

func (r *taskRepository) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (title, description, assignee_type, assigned_to, assigned_by, status, due_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	err := r.q.QueryRowContext(ctx, query, t.Title, t.Description, t.AssigneeType, t.AssignedTo, t.AssignedBy, t.Status, t.DueDate, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
	return mapError(err)
}

func (r *taskRepository) GetByID(ctx context.Context, id int32) (*domain.Task, error) {
	t := &domain.Task{}
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Title, &t.Description, &t.AssigneeType, &t.AssignedTo, &t.AssignedBy, &t.Status, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id int32, status domain.TaskStatus) error {
	query := `UPDATE tasks SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.q.ExecContext(ctx, query, status, time.Now(), id)
	return mapError(err)
}

func (r *taskRepository) ListByAssignee(ctx context.Context, assigneeType domain.TaskAssigneeType, assignedTo int32, page, limit int32) ([]domain.Task, int32, error) {
	var total int32
	countQuery := `SELECT COUNT(*) FROM tasks WHERE assignee_type = $1 AND assigned_to = $2`
	if err := r.q.QueryRowContext(ctx, countQuery, assigneeType, assignedTo).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	take, skip := pageToOffset(page, limit)
	query := `SELECT ` + taskColumns + ` FROM tasks
	          WHERE assignee_type = $1 AND assigned_to = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	return r.list(ctx, query, total, assigneeType, assignedTo, take, skip)
}

func (r *taskRepository) ListByAssigner(ctx context.Context, assignedBy int32, page, limit int32) ([]domain.Task, int32, error) {
	var total int32
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE assigned_by = $1`, assignedBy).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	take, skip := pageToOffset(page, limit)
	query := `SELECT ` + taskColumns + ` FROM tasks
	          WHERE assigned_by = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, total, assignedBy, take, skip)
}

func (r *taskRepository) list(ctx context.Context, query string, total int32, args ...any) ([]domain.Task, int32, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.AssigneeType, &t.AssignedTo, &t.AssignedBy, &t.Status, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}
