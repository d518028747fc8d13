package postgres

import (
	"context"
	"encoding/json"
	"time"

	"academyhub-backend/internal/domain"
)

type invitationRepository struct {
	q dbtx
}

const invitationColumns = `id, type, email, data, status, version, expires_at, created_by, created_at`

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	data, err := json.Marshal(inv.Data)
	if err != nil {
		return err
	}
	query := `INSERT INTO invitations (type, email, data, status, version, expires_at, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	inv.CreatedAt = time.Now()
	err = r.q.QueryRowContext(ctx, query, inv.Type, inv.Email, data, inv.Status, inv.Version, inv.ExpiresAt, inv.CreatedBy, inv.CreatedAt).Scan(&inv.ID)
	return mapError(err)
}

func (r *invitationRepository) GetByID(ctx context.Context, id int32) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

func (r *invitationRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

func (r *invitationRepository) GetActiveByEmail(ctx context.Context, email string, now time.Time) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE LOWER(email) = LOWER($1) AND status = $2 AND expires_at > $3`
	return r.scanOne(r.q.QueryRowContext(ctx, query, email, domain.InvitationStatusPending, now))
}

func (r *invitationRepository) Update(ctx context.Context, inv *domain.Invitation) error {
	data, err := json.Marshal(inv.Data)
	if err != nil {
		return err
	}
	query := `UPDATE invitations SET email = $1, data = $2, status = $3, version = $4, expires_at = $5 WHERE id = $6`
	_, err = r.q.ExecContext(ctx, query, inv.Email, data, inv.Status, inv.Version, inv.ExpiresAt, inv.ID)
	return mapError(err)
}

func (r *invitationRepository) Delete(ctx context.Context, id, version int32) (bool, error) {
	query := `DELETE FROM invitations WHERE id = $1 AND version = $2`
	result, err := r.q.ExecContext(ctx, query, id, version)
	if err != nil {
		return false, mapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *invitationRepository) ListByCreator(ctx context.Context, creatorID int32, page, limit int32) ([]domain.Invitation, int32, error) {
	var total int32
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM invitations WHERE created_by = $1`, creatorID).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	take, skip := pageToOffset(page, limit)
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE created_by = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.QueryContext(ctx, query, creatorID, take, skip)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var invs []domain.Invitation
	for rows.Next() {
		var inv domain.Invitation
		var data []byte
		if err := rows.Scan(&inv.ID, &inv.Type, &inv.Email, &data, &inv.Status, &inv.Version, &inv.ExpiresAt, &inv.CreatedBy, &inv.CreatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(data, &inv.Data); err != nil {
			return nil, 0, err
		}
		invs = append(invs, inv)
	}
	return invs, total, rows.Err()
}

func (r *invitationRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM invitations WHERE status = $1 AND expires_at < $2`
	result, err := r.q.ExecContext(ctx, query, domain.InvitationStatusPending, cutoff)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *invitationRepository) scanOne(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var data []byte
	err := row.Scan(&inv.ID, &inv.Type, &inv.Email, &data, &inv.Status, &inv.Version, &inv.ExpiresAt, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if err := json.Unmarshal(data, &inv.Data); err != nil {
		return nil, err
	}
	return inv, nil
}
