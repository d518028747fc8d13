package postgres

import (
	"context"
	"time"

	"academyhub-backend/internal/domain"
)

type messageRepository struct {
	q dbtx
}

func (r *messageRepository) CreateChannel(ctx context.Context, c *domain.Channel) error {
	query := `INSERT INTO channels (name, academy_id, batch_id, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	c.CreatedAt = time.Now()
	err := r.q.QueryRowContext(ctx, query, c.Name, c.AcademyID, c.BatchID, c.CreatedAt).Scan(&c.ID)
	return mapError(err)
}

func (r *messageRepository) GetChannelByID(ctx context.Context, id int32) (*domain.Channel, error) {
	c := &domain.Channel{}
	query := `SELECT id, name, academy_id, batch_id, created_at FROM channels WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.AcademyID, &c.BatchID, &c.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	query := `INSERT INTO messages (id, channel_id, sender_id, body, created_at) VALUES ($1, $2, $3, $4, $5)`
	m.CreatedAt = time.Now()
	_, err := r.q.ExecContext(ctx, query, m.ID, m.ChannelID, m.SenderID, m.Body, m.CreatedAt)
	return mapError(err)
}

func (r *messageRepository) ListByChannel(ctx context.Context, channelID int32, page, limit int32) ([]domain.Message, int32, error) {
	var total int32
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE channel_id = $1`, channelID).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	take, skip := pageToOffset(page, limit)
	query := `SELECT id, channel_id, sender_id, body, created_at FROM messages
	          WHERE channel_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.QueryContext(ctx, query, channelID, take, skip)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ChannelID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		msgs = append(msgs, m)
	}
	return msgs, total, rows.Err()
}

type friendRequestRepository struct {
	q dbtx
}

const friendRequestColumns = `id, from_user_id, to_user_id, status, created_at, updated_at`

func (r *friendRequestRepository) Create(ctx context.Context, fr *domain.FriendRequest) error {
	query := `INSERT INTO friend_requests (from_user_id, to_user_id, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	fr.CreatedAt = now
	fr.UpdatedAt = now
	err := r.q.QueryRowContext(ctx, query, fr.FromUserID, fr.ToUserID, fr.Status, fr.CreatedAt, fr.UpdatedAt).Scan(&fr.ID)
	return mapError(err)
}

func (r *friendRequestRepository) GetByID(ctx context.Context, id int32) (*domain.FriendRequest, error) {
	query := `SELECT ` + friendRequestColumns + ` FROM friend_requests WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *friendRequestRepository) GetPendingBetween(ctx context.Context, fromUserID, toUserID int32) (*domain.FriendRequest, error) {
	query := `SELECT ` + friendRequestColumns + ` FROM friend_requests
	          WHERE from_user_id = $1 AND to_user_id = $2 AND status = $3`
	return r.scanOne(ctx, query, fromUserID, toUserID, domain.FriendRequestStatusPending)
}

func (r *friendRequestRepository) Update(ctx context.Context, fr *domain.FriendRequest) error {
	query := `UPDATE friend_requests SET status = $1, updated_at = $2 WHERE id = $3`
	fr.UpdatedAt = time.Now()
	_, err := r.q.ExecContext(ctx, query, fr.Status, fr.UpdatedAt, fr.ID)
	return mapError(err)
}

func (r *friendRequestRepository) ListByUser(ctx context.Context, userID int32) ([]domain.FriendRequest, error) {
	query := `SELECT ` + friendRequestColumns + ` FROM friend_requests
	          WHERE from_user_id = $1 OR to_user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var reqs []domain.FriendRequest
	for rows.Next() {
		var fr domain.FriendRequest
		if err := rows.Scan(&fr.ID, &fr.FromUserID, &fr.ToUserID, &fr.Status, &fr.CreatedAt, &fr.UpdatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, fr)
	}
	return reqs, rows.Err()
}

func (r *friendRequestRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.FriendRequest, error) {
	fr := &domain.FriendRequest{}
	err := r.q.QueryRowContext(ctx, query, args...).Scan(&fr.ID, &fr.FromUserID, &fr.ToUserID, &fr.Status, &fr.CreatedAt, &fr.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return fr, nil
}
