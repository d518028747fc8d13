package postgres

import (
	"context"
	"database/sql"
	"errors"

	"academyhub-backend/internal/repository"

	"github.com/lib/pq"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, so
// every repository works identically inside and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements repository.Store over PostgreSQL.
type Store struct {
	db *sql.DB // nil when bound to a transaction
	q  dbtx
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() repository.UserRepository            { return &userRepository{q: s.q} }
func (s *Store) Academies() repository.AcademyRepository     { return &academyRepository{q: s.q} }
func (s *Store) Batches() repository.BatchRepository         { return &batchRepository{q: s.q} }
func (s *Store) Invitations() repository.InvitationRepository {
	return &invitationRepository{q: s.q}
}
func (s *Store) Sequences() repository.SequenceRepository { return &sequenceRepository{q: s.q} }
func (s *Store) Goals() repository.GoalRepository         { return &goalRepository{q: s.q} }
func (s *Store) Tasks() repository.TaskRepository         { return &taskRepository{q: s.q} }
func (s *Store) Messages() repository.MessageRepository   { return &messageRepository{q: s.q} }
func (s *Store) FriendRequests() repository.FriendRequestRepository {
	return &friendRequestRepository{q: s.q}
}

// WithTx runs fn against a Store bound to one transaction. Any error from
// fn rolls back everything; otherwise the transaction commits.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.db == nil {
		return errors.New("nested transactions are not supported")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&Store{q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

// mapError translates driver-level errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}

// pageToOffset converts 1-based page/limit pagination to LIMIT/OFFSET,
// clamping to sane defaults.
func pageToOffset(page, limit int32) (int32, int32) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
