package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/repository"
	"academyhub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*postgres.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewStore(db), mock
}

var invitationCols = []string{"id", "type", "email", "data", "status", "version", "expires_at", "created_by", "created_at"}

func invitationRow(id int32) *sqlmock.Rows {
	return sqlmock.NewRows(invitationCols).
		AddRow(id, string(domain.InvitationTypeBatchStudent), "invitee@example.com",
			[]byte(`{"first_name":"Priya","last_name":"Nair","batch_id":5}`),
			string(domain.InvitationStatusPending), int32(1),
			time.Now().Add(72*time.Hour), int32(10), time.Now())
}

func TestInvitationRepository_Create(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		inv := &domain.Invitation{
			Type:      domain.InvitationTypeBatchStudent,
			Email:     "invitee@example.com",
			Data:      domain.InvitationData{FirstName: "Priya", BatchID: 5},
			Status:    domain.InvitationStatusPending,
			Version:   1,
			ExpiresAt: time.Now().Add(72 * time.Hour),
			CreatedBy: 10,
		}

		mock.ExpectQuery("INSERT INTO invitations").
			WithArgs(inv.Type, inv.Email, sqlmock.AnyArg(), inv.Status, inv.Version, inv.ExpiresAt, inv.CreatedBy, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := store.Invitations().Create(ctx, inv)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), inv.ID)
	})
}

func TestInvitationRepository_GetByID(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM invitations WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(invitationRow(1))

		inv, err := store.Invitations().GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Priya", inv.Data.FirstName)
		assert.Equal(t, int32(5), inv.Data.BatchID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM invitations WHERE id = \\$1").
			WithArgs(int32(2)).
			WillReturnError(sql.ErrNoRows)

		inv, err := store.Invitations().GetByID(ctx, 2)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, inv)
	})
}

func TestInvitationRepository_GetActiveByEmail(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM invitations").
		WithArgs("invitee@example.com", domain.InvitationStatusPending, now).
		WillReturnRows(invitationRow(1))

	inv, err := store.Invitations().GetActiveByEmail(ctx, "invitee@example.com", now)
	require.NoError(t, err)
	assert.Equal(t, int32(1), inv.ID)
}

func TestInvitationRepository_Delete(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("ConsumesMatchingVersion", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM invitations WHERE id = \\$1 AND version = \\$2").
			WithArgs(int32(1), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := store.Invitations().Delete(ctx, 1, 1)
		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("StaleVersionDeletesNothing", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM invitations WHERE id = \\$1 AND version = \\$2").
			WithArgs(int32(1), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := store.Invitations().Delete(ctx, 1, 1)
		assert.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestInvitationRepository_DeleteExpiredBefore(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()
	cutoff := time.Now().Add(-24 * time.Hour)

	mock.ExpectExec("DELETE FROM invitations WHERE status = \\$1 AND expires_at < \\$2").
		WithArgs(domain.InvitationStatusPending, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.Invitations().DeleteExpiredBefore(ctx, cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestInvitationRepository_ListByCreator(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM invitations WHERE created_by = \\$1").
		WithArgs(int32(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM invitations").
		WithArgs(int32(10), int32(20), int32(0)).
		WillReturnRows(invitationRow(1))

	invs, total, err := store.Invitations().ListByCreator(ctx, 10, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, invs, 1)
}
