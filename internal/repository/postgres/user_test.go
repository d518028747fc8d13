package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "email", "role", "sub_role", "password_hash", "has_password", "code", "profile_id", "created_at", "updated_at"}

func userRow(id int32, email string) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).
		AddRow(id, email, string(domain.RoleStudent), "", "hash", false, "STU0001", int32(1), time.Now(), time.Now())
}

func TestUserRepository_Create(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	u := &domain.User{
		Email:        "new@example.com",
		Role:         domain.RoleStudent,
		PasswordHash: "hash",
		Code:         "STU0001",
		ProfileID:    1,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(u.Email, u.Role, u.SubRole, u.PasswordHash, u.HasPassword, u.Code, u.ProfileID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err := store.Users().Create(ctx, u)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), u.ID)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
			WithArgs("anu@example.com").
			WillReturnRows(userRow(3, "anu@example.com"))

		u, err := store.Users().GetByEmail(ctx, "anu@example.com")
		require.NoError(t, err)
		assert.Equal(t, int32(3), u.ID)
		assert.Equal(t, domain.RoleStudent, u.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		u, err := store.Users().GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, u)
	})
}

func TestUserRepository_CreateProfile(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	p := &domain.Profile{FirstName: "Anu", LastName: "Menon"}

	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(p.FirstName, p.LastName, sqlmock.AnyArg(), p.PhoneNumber, p.Address, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	err := store.Users().CreateProfile(ctx, p)
	assert.NoError(t, err)
	assert.Equal(t, int32(9), p.ID)
}

func TestUserRepository_CountBatchStudents(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM batch_students WHERE batch_id = \\$1").
		WithArgs(int32(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	count, err := store.Users().CountBatchStudents(ctx, 5)
	assert.NoError(t, err)
	assert.Equal(t, int32(17), count)
}

func TestUserRepository_IsAcademyAdmin(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(10), int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := store.Users().IsAcademyAdmin(ctx, 10, 2)
	assert.NoError(t, err)
	assert.True(t, ok)
}
