package postgres_test

import (
	"context"
	"testing"

	"academyhub-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSequenceRepository_Next(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("FirstAllocation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO entity_sequences").
			WithArgs(domain.SeqStudent).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(1))

		v, err := store.Sequences().Next(ctx, domain.SeqStudent)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), v)
	})

	t.Run("SubsequentAllocation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO entity_sequences").
			WithArgs(domain.SeqStudent).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(42))

		v, err := store.Sequences().Next(ctx, domain.SeqStudent)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), v)
	})
}
