package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubInvitationService struct {
	mock.Mock
}

func (s *stubInvitationService) Create(ctx context.Context, requesterID int32, requesterRole domain.Role, in service.CreateInvitationInput) (*domain.Invitation, error) {
	args := s.Called(ctx, requesterID, requesterRole, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (s *stubInvitationService) Edit(ctx context.Context, requesterID, invitationID int32, newEmail string) (*domain.Invitation, error) {
	args := s.Called(ctx, requesterID, invitationID, newEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (s *stubInvitationService) Delete(ctx context.Context, requesterID, invitationID int32) error {
	return s.Called(ctx, requesterID, invitationID).Error(0)
}
func (s *stubInvitationService) List(ctx context.Context, requesterID, page, limit int32) ([]domain.Invitation, int32, error) {
	args := s.Called(ctx, requesterID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Invitation), int32(args.Int(1)), args.Error(2)
}
func (s *stubInvitationService) Verify(ctx context.Context, token string) (*domain.Invitation, error) {
	args := s.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (s *stubInvitationService) Accept(ctx context.Context, token string) (*service.ProvisionedIdentity, error) {
	args := s.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProvisionedIdentity), args.Error(1)
}

const storedHash = "$2a$10$N9qo8uLOickgx2ZMRZoMye.fake.hash.material"

func storedInvitation() *domain.Invitation {
	return &domain.Invitation{
		ID:    1,
		Type:  domain.InvitationTypeBatchStudent,
		Email: "invitee@example.com",
		Data: domain.InvitationData{
			FirstName:        "Priya",
			LastName:         "Nair",
			BatchID:          5,
			TempPasswordHash: storedHash,
		},
		Status:    domain.InvitationStatusPending,
		Version:   1,
		ExpiresAt: time.Now().Add(72 * time.Hour),
		CreatedBy: 10,
	}
}

func assertNoCredentialHash(t *testing.T, body string) {
	t.Helper()
	assert.NotContains(t, body, storedHash)
	assert.NotContains(t, body, "$2a$")
}

func TestInvitationHandler_ResponsesOmitCredentialHash(t *testing.T) {
	t.Run("public verify", func(t *testing.T) {
		svc := new(stubInvitationService)
		svc.On("Verify", mock.Anything, "sometoken").Return(storedInvitation(), nil)
		h := NewInvitationHandler(svc)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/invitations/verify?token=sometoken", nil)
		w := httptest.NewRecorder()
		h.Verify(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "invitee@example.com")
		assertNoCredentialHash(t, body)
	})

	t.Run("create", func(t *testing.T) {
		svc := new(stubInvitationService)
		svc.On("Create", mock.Anything, int32(10), domain.RoleSuperAdmin, mock.Anything).Return(storedInvitation(), nil)
		h := NewInvitationHandler(svc)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/invitations",
			strings.NewReader(`{"type":"BATCH_STUDENT","email":"invitee@example.com","first_name":"Priya","batch_id":5}`))
		r = r.WithContext(withPrincipal(r.Context(), Principal{UserID: 10, Role: domain.RoleSuperAdmin}))
		w := httptest.NewRecorder()
		h.Create(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
		assertNoCredentialHash(t, w.Body.String())
	})

	t.Run("create with failed mail dispatch", func(t *testing.T) {
		svc := new(stubInvitationService)
		svc.On("Create", mock.Anything, int32(10), domain.RoleSuperAdmin, mock.Anything).
			Return(storedInvitation(), domain.E(domain.CodeMailError, "delivery failed"))
		h := NewInvitationHandler(svc)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/invitations",
			strings.NewReader(`{"type":"BATCH_STUDENT","email":"invitee@example.com","first_name":"Priya","batch_id":5}`))
		r = r.WithContext(withPrincipal(r.Context(), Principal{UserID: 10, Role: domain.RoleSuperAdmin}))
		w := httptest.NewRecorder()
		h.Create(w, r)

		require.Equal(t, http.StatusBadGateway, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "invitation")
		assertNoCredentialHash(t, body)
	})

	t.Run("list", func(t *testing.T) {
		svc := new(stubInvitationService)
		svc.On("List", mock.Anything, int32(10), int32(1), int32(20)).
			Return([]domain.Invitation{*storedInvitation()}, 1, nil)
		h := NewInvitationHandler(svc)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/invitations", nil)
		r = r.WithContext(withPrincipal(r.Context(), Principal{UserID: 10, Role: domain.RoleSuperAdmin}))
		w := httptest.NewRecorder()
		h.List(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assertNoCredentialHash(t, w.Body.String())
	})
}
