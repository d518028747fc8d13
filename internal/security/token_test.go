package security

import (
	"testing"
	"time"

	"academyhub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() TokenManager {
	return NewTokenManager(
		"login-secret-for-tests-0123456789abcdef",
		"invitation-secret-for-tests-0123456789ab",
		"reset-secret-for-tests-0123456789abcdef0",
		time.Hour,
		30*time.Minute,
	)
}

func TestTokenManager_LoginToken(t *testing.T) {
	tm := newTestManager()

	token, err := tm.IssueLoginToken(42, "admin@example.com", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(PurposeLogin, token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, PurposeLogin, claims.Purpose)
}

func TestTokenManager_InvitationToken(t *testing.T) {
	tm := newTestManager()

	token, err := tm.IssueInvitationToken(7, 3, 72*time.Hour)
	require.NoError(t, err)

	claims, err := tm.Verify(PurposeInvitation, token)
	require.NoError(t, err)
	assert.Equal(t, int32(7), claims.InvitationID)
	assert.Equal(t, int32(3), claims.Version)
	assert.Equal(t, PurposeInvitation, claims.Purpose)
}

func TestTokenManager_PurposeScoping(t *testing.T) {
	tm := newTestManager()

	loginToken, err := tm.IssueLoginToken(1, "user@example.com", domain.RoleCoach)
	require.NoError(t, err)
	inviteToken, err := tm.IssueInvitationToken(1, 1, time.Hour)
	require.NoError(t, err)
	resetToken, err := tm.IssueResetToken(1, "user@example.com")
	require.NoError(t, err)

	// Each token only verifies under its own purpose.
	_, err = tm.Verify(PurposeInvitation, loginToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.Verify(PurposeLogin, inviteToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.Verify(PurposeLogin, resetToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Verify(PurposeReset, resetToken)
	assert.NoError(t, err)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := newTestManager()

	token, err := tm.IssueInvitationToken(5, 1, -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(PurposeInvitation, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_GarbageToken(t *testing.T) {
	tm := newTestManager()

	_, err := tm.Verify(PurposeLogin, "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.Verify(PurposeLogin, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateTempPassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		pw, err := GenerateTempPassword()
		require.NoError(t, err)
		assert.Len(t, pw, 12)
		assert.False(t, seen[pw], "temporary passwords should not repeat")
		seen[pw] = true
	}
}
