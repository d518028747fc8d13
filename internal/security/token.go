package security

import (
	"errors"
	"strconv"
	"time"

	"academyhub-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Purpose scopes a token to one workflow. Each purpose is signed with its
// own secret, so a token minted for one purpose never verifies under
// another even when the payload shape collides.
type Purpose string

const (
	PurposeLogin      Purpose = "login"
	PurposeInvitation Purpose = "invitation"
	PurposeReset      Purpose = "password_reset"
)

// Claims covers every token purpose; unused fields stay empty.
type Claims struct {
	UserID       int32       `json:"user_id,omitempty"`
	Email        string      `json:"email,omitempty"`
	Role         domain.Role `json:"role,omitempty"`
	InvitationID int32       `json:"invitation_id,omitempty"`
	Version      int32       `json:"version,omitempty"`
	Purpose      Purpose     `json:"purpose"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	IssueLoginToken(userID int32, email string, role domain.Role) (string, error)
	IssueInvitationToken(invitationID, version int32, ttl time.Duration) (string, error)
	IssueResetToken(userID int32, email string) (string, error)
	Verify(purpose Purpose, tokenString string) (*Claims, error)
}

type tokenManager struct {
	secrets  map[Purpose][]byte
	loginTTL time.Duration
	resetTTL time.Duration
}

func NewTokenManager(loginSecret, invitationSecret, resetSecret string, loginTTL, resetTTL time.Duration) TokenManager {
	return &tokenManager{
		secrets: map[Purpose][]byte{
			PurposeLogin:      []byte(loginSecret),
			PurposeInvitation: []byte(invitationSecret),
			PurposeReset:      []byte(resetSecret),
		},
		loginTTL: loginTTL,
		resetTTL: resetTTL,
	}
}

func (m *tokenManager) IssueLoginToken(userID int32, email string, role domain.Role) (string, error) {
	claims := Claims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		Purpose: PurposeLogin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.loginTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "academyhub",
		},
	}
	return m.sign(PurposeLogin, claims)
}

func (m *tokenManager) IssueInvitationToken(invitationID, version int32, ttl time.Duration) (string, error) {
	claims := Claims{
		InvitationID: invitationID,
		Version:      version,
		Purpose:      PurposeInvitation,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(invitationID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "academyhub",
		},
	}
	return m.sign(PurposeInvitation, claims)
}

func (m *tokenManager) IssueResetToken(userID int32, email string) (string, error) {
	claims := Claims{
		UserID:  userID,
		Email:   email,
		Purpose: PurposeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.resetTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "academyhub",
		},
	}
	return m.sign(PurposeReset, claims)
}

// Verify parses the token under the purpose's secret. Expired tokens
// return ErrExpiredToken so callers can report expiry separately from
// structural or signature failures, which return ErrInvalidToken.
func (m *tokenManager) Verify(purpose Purpose, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secrets[purpose], nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *tokenManager) sign(purpose Purpose, claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secrets[purpose])
}
