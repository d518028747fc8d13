package domain

import "time"

type InvitationType string

const (
	InvitationTypeCreateAcademy InvitationType = "CREATE_ACADEMY"
	InvitationTypeBatchCoach    InvitationType = "BATCH_COACH"
	InvitationTypeBatchStudent  InvitationType = "BATCH_STUDENT"
)

// ValidInvitationType reports whether t is a known invitation type.
func ValidInvitationType(t InvitationType) bool {
	switch t {
	case InvitationTypeCreateAcademy, InvitationTypeBatchCoach, InvitationTypeBatchStudent:
		return true
	}
	return false
}

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "PENDING"
	InvitationStatusAccepted InvitationStatus = "ACCEPTED"
)

// InvitationData is the type-specific payload stored as JSON on the
// invitation row. Only the bcrypt hash of the temporary credential is
// ever stored; the plaintext exists solely in the outgoing email.
type InvitationData struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	AcademyName      string `json:"academy_name,omitempty"` // CREATE_ACADEMY only
	BatchID          int32  `json:"batch_id,omitempty"`     // BATCH_COACH / BATCH_STUDENT
	SubRole          string `json:"sub_role,omitempty"`     // BATCH_COACH only
	TempPasswordHash string `json:"temp_password_hash"`
}

// FullName joins the invitee name for email templates and deep links.
func (d InvitationData) FullName() string {
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

type Invitation struct {
	ID        int32            `json:"id"`
	Type      InvitationType   `json:"type"`
	Email     string           `json:"email"`
	Data      InvitationData   `json:"data"`
	Status    InvitationStatus `json:"status"`
	Version   int32            `json:"version"`
	ExpiresAt time.Time        `json:"expires_at"`
	CreatedBy int32            `json:"created_by"`
	CreatedAt time.Time        `json:"created_at"`
}

// Expired reports whether the invitation's validity window has passed.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Redacted returns a copy safe to serialize in API responses. The
// temporary credential hash is marshaled only for JSONB storage and must
// never leave the server.
func (i Invitation) Redacted() Invitation {
	i.Data.TempPasswordHash = ""
	return i
}
