package service

import (
	"context"
	"time"

	"academyhub-backend/internal/domain"
)

// CreateInvitationInput carries everything an authorized actor supplies
// when inviting somebody. Unused fields depend on Type.
type CreateInvitationInput struct {
	Type        domain.InvitationType `json:"type"`
	Email       string                `json:"email"`
	FirstName   string                `json:"first_name"`
	LastName    string                `json:"last_name"`
	AcademyName string                `json:"academy_name,omitempty"` // CREATE_ACADEMY
	BatchID     int32                 `json:"batch_id,omitempty"`     // BATCH_COACH / BATCH_STUDENT
	SubRole     string                `json:"sub_role,omitempty"`     // BATCH_COACH
}

// ProvisionedIdentity summarizes what one invitation acceptance created.
type ProvisionedIdentity struct {
	UserID    int32       `json:"user_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Code      string      `json:"code"`
	AcademyID *int32      `json:"academy_id,omitempty"`
	BatchID   *int32      `json:"batch_id,omitempty"`
}

type InvitationService interface {
	Create(ctx context.Context, requesterID int32, requesterRole domain.Role, in CreateInvitationInput) (*domain.Invitation, error)
	Edit(ctx context.Context, requesterID, invitationID int32, newEmail string) (*domain.Invitation, error)
	Delete(ctx context.Context, requesterID, invitationID int32) error
	List(ctx context.Context, requesterID, page, limit int32) ([]domain.Invitation, int32, error)
	// Verify checks a token without consuming the invitation; the accept
	// page calls it to render the invitee's details.
	Verify(ctx context.Context, token string) (*domain.Invitation, error)
	// Accept consumes the invitation and provisions the identity
	// atomically.
	Accept(ctx context.Context, token string) (*ProvisionedIdentity, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID int32) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int32, currentPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type AcademyService interface {
	Create(ctx context.Context, requesterRole domain.Role, name string) (*domain.Academy, error)
	Get(ctx context.Context, requesterID int32, requesterRole domain.Role, id int32) (*domain.Academy, error)
	List(ctx context.Context, requesterID int32, requesterRole domain.Role, page, limit int32) ([]domain.Academy, int32, error)
	Update(ctx context.Context, requesterID int32, requesterRole domain.Role, a *domain.Academy) error
}

type CreateBatchInput struct {
	AcademyID       int32 `json:"academy_id"`
	StudentCapacity int32 `json:"student_capacity"`
	WarningCutoff   int32 `json:"warning_cutoff"`
}

type BatchService interface {
	Create(ctx context.Context, requesterID int32, requesterRole domain.Role, in CreateBatchInput) (*domain.Batch, error)
	Get(ctx context.Context, requesterID int32, requesterRole domain.Role, id int32) (*domain.Batch, error)
	List(ctx context.Context, requesterID int32, requesterRole domain.Role) ([]domain.Batch, error)
}

type CreateGoalInput struct {
	Title     string                `json:"title"`
	ParentID  int32                 `json:"parent_id"` // academy / seasonal / monthly / weekly id per level
	StudentID int32                 `json:"student_id,omitempty"`
	StartDate time.Time             `json:"start_date"`
	EndDate   time.Time             `json:"end_date"`
	Target    domain.ProgressTarget `json:"target"`
}

type GoalService interface {
	CreateSeasonal(ctx context.Context, requesterID int32, in CreateGoalInput) (*domain.SeasonalGoal, error)
	CreateMonthly(ctx context.Context, requesterID int32, in CreateGoalInput) (*domain.MonthlyGoal, error)
	CreateWeekly(ctx context.Context, requesterID int32, in CreateGoalInput) (*domain.WeeklyGoal, error)
	CreateStudentWeekly(ctx context.Context, requesterID int32, in CreateGoalInput) (*domain.StudentWeeklyGoal, error)
	ListSeasonal(ctx context.Context, academyID int32) ([]domain.SeasonalGoal, error)
	ListMonthly(ctx context.Context, seasonalGoalID int32) ([]domain.MonthlyGoal, error)
	ListWeekly(ctx context.Context, monthlyGoalID int32) ([]domain.WeeklyGoal, error)
	ListStudentWeekly(ctx context.Context, studentID int32) ([]domain.StudentWeeklyGoal, error)
}

type CreateTaskInput struct {
	Title        string                  `json:"title"`
	Description  string                  `json:"description,omitempty"`
	AssigneeType domain.TaskAssigneeType `json:"assignee_type"`
	AssignedTo   int32                   `json:"assigned_to"`
	DueDate      *time.Time              `json:"due_date,omitempty"`
}

type TaskService interface {
	Create(ctx context.Context, requesterID int32, requesterRole domain.Role, in CreateTaskInput) (*domain.Task, error)
	UpdateStatus(ctx context.Context, requesterID, taskID int32, status domain.TaskStatus) error
	ListForUser(ctx context.Context, userID int32, page, limit int32) ([]domain.Task, int32, error)
}

type ChatService interface {
	SendMessage(ctx context.Context, senderID, channelID int32, body string) (*domain.Message, error)
	ListMessages(ctx context.Context, channelID int32, page, limit int32) ([]domain.Message, int32, error)
	SendFriendRequest(ctx context.Context, fromUserID, toUserID int32) (*domain.FriendRequest, error)
	RespondFriendRequest(ctx context.Context, userID, requestID int32, accept bool) (*domain.FriendRequest, error)
	ListFriendRequests(ctx context.Context, userID int32) ([]domain.FriendRequest, error)
}

// EmailService is the dumb mail transport contract. Subjects and bodies
// are composed by the caller-side helpers; transport failure surfaces as
// a MAIL_ERROR-coded error.
type EmailService interface {
	SendInvitation(ctx context.Context, invType domain.InvitationType, email, name, tempPassword, activationLink string) error
	SendPasswordReset(ctx context.Context, email, name, resetLink string) error
	SendNotification(ctx context.Context, email, subject, body string) error
}
