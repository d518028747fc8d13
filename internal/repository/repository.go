package repository

import (
	"context"
	"errors"
	"time"

	"academyhub-backend/internal/domain"
)

// ErrNotFound is returned by lookups when no row matches. Services map it
// to their own NOT_FOUND errors.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint, e.g. the partial unique index on pending invitations.
var ErrDuplicate = errors.New("duplicate record")

type UserRepository interface {
	CreateProfile(ctx context.Context, p *domain.Profile) error
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID int32, passwordHash string, hasPassword bool) error

	// Membership links
	AddAcademyAdmin(ctx context.Context, userID, academyID int32) error
	IsAcademyAdmin(ctx context.Context, userID, academyID int32) (bool, error)
	AddBatchCoach(ctx context.Context, userID, batchID int32) error
	AddBatchStudent(ctx context.Context, userID, batchID int32) error
	ListByBatch(ctx context.Context, batchID int32, role domain.Role) ([]domain.User, error)
	CountBatchStudents(ctx context.Context, batchID int32) (int32, error)
}

type AcademyRepository interface {
	Create(ctx context.Context, a *domain.Academy) error
	GetByID(ctx context.Context, id int32) (*domain.Academy, error)
	List(ctx context.Context, page, limit int32) ([]domain.Academy, int32, error)
	ListByAdmin(ctx context.Context, userID int32) ([]domain.Academy, error)
	Update(ctx context.Context, a *domain.Academy) error
}

type BatchRepository interface {
	Create(ctx context.Context, b *domain.Batch) error
	GetByID(ctx context.Context, id int32) (*domain.Batch, error)
	// GetByIDForUpdate locks the batch row for the rest of the enclosing
	// transaction. Capacity checks rely on this lock.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Batch, error)
	ListByAcademy(ctx context.Context, academyID int32) ([]domain.Batch, error)
	ListByCoach(ctx context.Context, coachID int32) ([]domain.Batch, error)
	IsCoach(ctx context.Context, batchID, userID int32) (bool, error)
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetByID(ctx context.Context, id int32) (*domain.Invitation, error)
	// GetByIDForUpdate locks the invitation row for the rest of the
	// enclosing transaction, serializing concurrent acceptances.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Invitation, error)
	// GetActiveByEmail returns a PENDING, unexpired invitation for the
	// email, or ErrNotFound.
	GetActiveByEmail(ctx context.Context, email string, now time.Time) (*domain.Invitation, error)
	Update(ctx context.Context, inv *domain.Invitation) error
	// Delete removes the row only when both id and version match and
	// reports whether a row was deleted. Zero rows means the invitation
	// was already consumed, edited or removed.
	Delete(ctx context.Context, id, version int32) (bool, error)
	ListByCreator(ctx context.Context, creatorID int32, page, limit int32) ([]domain.Invitation, int32, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SequenceRepository hands out monotonically increasing counter values
// per named sequence for human-readable entity codes.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int32, error)
}

type GoalRepository interface {
	CreateSeasonal(ctx context.Context, g *domain.SeasonalGoal) error
	CreateMonthly(ctx context.Context, g *domain.MonthlyGoal) error
	CreateWeekly(ctx context.Context, g *domain.WeeklyGoal) error
	CreateStudentWeekly(ctx context.Context, g *domain.StudentWeeklyGoal) error
	GetSeasonalByID(ctx context.Context, id int32) (*domain.SeasonalGoal, error)
	GetMonthlyByID(ctx context.Context, id int32) (*domain.MonthlyGoal, error)
	GetWeeklyByID(ctx context.Context, id int32) (*domain.WeeklyGoal, error)
	ListSeasonalByAcademy(ctx context.Context, academyID int32) ([]domain.SeasonalGoal, error)
	ListMonthlyBySeasonal(ctx context.Context, seasonalGoalID int32) ([]domain.MonthlyGoal, error)
	ListWeeklyByMonthly(ctx context.Context, monthlyGoalID int32) ([]domain.WeeklyGoal, error)
	ListStudentWeeklyByStudent(ctx context.Context, studentID int32) ([]domain.StudentWeeklyGoal, error)
}

type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int32) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id int32, status domain.TaskStatus) error
	ListByAssignee(ctx context.Context, assigneeType domain.TaskAssigneeType, assignedTo int32, page, limit int32) ([]domain.Task, int32, error)
	ListByAssigner(ctx context.Context, assignedBy int32, page, limit int32) ([]domain.Task, int32, error)
}

type MessageRepository interface {
	CreateChannel(ctx context.Context, c *domain.Channel) error
	GetChannelByID(ctx context.Context, id int32) (*domain.Channel, error)
	Create(ctx context.Context, m *domain.Message) error
	ListByChannel(ctx context.Context, channelID int32, page, limit int32) ([]domain.Message, int32, error)
}

type FriendRequestRepository interface {
	Create(ctx context.Context, fr *domain.FriendRequest) error
	GetByID(ctx context.Context, id int32) (*domain.FriendRequest, error)
	GetPendingBetween(ctx context.Context, fromUserID, toUserID int32) (*domain.FriendRequest, error)
	Update(ctx context.Context, fr *domain.FriendRequest) error
	ListByUser(ctx context.Context, userID int32) ([]domain.FriendRequest, error)
}

// Store bundles every repository plus the transaction primitive. WithTx
// runs fn against a Store bound to one database transaction; any error
// rolls back everything fn did.
type Store interface {
	Users() UserRepository
	Academies() AcademyRepository
	Batches() BatchRepository
	Invitations() InvitationRepository
	Sequences() SequenceRepository
	Goals() GoalRepository
	Tasks() TaskRepository
	Messages() MessageRepository
	FriendRequests() FriendRequestRepository
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
