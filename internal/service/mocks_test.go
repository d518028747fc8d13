package service_test

import (
	"context"
	"time"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateProfile(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil && p.ID == 0 {
		p.ID = 1
	}
	return args.Error(0)
}
func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil && u.ID == 0 {
		u.ID = 1
	}
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, userID int32, passwordHash string, hasPassword bool) error {
	args := m.Called(ctx, userID, passwordHash, hasPassword)
	return args.Error(0)
}
func (m *MockUserRepo) AddAcademyAdmin(ctx context.Context, userID, academyID int32) error {
	args := m.Called(ctx, userID, academyID)
	return args.Error(0)
}
func (m *MockUserRepo) IsAcademyAdmin(ctx context.Context, userID, academyID int32) (bool, error) {
	args := m.Called(ctx, userID, academyID)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) AddBatchCoach(ctx context.Context, userID, batchID int32) error {
	args := m.Called(ctx, userID, batchID)
	return args.Error(0)
}
func (m *MockUserRepo) AddBatchStudent(ctx context.Context, userID, batchID int32) error {
	args := m.Called(ctx, userID, batchID)
	return args.Error(0)
}
func (m *MockUserRepo) ListByBatch(ctx context.Context, batchID int32, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, batchID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) CountBatchStudents(ctx context.Context, batchID int32) (int32, error) {
	args := m.Called(ctx, batchID)
	return int32(args.Int(0)), args.Error(1)
}

// MockAcademyRepo
type MockAcademyRepo struct {
	mock.Mock
}

func (m *MockAcademyRepo) Create(ctx context.Context, a *domain.Academy) error {
	args := m.Called(ctx, a)
	if args.Error(0) == nil && a.ID == 0 {
		a.ID = 1
	}
	return args.Error(0)
}
func (m *MockAcademyRepo) GetByID(ctx context.Context, id int32) (*domain.Academy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Academy), args.Error(1)
}
func (m *MockAcademyRepo) List(ctx context.Context, page, limit int32) ([]domain.Academy, int32, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Academy), int32(args.Int(1)), args.Error(2)
}
func (m *MockAcademyRepo) ListByAdmin(ctx context.Context, userID int32) ([]domain.Academy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Academy), args.Error(1)
}
func (m *MockAcademyRepo) Update(ctx context.Context, a *domain.Academy) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockBatchRepo
type MockBatchRepo struct {
	mock.Mock
}

func (m *MockBatchRepo) Create(ctx context.Context, b *domain.Batch) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil && b.ID == 0 {
		b.ID = 1
	}
	return args.Error(0)
}
func (m *MockBatchRepo) GetByID(ctx context.Context, id int32) (*domain.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchRepo) ListByAcademy(ctx context.Context, academyID int32) ([]domain.Batch, error) {
	args := m.Called(ctx, academyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Batch), args.Error(1)
}
func (m *MockBatchRepo) ListByCoach(ctx context.Context, coachID int32) ([]domain.Batch, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Batch), args.Error(1)
}
func (m *MockBatchRepo) IsCoach(ctx context.Context, batchID, userID int32) (bool, error) {
	args := m.Called(ctx, batchID, userID)
	return args.Bool(0), args.Error(1)
}

// MockInvitationRepo
type MockInvitationRepo struct {
	mock.Mock
}

func (m *MockInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	if args.Error(0) == nil && inv.ID == 0 {
		inv.ID = 1
	}
	return args.Error(0)
}
func (m *MockInvitationRepo) GetByID(ctx context.Context, id int32) (*domain.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInvitationRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInvitationRepo) GetActiveByEmail(ctx context.Context, email string, now time.Time) (*domain.Invitation, error) {
	args := m.Called(ctx, email, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInvitationRepo) Update(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvitationRepo) Delete(ctx context.Context, id, version int32) (bool, error) {
	args := m.Called(ctx, id, version)
	return args.Bool(0), args.Error(1)
}
func (m *MockInvitationRepo) ListByCreator(ctx context.Context, creatorID int32, page, limit int32) ([]domain.Invitation, int32, error) {
	args := m.Called(ctx, creatorID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Invitation), int32(args.Int(1)), args.Error(2)
}
func (m *MockInvitationRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return int64(args.Int(0)), args.Error(1)
}

// MockSequenceRepo
type MockSequenceRepo struct {
	mock.Mock
}

func (m *MockSequenceRepo) Next(ctx context.Context, name string) (int32, error) {
	args := m.Called(ctx, name)
	return int32(args.Int(0)), args.Error(1)
}

// MockGoalRepo
type MockGoalRepo struct {
	mock.Mock
}

func (m *MockGoalRepo) CreateSeasonal(ctx context.Context, g *domain.SeasonalGoal) error {
	args := m.Called(ctx, g)
	if args.Error(0) == nil && g.ID == 0 {
		g.ID = 1
	}
	return args.Error(0)
}
func (m *MockGoalRepo) CreateMonthly(ctx context.Context, g *domain.MonthlyGoal) error {
	args := m.Called(ctx, g)
	if args.Error(0) == nil && g.ID == 0 {
		g.ID = 1
	}
	return args.Error(0)
}
func (m *MockGoalRepo) CreateWeekly(ctx context.Context, g *domain.WeeklyGoal) error {
	args := m.Called(ctx, g)
	if args.Error(0) == nil && g.ID == 0 {
		g.ID = 1
	}
	return args.Error(0)
}
func (m *MockGoalRepo) CreateStudentWeekly(ctx context.Context, g *domain.StudentWeeklyGoal) error {
	args := m.Called(ctx, g)
	if args.Error(0) == nil && g.ID == 0 {
		g.ID = 1
	}
	return args.Error(0)
}
func (m *MockGoalRepo) GetSeasonalByID(ctx context.Context, id int32) (*domain.SeasonalGoal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeasonalGoal), args.Error(1)
}
func (m *MockGoalRepo) GetMonthlyByID(ctx context.Context, id int32) (*domain.MonthlyGoal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyGoal), args.Error(1)
}
func (m *MockGoalRepo) GetWeeklyByID(ctx context.Context, id int32) (*domain.WeeklyGoal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyGoal), args.Error(1)
}
func (m *MockGoalRepo) ListSeasonalByAcademy(ctx context.Context, academyID int32) ([]domain.SeasonalGoal, error) {
	args := m.Called(ctx, academyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeasonalGoal), args.Error(1)
}
func (m *MockGoalRepo) ListMonthlyBySeasonal(ctx context.Context, seasonalGoalID int32) ([]domain.MonthlyGoal, error) {
	args := m.Called(ctx, seasonalGoalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyGoal), args.Error(1)
}
func (m *MockGoalRepo) ListWeeklyByMonthly(ctx context.Context, monthlyGoalID int32) ([]domain.WeeklyGoal, error) {
	args := m.Called(ctx, monthlyGoalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeeklyGoal), args.Error(1)
}
func (m *MockGoalRepo) ListStudentWeeklyByStudent(ctx context.Context, studentID int32) ([]domain.StudentWeeklyGoal, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentWeeklyGoal), args.Error(1)
}

// MockTaskRepo
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	args := m.Called(ctx, t)
	if args.Error(0) == nil && t.ID == 0 {
		t.ID = 1
	}
	return args.Error(0)
}
func (m *MockTaskRepo) GetByID(ctx context.Context, id int32) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}
func (m *MockTaskRepo) UpdateStatus(ctx context.Context, id int32, status domain.TaskStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockTaskRepo) ListByAssignee(ctx context.Context, assigneeType domain.TaskAssigneeType, assignedTo int32, page, limit int32) ([]domain.Task, int32, error) {
	args := m.Called(ctx, assigneeType, assignedTo, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Task), int32(args.Int(1)), args.Error(2)
}
func (m *MockTaskRepo) ListByAssigner(ctx context.Context, assignedBy int32, page, limit int32) ([]domain.Task, int32, error) {
	args := m.Called(ctx, assignedBy, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Task), int32(args.Int(1)), args.Error(2)
}

// MockMessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) CreateChannel(ctx context.Context, c *domain.Channel) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockMessageRepo) GetChannelByID(ctx context.Context, id int32) (*domain.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Channel), args.Error(1)
}
func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepo) ListByChannel(ctx context.Context, channelID int32, page, limit int32) ([]domain.Message, int32, error) {
	args := m.Called(ctx, channelID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Message), int32(args.Int(1)), args.Error(2)
}

// MockFriendRequestRepo
type MockFriendRequestRepo struct {
	mock.Mock
}

func (m *MockFriendRequestRepo) Create(ctx context.Context, fr *domain.FriendRequest) error {
	args := m.Called(ctx, fr)
	if args.Error(0) == nil && fr.ID == 0 {
		fr.ID = 1
	}
	return args.Error(0)
}
func (m *MockFriendRequestRepo) GetByID(ctx context.Context, id int32) (*domain.FriendRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FriendRequest), args.Error(1)
}
func (m *MockFriendRequestRepo) GetPendingBetween(ctx context.Context, fromUserID, toUserID int32) (*domain.FriendRequest, error) {
	args := m.Called(ctx, fromUserID, toUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FriendRequest), args.Error(1)
}
func (m *MockFriendRequestRepo) Update(ctx context.Context, fr *domain.FriendRequest) error {
	args := m.Called(ctx, fr)
	return args.Error(0)
}
func (m *MockFriendRequestRepo) ListByUser(ctx context.Context, userID int32) ([]domain.FriendRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FriendRequest), args.Error(1)
}

// MockStore bundles the repo mocks behind the Store interface. WithTx
// hands the same store back to the callback so transactional code paths
// can be exercised without a database.
type MockStore struct {
	UserRepo          *MockUserRepo
	AcademyRepo       *MockAcademyRepo
	BatchRepo         *MockBatchRepo
	InvitationRepo    *MockInvitationRepo
	SequenceRepo      *MockSequenceRepo
	GoalRepo          *MockGoalRepo
	TaskRepo          *MockTaskRepo
	MessageRepo       *MockMessageRepo
	FriendRequestRepo *MockFriendRequestRepo
}

func NewMockStore() *MockStore {
	return &MockStore{
		UserRepo:          new(MockUserRepo),
		AcademyRepo:       new(MockAcademyRepo),
		BatchRepo:         new(MockBatchRepo),
		InvitationRepo:    new(MockInvitationRepo),
		SequenceRepo:      new(MockSequenceRepo),
		GoalRepo:          new(MockGoalRepo),
		TaskRepo:          new(MockTaskRepo),
		MessageRepo:       new(MockMessageRepo),
		FriendRequestRepo: new(MockFriendRequestRepo),
	}
}

func (s *MockStore) Users() repository.UserRepository                   { return s.UserRepo }
func (s *MockStore) Academies() repository.AcademyRepository            { return s.AcademyRepo }
func (s *MockStore) Batches() repository.BatchRepository                { return s.BatchRepo }
func (s *MockStore) Invitations() repository.InvitationRepository       { return s.InvitationRepo }
func (s *MockStore) Sequences() repository.SequenceRepository           { return s.SequenceRepo }
func (s *MockStore) Goals() repository.GoalRepository                   { return s.GoalRepo }
func (s *MockStore) Tasks() repository.TaskRepository                   { return s.TaskRepo }
func (s *MockStore) Messages() repository.MessageRepository             { return s.MessageRepo }
func (s *MockStore) FriendRequests() repository.FriendRequestRepository { return s.FriendRequestRepo }

func (s *MockStore) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(s)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendInvitation(ctx context.Context, invType domain.InvitationType, email, name, tempPassword, activationLink string) error {
	args := m.Called(ctx, invType, email, name, tempPassword, activationLink)
	return args.Error(0)
}
func (m *MockEmailService) SendPasswordReset(ctx context.Context, email, name, resetLink string) error {
	args := m.Called(ctx, email, name, resetLink)
	return args.Error(0)
}
func (m *MockEmailService) SendNotification(ctx context.Context, email, subject, body string) error {
	args := m.Called(ctx, email, subject, body)
	return args.Error(0)
}
