package service

import (
	"context"
	"errors"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/repository"
)

type goalService struct {
	goals     repository.GoalRepository
	academies repository.AcademyRepository
	users     repository.UserRepository
	sequences repository.SequenceRepository
}

func NewGoalService(goals repository.GoalRepository, academies repository.AcademyRepository, users repository.UserRepository, sequences repository.SequenceRepository) GoalService {
	return &goalService{goals: goals, academies: academies, users: users, sequences: sequences}
}

func (s *goalService) CreateSeasonal(ctx context.Context, requesterID int32, in CreateGoalInput) (*domain.SeasonalGoal, error) {
	if err := validateGoalInput(in); err != nil {
		return nil, err
	}
	if _, err := s.academies.GetByID(ctx, in.ParentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "academy not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load academy", err)
	}

	seq, err := s.sequences.Next(ctx, domain.SeqSeasonalGoal)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to allocate goal code", err)
	}
	goal := &domain.SeasonalGoal{
		Code:      domain.SequentialCode(domain.CodePrefixSeasonalGoal, seq),
		AcademyID: in.ParentID,
		Title:     in.Title,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Target:    in.Target,
		CreatedBy: requesterID,
	}
	if err := s.goals.CreateSeasonal(ctx, goal); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to create seasonal goal", err)
	}
	return goal, nil
}

func (s *goalService) CreateMonthly(ctx context.Context, requesterID int32, in CreateGoalInput) (*domain.MonthlyGoal, error) {
	if err := validateGoalInput(in); err != nil {
		return nil, err
	}
	parent, err := s.goals.GetSeasonalByID(ctx, in.ParentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "seasonal goal not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load seasonal goal", err)
	}
	if in.StartDate.Before(parent.StartDate) || in.EndDate.After(parent.EndDate) {
		return nil, domain.E(domain.CodeBadRequest, "monthly goal must fall within its seasonal goal")
	}

	seq, err := s.sequences.Next(ctx, domain.SeqMonthlyGoal)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to allocate goal code", err)
	}
	goal := &domain.MonthlyGoal{
		Code:           domain.SequentialCode(domain.CodePrefixMonthlyGoal, seq),
		SeasonalGoalID: in.ParentID,
		Title:          in.Title,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Target:         in.Target,
		CreatedBy:      requesterID,
	}
	if err := s.goals.CreateMonthly(ctx, goal); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to create monthly goal", err)
	}
	return goal, nil
}

func (s *goalService) CreateWeekly(ctx context.Context, requesterID int32, in CreateGoalInput) (*domain.WeeklyGoal, error) {
	if err := validateGoalInput(in); err != nil {
		return nil, err
	}
	parent, err := s.goals.GetMonthlyByID(ctx, in.ParentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "monthly goal not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load monthly goal", err)
	}
	if in.StartDate.Before(parent.StartDate) || in.EndDate.After(parent.EndDate) {
		return nil, domain.E(domain.CodeBadRequest, "weekly goal must fall within its monthly goal")
	}

	seq, err := s.sequences.Next(ctx, domain.SeqWeeklyGoal)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to allocate goal code", err)
	}
	goal := &domain.WeeklyGoal{
		Code:          domain.SequentialCode(domain.CodePrefixWeeklyGoal, seq),
		MonthlyGoalID: in.ParentID,
		Title:         in.Title,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Target:        in.Target,
		CreatedBy:     requesterID,
	}
	if err := s.goals.CreateWeekly(ctx, goal); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to create weekly goal", err)
	}
	return goal, nil
}

func (s *goalService) CreateStudentWeekly(ctx context.Context, requesterID int32, in CreateGoalInput) (*domain.StudentWeeklyGoal, error) {
	if err := validateGoalInput(in); err != nil {
		return nil, err
	}
	if _, err := s.goals.GetWeeklyByID(ctx, in.ParentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "weekly goal not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load weekly goal", err)
	}
	student, err := s.users.GetByID(ctx, in.StudentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "student not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load student", err)
	}
	if student.Role != domain.RoleStudent {
		return nil, domain.E(domain.CodeBadRequest, "assignee is not a student")
	}

	seq, err := s.sequences.Next(ctx, domain.SeqStudentWeeklyGoal)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to allocate goal code", err)
	}
	goal := &domain.StudentWeeklyGoal{
		Code:         domain.SequentialCode(domain.CodePrefixStudentWeeklyGoal, seq),
		WeeklyGoalID: in.ParentID,
		StudentID:    in.StudentID,
		Title:        in.Title,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Target:       in.Target,
		CreatedBy:    requesterID,
	}
	if err := s.goals.CreateStudentWeekly(ctx, goal); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to create student weekly goal", err)
	}
	return goal, nil
}

func (s *goalService) ListSeasonal(ctx context.Context, academyID int32) ([]domain.SeasonalGoal, error) {
	goals, err := s.goals.ListSeasonalByAcademy(ctx, academyID)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to list seasonal goals", err)
	}
	return goals, nil
}

func (s *goalService) ListMonthly(ctx context.Context, seasonalGoalID int32) ([]domain.MonthlyGoal, error) {
	goals, err := s.goals.ListMonthlyBySeasonal(ctx, seasonalGoalID)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to list monthly goals", err)
	}
	return goals, nil
}

func (s *goalService) ListWeekly(ctx context.Context, monthlyGoalID int32) ([]domain.WeeklyGoal, error) {
	goals, err := s.goals.ListWeeklyByMonthly(ctx, monthlyGoalID)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to list weekly goals", err)
	}
	return goals, nil
}

func (s *goalService) ListStudentWeekly(ctx context.Context, studentID int32) ([]domain.StudentWeeklyGoal, error) {
	goals, err := s.goals.ListStudentWeeklyByStudent(ctx, studentID)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to list student weekly goals", err)
	}
	return goals, nil
}

func validateGoalInput(in CreateGoalInput) error {
	if in.Title == "" {
		return domain.E(domain.CodeBadRequest, "title is required")
	}
	if in.ParentID == 0 {
		return domain.E(domain.CodeBadRequest, "parent id is required")
	}
	if !in.EndDate.After(in.StartDate) {
		return domain.E(domain.CodeBadRequest, "end date must be after start date")
	}
	return nil
}
