package service

import (
	"context"
	"errors"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/repository"
)

type taskService struct {
	tasks   repository.TaskRepository
	users   repository.UserRepository
	batches repository.BatchRepository
}

func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository, batches repository.BatchRepository) TaskService {
	return &taskService{tasks: tasks, users: users, batches: batches}
}

func (s *taskService) Create(ctx context.Context, requesterID int32, requesterRole domain.Role, in CreateTaskInput) (*domain.Task, error) {
	if requesterRole != domain.RoleSuperAdmin && requesterRole != domain.RoleAdmin && requesterRole != domain.RoleCoach {
		return nil, domain.E(domain.CodeForbidden, "insufficient role to assign tasks")
	}
	if in.Title == "" {
		return nil, domain.E(domain.CodeBadRequest, "title is required")
	}

	switch in.AssigneeType {
	case domain.TaskAssigneeUser:
		user, err := s.users.GetByID(ctx, in.AssignedTo)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, domain.E(domain.CodeNotFound, "assignee not found")
			}
			return nil, domain.Wrap(domain.CodeInternal, "failed to load assignee", err)
		}
		if user.Role != domain.RoleStudent {
			return nil, domain.E(domain.CodeBadRequest, "tasks can only be assigned to students")
		}
	case domain.TaskAssigneeBatch:
		if _, err := s.batches.GetByID(ctx, in.AssignedTo); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, domain.E(domain.CodeNotFound, "batch not found")
			}
			return nil, domain.Wrap(domain.CodeInternal, "failed to load batch", err)
		}
	default:
		return nil, domain.E(domain.CodeBadRequest, "invalid assignee type")
	}

	task := &domain.Task{
		Title:        in.Title,
		Description:  in.Description,
		AssigneeType: in.AssigneeType,
		AssignedTo:   in.AssignedTo,
		AssignedBy:   requesterID,
		Status:       domain.TaskStatusPending,
		DueDate:      in.DueDate,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to create task", err)
	}
	return task, nil
}

func (s *taskService) UpdateStatus(ctx context.Context, requesterID, taskID int32, status domain.TaskStatus) error {
	if !domain.ValidTaskStatus(status) {
		return domain.E(domain.CodeBadRequest, "invalid task status")
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeNotFound, "task not found")
		}
		return domain.Wrap(domain.CodeInternal, "failed to load task", err)
	}

	// Assigner or individual assignee may move the task.
	allowed := task.AssignedBy == requesterID ||
		(task.AssigneeType == domain.TaskAssigneeUser && task.AssignedTo == requesterID)
	if !allowed {
		return domain.E(domain.CodeForbidden, "not your task")
	}

	if err := s.tasks.UpdateStatus(ctx, taskID, status); err != nil {
		return domain.Wrap(domain.CodeInternal, "failed to update task", err)
	}
	return nil
}

func (s *taskService) ListForUser(ctx context.Context, userID int32, page, limit int32) ([]domain.Task, int32, error) {
	tasks, total, err := s.tasks.ListByAssignee(ctx, domain.TaskAssigneeUser, userID, page, limit)
	if err != nil {
		return nil, 0, domain.Wrap(domain.CodeInternal, "failed to list tasks", err)
	}
	return tasks, total, nil
}
