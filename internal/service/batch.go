package service

import (
	"context"
	"errors"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/repository"
)

type batchService struct {
	batches   repository.BatchRepository
	academies repository.AcademyRepository
	users     repository.UserRepository
	sequences repository.SequenceRepository
}

func NewBatchService(batches repository.BatchRepository, academies repository.AcademyRepository, users repository.UserRepository, sequences repository.SequenceRepository) BatchService {
	return &batchService{batches: batches, academies: academies, users: users, sequences: sequences}
}

func (s *batchService) Create(ctx context.Context, requesterID int32, requesterRole domain.Role, in CreateBatchInput) (*domain.Batch, error) {
	if requesterRole != domain.RoleSuperAdmin && requesterRole != domain.RoleAdmin {
		return nil, domain.E(domain.CodeForbidden, "only a super admin or academy admin may create batches")
	}
	if in.StudentCapacity <= 0 {
		return nil, domain.E(domain.CodeBadRequest, "student capacity must be positive")
	}
	if in.WarningCutoff < 0 || in.WarningCutoff > in.StudentCapacity {
		return nil, domain.E(domain.CodeBadRequest, "warning cutoff must be between zero and the capacity")
	}

	if _, err := s.academies.GetByID(ctx, in.AcademyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "academy not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load academy", err)
	}
	if requesterRole == domain.RoleAdmin {
		ok, err := s.users.IsAcademyAdmin(ctx, requesterID, in.AcademyID)
		if err != nil {
			return nil, domain.Wrap(domain.CodeInternal, "failed to check academy membership", err)
		}
		if !ok {
			return nil, domain.E(domain.CodeForbidden, "not an admin of this academy")
		}
	}

	seq, err := s.sequences.Next(ctx, domain.SeqBatch)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to allocate batch code", err)
	}

	batch := &domain.Batch{
		BatchCode:       domain.SequentialCode(domain.CodePrefixBatch, seq),
		AcademyID:       in.AcademyID,
		StudentCapacity: in.StudentCapacity,
		WarningCutoff:   in.WarningCutoff,
	}
	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to create batch", err)
	}
	return batch, nil
}

func (s *batchService) Get(ctx context.Context, requesterID int32, requesterRole domain.Role, id int32) (*domain.Batch, error) {
	batch, err := s.batches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "batch not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load batch", err)
	}

	switch requesterRole {
	case domain.RoleSuperAdmin:
	case domain.RoleAdmin:
		ok, err := s.users.IsAcademyAdmin(ctx, requesterID, batch.AcademyID)
		if err != nil {
			return nil, domain.Wrap(domain.CodeInternal, "failed to check academy membership", err)
		}
		if !ok {
			return nil, domain.E(domain.CodeForbidden, "batch belongs to another academy")
		}
	case domain.RoleCoach:
		ok, err := s.batches.IsCoach(ctx, id, requesterID)
		if err != nil {
			return nil, domain.Wrap(domain.CodeInternal, "failed to check batch membership", err)
		}
		if !ok {
			return nil, domain.E(domain.CodeForbidden, "you do not coach this batch")
		}
	default:
		return nil, domain.E(domain.CodeForbidden, "insufficient role")
	}

	coaches, err := s.users.ListByBatch(ctx, id, domain.RoleCoach)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to list coaches", err)
	}
	students, err := s.users.ListByBatch(ctx, id, domain.RoleStudent)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to list students", err)
	}
	batch.Coaches = coaches
	batch.Students = students
	return batch, nil
}

// List is role-scoped: super admins get nothing filtered out, admins get
// their academies' batches, coaches get the batches they coach.
func (s *batchService) List(ctx context.Context, requesterID int32, requesterRole domain.Role) ([]domain.Batch, error) {
	switch requesterRole {
	case domain.RoleSuperAdmin, domain.RoleAdmin:
		var academies []domain.Academy
		var err error
		if requesterRole == domain.RoleSuperAdmin {
			academies, _, err = s.academies.List(ctx, 1, 1000)
		} else {
			academies, err = s.academies.ListByAdmin(ctx, requesterID)
		}
		if err != nil {
			return nil, domain.Wrap(domain.CodeInternal, "failed to list academies", err)
		}
		var batches []domain.Batch
		for _, a := range academies {
			bs, err := s.batches.ListByAcademy(ctx, a.ID)
			if err != nil {
				return nil, domain.Wrap(domain.CodeInternal, "failed to list batches", err)
			}
			batches = append(batches, bs...)
		}
		return batches, nil
	case domain.RoleCoach:
		batches, err := s.batches.ListByCoach(ctx, requesterID)
		if err != nil {
			return nil, domain.Wrap(domain.CodeInternal, "failed to list batches", err)
		}
		return batches, nil
	default:
		return nil, domain.E(domain.CodeForbidden, "insufficient role")
	}
}
