package service

import (
	"context"
	"errors"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/repository"
)

type academyService struct {
	academies repository.AcademyRepository
	users     repository.UserRepository
}

func NewAcademyService(academies repository.AcademyRepository, users repository.UserRepository) AcademyService {
	return &academyService{academies: academies, users: users}
}

func (s *academyService) Create(ctx context.Context, requesterRole domain.Role, name string) (*domain.Academy, error) {
	if requesterRole != domain.RoleSuperAdmin {
		return nil, domain.E(domain.CodeForbidden, "only a super admin may create academies")
	}
	if name == "" {
		return nil, domain.E(domain.CodeBadRequest, "academy name is required")
	}

	academy := &domain.Academy{Name: name, Status: domain.AcademyStatusActive}
	if err := s.academies.Create(ctx, academy); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to create academy", err)
	}
	return academy, nil
}

func (s *academyService) Get(ctx context.Context, requesterID int32, requesterRole domain.Role, id int32) (*domain.Academy, error) {
	academy, err := s.academies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "academy not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load academy", err)
	}

	if requesterRole == domain.RoleAdmin {
		ok, err := s.users.IsAcademyAdmin(ctx, requesterID, id)
		if err != nil {
			return nil, domain.Wrap(domain.CodeInternal, "failed to check academy membership", err)
		}
		if !ok {
			return nil, domain.E(domain.CodeForbidden, "not an admin of this academy")
		}
	}
	return academy, nil
}

// List is role-scoped: a super admin sees every academy, an admin only
// the academies they administer.
func (s *academyService) List(ctx context.Context, requesterID int32, requesterRole domain.Role, page, limit int32) ([]domain.Academy, int32, error) {
	switch requesterRole {
	case domain.RoleSuperAdmin:
		academies, total, err := s.academies.List(ctx, page, limit)
		if err != nil {
			return nil, 0, domain.Wrap(domain.CodeInternal, "failed to list academies", err)
		}
		return academies, total, nil
	case domain.RoleAdmin:
		academies, err := s.academies.ListByAdmin(ctx, requesterID)
		if err != nil {
			return nil, 0, domain.Wrap(domain.CodeInternal, "failed to list academies", err)
		}
		return academies, int32(len(academies)), nil
	default:
		return nil, 0, domain.E(domain.CodeForbidden, "insufficient role")
	}
}

func (s *academyService) Update(ctx context.Context, requesterID int32, requesterRole domain.Role, a *domain.Academy) error {
	if _, err := s.Get(ctx, requesterID, requesterRole, a.ID); err != nil {
		return err
	}
	if requesterRole != domain.RoleSuperAdmin && requesterRole != domain.RoleAdmin {
		return domain.E(domain.CodeForbidden, "insufficient role")
	}
	if err := s.academies.Update(ctx, a); err != nil {
		return domain.Wrap(domain.CodeInternal, "failed to update academy", err)
	}
	return nil
}
