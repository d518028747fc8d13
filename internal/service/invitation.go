package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/logger"
	"academyhub-backend/internal/repository"
	"academyhub-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type invitationService struct {
	store       repository.Store
	tokens      security.TokenManager
	email       EmailService
	frontendURL string
	inviteTTL   time.Duration
}

func NewInvitationService(store repository.Store, tokens security.TokenManager, email EmailService, frontendURL string, inviteTTL time.Duration) InvitationService {
	return &invitationService{
		store:       store,
		tokens:      tokens,
		email:       email,
		frontendURL: frontendURL,
		inviteTTL:   inviteTTL,
	}
}

// Create checks the requester's authority for the invitation type,
// rejects duplicates, stores the invitation row and emails the
// activation link. The row survives a failed send: the caller gets a
// MAIL_ERROR together with the created invitation so it can be re-sent
// via Edit instead of recreated.
func (s *invitationService) Create(ctx context.Context, requesterID int32, requesterRole domain.Role, in CreateInvitationInput) (*domain.Invitation, error) {
	if err := s.validateCreate(in); err != nil {
		return nil, err
	}
	if err := s.authorizeCreate(ctx, requesterID, requesterRole, in); err != nil {
		return nil, err
	}

	// Target email must not belong to an existing user or an active
	// pending invitation. The partial unique index on pending
	// invitations backs this check up under concurrency.
	if _, err := s.store.Users().GetByEmail(ctx, in.Email); err == nil {
		return nil, domain.E(domain.CodeConflict, "a user with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Wrap(domain.CodeInternal, "failed to check existing user", err)
	}
	if _, err := s.store.Invitations().GetActiveByEmail(ctx, in.Email, time.Now()); err == nil {
		return nil, domain.E(domain.CodeConflict, "an active invitation already exists for this email")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Wrap(domain.CodeInternal, "failed to check existing invitation", err)
	}

	tempPassword, hash, err := s.newTempCredential()
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to generate temporary credential", err)
	}

	inv := &domain.Invitation{
		Type:  in.Type,
		Email: in.Email,
		Data: domain.InvitationData{
			FirstName:        in.FirstName,
			LastName:         in.LastName,
			AcademyName:      in.AcademyName,
			BatchID:          in.BatchID,
			SubRole:          in.SubRole,
			TempPasswordHash: hash,
		},
		Status:    domain.InvitationStatusPending,
		Version:   1,
		ExpiresAt: time.Now().Add(s.inviteTTL),
		CreatedBy: requesterID,
	}
	if err := s.store.Invitations().Create(ctx, inv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.E(domain.CodeConflict, "an active invitation already exists for this email")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to create invitation", err)
	}

	if err := s.sendActivation(ctx, inv, tempPassword); err != nil {
		logger.Warn("invitation created but activation email failed",
			"invitation_id", inv.ID, "email", inv.Email, "error", err)
		return inv, err
	}

	logger.Info("invitation created", "invitation_id", inv.ID, "type", inv.Type, "created_by", requesterID)
	return inv, nil
}

// Edit re-targets a pending invitation: new temporary credential, bumped
// version (invalidating previously issued tokens), refreshed expiry and
// a fresh activation email. Expired invitations cannot be revived.
func (s *invitationService) Edit(ctx context.Context, requesterID, invitationID int32, newEmail string) (*domain.Invitation, error) {
	inv, err := s.store.Invitations().GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "invitation not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load invitation", err)
	}
	if inv.CreatedBy != requesterID {
		return nil, domain.E(domain.CodeForbidden, "only the creator may edit an invitation")
	}
	if inv.Status == domain.InvitationStatusAccepted {
		return nil, domain.E(domain.CodeConflict, "invitation has already been accepted")
	}
	if inv.Expired(time.Now()) {
		return nil, domain.E(domain.CodeExpired, "invitation has expired; create a new one")
	}

	if newEmail != "" && newEmail != inv.Email {
		if _, err := s.store.Users().GetByEmail(ctx, newEmail); err == nil {
			return nil, domain.E(domain.CodeConflict, "a user with this email already exists")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Wrap(domain.CodeInternal, "failed to check existing user", err)
		}
		if _, err := s.store.Invitations().GetActiveByEmail(ctx, newEmail, time.Now()); err == nil {
			return nil, domain.E(domain.CodeConflict, "an active invitation already exists for this email")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Wrap(domain.CodeInternal, "failed to check existing invitation", err)
		}
		inv.Email = newEmail
	}

	tempPassword, hash, err := s.newTempCredential()
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to generate temporary credential", err)
	}
	inv.Data.TempPasswordHash = hash
	inv.Version++
	inv.ExpiresAt = time.Now().Add(s.inviteTTL)

	if err := s.store.Invitations().Update(ctx, inv); err != nil {
		// The partial unique index on pending invitations can still fire
		// under a concurrent create for the same email.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.E(domain.CodeConflict, "an active invitation already exists for this email")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to update invitation", err)
	}

	if err := s.sendActivation(ctx, inv, tempPassword); err != nil {
		logger.Warn("invitation updated but activation email failed",
			"invitation_id", inv.ID, "email", inv.Email, "error", err)
		return inv, err
	}

	logger.Info("invitation edited", "invitation_id", inv.ID, "version", inv.Version)
	return inv, nil
}

func (s *invitationService) Delete(ctx context.Context, requesterID, invitationID int32) error {
	inv, err := s.store.Invitations().GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeNotFound, "invitation not found")
		}
		return domain.Wrap(domain.CodeInternal, "failed to load invitation", err)
	}
	if inv.CreatedBy != requesterID {
		return domain.E(domain.CodeForbidden, "only the creator may delete an invitation")
	}

	deleted, err := s.store.Invitations().Delete(ctx, inv.ID, inv.Version)
	if err != nil {
		return domain.Wrap(domain.CodeInternal, "failed to delete invitation", err)
	}
	if !deleted {
		return domain.E(domain.CodeNotFound, "invitation not found")
	}
	return nil
}

func (s *invitationService) List(ctx context.Context, requesterID, page, limit int32) ([]domain.Invitation, int32, error) {
	invs, total, err := s.store.Invitations().ListByCreator(ctx, requesterID, page, limit)
	if err != nil {
		return nil, 0, domain.Wrap(domain.CodeInternal, "failed to list invitations", err)
	}
	return invs, total, nil
}

// Verify resolves a token to its pending invitation without consuming
// it. The same validity rules as Accept apply.
func (s *invitationService) Verify(ctx context.Context, token string) (*domain.Invitation, error) {
	claims, err := s.verifyToken(token)
	if err != nil {
		return nil, err
	}

	inv, err := s.store.Invitations().GetByID(ctx, claims.InvitationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "invitation not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load invitation", err)
	}
	if err := s.checkConsumable(inv, claims); err != nil {
		return nil, err
	}
	return inv, nil
}

// Accept consumes the invitation and provisions the new identity. The
// profile, user, organizational link and invitation deletion all commit
// in one transaction; any failure leaves the invitation PENDING and no
// partial rows behind. A second acceptance of the same token finds the
// row gone and reports NOT_FOUND.
func (s *invitationService) Accept(ctx context.Context, token string) (*ProvisionedIdentity, error) {
	claims, err := s.verifyToken(token)
	if err != nil {
		return nil, err
	}

	var identity *ProvisionedIdentity
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		inv, err := tx.Invitations().GetByIDForUpdate(ctx, claims.InvitationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.E(domain.CodeNotFound, "invitation not found")
			}
			return domain.Wrap(domain.CodeInternal, "failed to load invitation", err)
		}
		if err := s.checkConsumable(inv, claims); err != nil {
			return err
		}

		switch inv.Type {
		case domain.InvitationTypeCreateAcademy:
			identity, err = s.provisionAdmin(ctx, tx, inv)
		case domain.InvitationTypeBatchCoach:
			identity, err = s.provisionCoach(ctx, tx, inv)
		case domain.InvitationTypeBatchStudent:
			identity, err = s.provisionStudent(ctx, tx, inv)
		default:
			err = domain.E(domain.CodeBadRequest, "unknown invitation type")
		}
		if err != nil {
			return err
		}

		deleted, err := tx.Invitations().Delete(ctx, inv.ID, inv.Version)
		if err != nil {
			return domain.Wrap(domain.CodeInternal, "failed to consume invitation", err)
		}
		if !deleted {
			// Concurrent acceptance or edit won the race.
			return domain.E(domain.CodeNotFound, "invitation not found")
		}
		return nil
	})
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to accept invitation", err)
	}

	logger.Info("invitation accepted", "invitation_id", claims.InvitationID,
		"user_id", identity.UserID, "role", identity.Role)
	return identity, nil
}

func (s *invitationService) validateCreate(in CreateInvitationInput) error {
	if !domain.ValidInvitationType(in.Type) {
		return domain.E(domain.CodeBadRequest, "unknown invitation type")
	}
	if in.Email == "" {
		return domain.E(domain.CodeBadRequest, "email is required")
	}
	if in.FirstName == "" {
		return domain.E(domain.CodeBadRequest, "first name is required")
	}
	switch in.Type {
	case domain.InvitationTypeCreateAcademy:
		if in.AcademyName == "" {
			return domain.E(domain.CodeBadRequest, "academy name is required")
		}
	case domain.InvitationTypeBatchCoach, domain.InvitationTypeBatchStudent:
		if in.BatchID == 0 {
			return domain.E(domain.CodeBadRequest, "batch id is required")
		}
	}
	return nil
}

func (s *invitationService) authorizeCreate(ctx context.Context, requesterID int32, requesterRole domain.Role, in CreateInvitationInput) error {
	switch in.Type {
	case domain.InvitationTypeCreateAcademy:
		if requesterRole != domain.RoleSuperAdmin {
			return domain.E(domain.CodeForbidden, "only a super admin may invite academy admins")
		}
		return nil

	case domain.InvitationTypeBatchCoach:
		if requesterRole != domain.RoleSuperAdmin && requesterRole != domain.RoleAdmin {
			return domain.E(domain.CodeForbidden, "only a super admin or academy admin may invite coaches")
		}
		batch, err := s.resolveBatch(ctx, in.BatchID)
		if err != nil {
			return err
		}
		if requesterRole == domain.RoleAdmin {
			ok, err := s.store.Users().IsAcademyAdmin(ctx, requesterID, batch.AcademyID)
			if err != nil {
				return domain.Wrap(domain.CodeInternal, "failed to check academy membership", err)
			}
			if !ok {
				return domain.E(domain.CodeForbidden, "batch belongs to another academy")
			}
		}
		return nil

	case domain.InvitationTypeBatchStudent:
		if requesterRole != domain.RoleSuperAdmin && requesterRole != domain.RoleCoach {
			return domain.E(domain.CodeForbidden, "only a super admin or coach may invite students")
		}
		if _, err := s.resolveBatch(ctx, in.BatchID); err != nil {
			return err
		}
		if requesterRole == domain.RoleCoach {
			ok, err := s.store.Batches().IsCoach(ctx, in.BatchID, requesterID)
			if err != nil {
				return domain.Wrap(domain.CodeInternal, "failed to check batch membership", err)
			}
			if !ok {
				return domain.E(domain.CodeForbidden, "you do not coach this batch")
			}
		}
		return nil
	}
	return domain.E(domain.CodeBadRequest, "unknown invitation type")
}

func (s *invitationService) resolveBatch(ctx context.Context, batchID int32) (*domain.Batch, error) {
	batch, err := s.store.Batches().GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "batch not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load batch", err)
	}
	return batch, nil
}

func (s *invitationService) verifyToken(token string) (*security.Claims, error) {
	claims, err := s.tokens.Verify(security.PurposeInvitation, token)
	if err != nil {
		if errors.Is(err, security.ErrExpiredToken) {
			return nil, domain.E(domain.CodeExpired, "invitation link has expired")
		}
		return nil, domain.E(domain.CodeBadRequest, "invalid invitation link")
	}
	return claims, nil
}

// checkConsumable holds the shared validity rules for Verify and Accept.
func (s *invitationService) checkConsumable(inv *domain.Invitation, claims *security.Claims) error {
	if inv.Status == domain.InvitationStatusAccepted {
		return domain.E(domain.CodeConflict, "invitation has already been accepted")
	}
	if claims.Version != inv.Version {
		return domain.E(domain.CodeVersionMismatch, "this invitation link has been superseded")
	}
	if inv.Expired(time.Now()) {
		return domain.E(domain.CodeExpired, "invitation has expired")
	}
	return nil
}

func (s *invitationService) newTempCredential() (plaintext, hash string, err error) {
	plaintext, err = security.GenerateTempPassword()
	if err != nil {
		return "", "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return plaintext, string(hashed), nil
}

func (s *invitationService) sendActivation(ctx context.Context, inv *domain.Invitation, tempPassword string) error {
	ttl := time.Until(inv.ExpiresAt)
	token, err := s.tokens.IssueInvitationToken(inv.ID, inv.Version, ttl)
	if err != nil {
		return domain.Wrap(domain.CodeInternal, "failed to issue invitation token", err)
	}
	link := fmt.Sprintf("%s/accept-invite?type=%s&name=%s&token=%s",
		s.frontendURL, inv.Type, url.QueryEscape(inv.Data.FullName()), token)
	return s.email.SendInvitation(ctx, inv.Type, inv.Email, inv.Data.FullName(), tempPassword, link)
}

func (s *invitationService) provisionAdmin(ctx context.Context, tx repository.Store, inv *domain.Invitation) (*ProvisionedIdentity, error) {
	user, err := s.provisionUser(ctx, tx, inv, domain.RoleAdmin, domain.SeqAdmin, domain.CodePrefixAdmin, true)
	if err != nil {
		return nil, err
	}

	academy := &domain.Academy{
		Name:   inv.Data.AcademyName,
		Status: domain.AcademyStatusActive,
	}
	if err := tx.Academies().Create(ctx, academy); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to create academy", err)
	}
	if err := tx.Users().AddAcademyAdmin(ctx, user.ID, academy.ID); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to link academy admin", err)
	}

	return &ProvisionedIdentity{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Code:      user.Code,
		AcademyID: &academy.ID,
	}, nil
}

func (s *invitationService) provisionCoach(ctx context.Context, tx repository.Store, inv *domain.Invitation) (*ProvisionedIdentity, error) {
	batch, err := tx.Batches().GetByID(ctx, inv.Data.BatchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "batch not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load batch", err)
	}

	user, err := s.provisionUser(ctx, tx, inv, domain.RoleCoach, domain.SeqCoach, domain.CodePrefixCoach, false)
	if err != nil {
		return nil, err
	}
	if err := tx.Users().AddBatchCoach(ctx, user.ID, batch.ID); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to link batch coach", err)
	}

	return &ProvisionedIdentity{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Code:    user.Code,
		BatchID: &batch.ID,
	}, nil
}

func (s *invitationService) provisionStudent(ctx context.Context, tx repository.Store, inv *domain.Invitation) (*ProvisionedIdentity, error) {
	// Lock the batch row so the capacity check and the membership insert
	// are serialized against concurrent acceptances.
	batch, err := tx.Batches().GetByIDForUpdate(ctx, inv.Data.BatchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "batch not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load batch", err)
	}

	// Re-check the email at consume time; a user may have been created
	// since the invitation went out.
	if _, err := tx.Users().GetByEmail(ctx, inv.Email); err == nil {
		return nil, domain.E(domain.CodeConflict, "a user with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Wrap(domain.CodeInternal, "failed to check existing user", err)
	}

	count, err := tx.Users().CountBatchStudents(ctx, batch.ID)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to count batch students", err)
	}
	if count >= batch.StudentCapacity {
		return nil, domain.E(domain.CodeConflict, "batch is at full capacity")
	}

	user, err := s.provisionUser(ctx, tx, inv, domain.RoleStudent, domain.SeqStudent, domain.CodePrefixStudent, false)
	if err != nil {
		return nil, err
	}
	if err := tx.Users().AddBatchStudent(ctx, user.ID, batch.ID); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to link batch student", err)
	}

	return &ProvisionedIdentity{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Code:    user.Code,
		BatchID: &batch.ID,
	}, nil
}

// provisionUser creates the profile and user rows inside the caller's
// transaction. hasPassword marks academy admins, who keep the delivered
// credential as their password; coaches and students must change theirs
// on first login.
func (s *invitationService) provisionUser(ctx context.Context, tx repository.Store, inv *domain.Invitation, role domain.Role, seqName, codePrefix string, hasPassword bool) (*domain.User, error) {
	profile := &domain.Profile{
		FirstName: inv.Data.FirstName,
		LastName:  inv.Data.LastName,
	}
	if err := tx.Users().CreateProfile(ctx, profile); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to create profile", err)
	}

	seq, err := tx.Sequences().Next(ctx, seqName)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to allocate user code", err)
	}

	user := &domain.User{
		Email:        inv.Email,
		Role:         role,
		SubRole:      inv.Data.SubRole,
		PasswordHash: inv.Data.TempPasswordHash,
		HasPassword:  hasPassword,
		Code:         domain.SequentialCode(codePrefix, seq),
		ProfileID:    profile.ID,
		Profile:      profile,
	}
	if err := tx.Users().Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.E(domain.CodeConflict, "a user with this email already exists")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to create user", err)
	}
	return user, nil
}
