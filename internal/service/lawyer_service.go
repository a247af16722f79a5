package service

import (
	"context"
	"fmt"

	"legalplatform/internal/entity"
	"legalplatform/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LawyerService serves the lawyer directory and the profile owner's edits.
type LawyerService struct {
	lawyers repository.LawyerProfileRepository
	audit   repository.AuditLogRepository
	log     logrus.FieldLogger
}

func NewLawyerService(lawyers repository.LawyerProfileRepository, audit repository.AuditLogRepository, logger logrus.FieldLogger) *LawyerService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LawyerService{
		lawyers: lawyers,
		audit:   audit,
		log:     logger.WithField("service", "lawyer"),
	}
}

func (s *LawyerService) ListApproved(ctx context.Context) ([]entity.LawyerProfile, error) {
	profiles, err := s.lawyers.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("lawyer.ListApproved: %w", err)
	}
	return profiles, nil
}

func (s *LawyerService) ListPending(ctx context.Context) ([]entity.LawyerProfile, error) {
	profiles, err := s.lawyers.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("lawyer.ListPending: %w", err)
	}
	return profiles, nil
}

// UpdateProfile replaces the editable fields. Status, verification and the
// rejection reason are only changed by an admin.
func (s *LawyerService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input LawyerProfileInput) (*entity.LawyerProfile, error) {
	if blank(input.FullName) {
		return nil, ErrInvalidInput
	}
	profile, err := s.lawyers.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("lawyer.UpdateProfile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	applyProfileInput(profile, input)
	if err := s.lawyers.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("lawyer.UpdateProfile: %w", err)
	}

	if s.audit != nil {
		if err := s.audit.Log(ctx, &entity.AuditLog{AccountID: &accountID, Action: entity.AuditProfileUpdated}); err != nil {
			s.log.WithError(err).Warn("audit log not written")
		}
	}
	return profile, nil
}
