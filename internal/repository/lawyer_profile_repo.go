package repository

import (
	"context"
	"errors"

	"legalplatform/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LawyerProfileRepository interface {
	Create(ctx context.Context, profile *entity.LawyerProfile) error
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.LawyerProfile, error)
	ListApproved(ctx context.Context) ([]entity.LawyerProfile, error)
	ListPending(ctx context.Context) ([]entity.LawyerProfile, error)
	Update(ctx context.Context, profile *entity.LawyerProfile) error
}

type lawyerProfileRepository struct {
	db *gorm.DB
}

func NewLawyerProfileRepository(db *gorm.DB) LawyerProfileRepository {
	return &lawyerProfileRepository{db: db}
}

func (r *lawyerProfileRepository) Create(ctx context.Context, profile *entity.LawyerProfile) error {
	return translate(conn(ctx, r.db).Create(profile).Error)
}

func (r *lawyerProfileRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.LawyerProfile, error) {
	var profile entity.LawyerProfile
	err := conn(ctx, r.db).
		Where("account_id = ?", accountID).
		First(&profile).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *lawyerProfileRepository) ListApproved(ctx context.Context) ([]entity.LawyerProfile, error) {
	return r.listByStatus(ctx, entity.LawyerApproved, "full_name ASC")
}

func (r *lawyerProfileRepository) ListPending(ctx context.Context) ([]entity.LawyerProfile, error) {
	return r.listByStatus(ctx, entity.LawyerPending, "created_at ASC")
}

func (r *lawyerProfileRepository) Update(ctx context.Context, profile *entity.LawyerProfile) error {
	return conn(ctx, r.db).Save(profile).Error
}

func (r *lawyerProfileRepository) listByStatus(ctx context.Context, status entity.LawyerStatus, order string) ([]entity.LawyerProfile, error) {
	var profiles []entity.LawyerProfile
	err := conn(ctx, r.db).
		Where("status = ?", status).
		Order(order).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
