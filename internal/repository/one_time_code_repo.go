package repository

import (
	"context"
	"errors"
	"time"

	"legalplatform/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OneTimeCodeRepository interface {
	Create(ctx context.Context, code *entity.OneTimeCode) error
	// FindActiveForAccount returns the most recently issued code that is
	// unused and unexpired at now.
	FindActiveForAccount(ctx context.Context, accountID uuid.UUID, now time.Time) (*entity.OneTimeCode, error)
	// MarkUsed flips used from false to true and reports whether this call did it.
	MarkUsed(ctx context.Context, id uuid.UUID) (bool, error)
}

type oneTimeCodeRepository struct {
	db *gorm.DB
}

func NewOneTimeCodeRepository(db *gorm.DB) OneTimeCodeRepository {
	return &oneTimeCodeRepository{db: db}
}

func (r *oneTimeCodeRepository) Create(ctx context.Context, code *entity.OneTimeCode) error {
	return conn(ctx, r.db).Create(code).Error
}

func (r *oneTimeCodeRepository) FindActiveForAccount(
	ctx context.Context,
	accountID uuid.UUID,
	now time.Time,
) (*entity.OneTimeCode, error) {

	var code entity.OneTimeCode
	err := conn(ctx, r.db).
		Where(`
			account_id = ? AND
			used = false AND
			expires_at > ?
		`, accountID, now).
		Order("created_at DESC").
		First(&code).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *oneTimeCodeRepository) MarkUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	result := conn(ctx, r.db).
		Model(&entity.OneTimeCode{}).
		Where("id = ? AND used = false", id).
		Update("used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
