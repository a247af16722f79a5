package repository

import (
	"context"
	"errors"

	"legalplatform/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	// FindByID loads the lawyer profile along with the account.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	// FindByIDForUpdate and FindByEmailForUpdate lock the row until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByEmailForUpdate(ctx context.Context, email string) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	return translate(conn(ctx, r.db).Create(account).Error)
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return r.first(conn(ctx, r.db).Preload("LawyerProfile").Where("id = ?", id))
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.first(conn(ctx, r.db).Where("email = ?", email))
}

func (r *accountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return r.first(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

func (r *accountRepository) FindByEmailForUpdate(ctx context.Context, email string) (*entity.Account, error) {
	return r.first(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).Where("email = ?", email))
}

func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Save(account).Error)
}

func (r *accountRepository) first(query *gorm.DB) (*entity.Account, error) {
	var account entity.Account
	err := query.First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
