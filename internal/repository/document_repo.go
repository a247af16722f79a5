package repository

import (
	"context"
	"errors"

	"legalplatform/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	// ListByOwner returns metadata only; the ciphertext column is not loaded.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Document, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, document *entity.Document) error {
	return conn(ctx, r.db).Create(document).Error
}

func (r *documentRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Document, error) {
	var documents []entity.Document
	err := conn(ctx, r.db).
		Omit("ciphertext").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var document entity.Document
	err := conn(ctx, r.db).Where("id = ?", id).First(&document).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &document, nil
}
