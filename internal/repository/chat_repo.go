package repository

import (
	"context"

	"legalplatform/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository interface {
	Create(ctx context.Context, record *entity.ChatRecord) error
	// ListByConversation returns records oldest first. Records with the same
	// timestamp come back in insertion order.
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]entity.ChatRecord, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, record *entity.ChatRecord) error {
	return conn(ctx, r.db).Create(record).Error
}

func (r *chatRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]entity.ChatRecord, error) {
	var records []entity.ChatRecord
	err := conn(ctx, r.db).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, seq ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
