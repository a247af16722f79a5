package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatKind string

const (
	ChatMessage ChatKind = "MSG"
	ChatFile    ChatKind = "FILE"
	ChatAsk     ChatKind = "ASK"
)

type ChatRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null;index"`

	Secure bool     `gorm:"column:is_secure;not null;default:false"`
	Kind   ChatKind `gorm:"type:chat_kind;not null"`

	// Query is only set on assistant records.
	Query   *string `gorm:"type:text"`
	Payload string  `gorm:"type:text;not null"`

	CreatedAt time.Time
}
