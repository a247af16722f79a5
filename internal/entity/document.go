package entity

import (
	"time"

	"github.com/google/uuid"
)

// EncryptedBlob is ciphertext together with the IV it was sealed with.
type EncryptedBlob struct {
	Ciphertext []byte `gorm:"type:bytea"`
	IV         []byte `gorm:"column:iv;type:bytea;not null"`
}

type Document struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`

	FileName    string `gorm:"type:varchar(255);not null"`
	ContentType string `gorm:"type:varchar(255);not null"`
	SizeBytes   int64  `gorm:"not null"`

	Blob       EncryptedBlob `gorm:"embedded"`
	StorageKey *string       `gorm:"type:text"`

	CreatedAt time.Time
}
