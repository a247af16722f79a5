package service

import (
	"time"

	"legalplatform/internal/entity"

	"github.com/google/uuid"
)

type DocumentContent struct {
	FileName    string
	ContentType string
	Data        []byte
}

// FileAttachment is the envelope encrypted as one unit for FILE chat records.
type FileAttachment struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

type SecurePayload struct {
	Kind    entity.ChatKind
	Message string
	File    *FileAttachment
}

type SecureMessage struct {
	ID        uuid.UUID
	SenderID  uuid.UUID
	Kind      entity.ChatKind
	CreatedAt time.Time
	// Message is the text of a MSG record or the file name of a FILE record.
	Message string
	File    *FileAttachment
}
