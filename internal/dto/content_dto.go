package dto

import (
	"time"

	"legalplatform/internal/entity"
	"legalplatform/internal/service"
)

type DocumentResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

func DocumentResponseFromEntity(document *entity.Document) DocumentResponse {
	return DocumentResponse{
		ID:          document.ID.String(),
		FileName:    document.FileName,
		ContentType: document.ContentType,
		SizeBytes:   document.SizeBytes,
		CreatedAt:   document.CreatedAt,
	}
}

func DocumentResponsesFromEntities(documents []entity.Document) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(documents))
	for i := range documents {
		responses = append(responses, DocumentResponseFromEntity(&documents[i]))
	}
	return responses
}

type AskRequest struct {
	Query string `json:"query" validate:"required,max=4000"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type SecureMessageRequest struct {
	Message string `json:"message" validate:"required,max=20000"`
}

type ConversationResponse struct {
	ConversationID string `json:"conversationId"`
}

type SecureFileResponse struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	// Data is base64 encoded by encoding/json.
	Data []byte `json:"data"`
}

type SecureMessageResponse struct {
	ID        string              `json:"id"`
	SenderID  string              `json:"senderId"`
	Kind      string              `json:"kind"`
	Message   string              `json:"message"`
	File      *SecureFileResponse `json:"file,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

func SecureMessageResponsesFromService(messages []service.SecureMessage) []SecureMessageResponse {
	responses := make([]SecureMessageResponse, 0, len(messages))
	for _, message := range messages {
		response := SecureMessageResponse{
			ID:        message.ID.String(),
			SenderID:  message.SenderID.String(),
			Kind:      string(message.Kind),
			Message:   message.Message,
			CreatedAt: message.CreatedAt,
		}
		if message.File != nil {
			response.File = &SecureFileResponse{
				Name:        message.File.Name,
				ContentType: message.File.ContentType,
				Data:        message.File.Data,
			}
		}
		responses = append(responses, response)
	}
	return responses
}
