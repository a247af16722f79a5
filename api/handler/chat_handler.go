package handler

import (
	"context"
	"net/http"
	"strings"

	"legalplatform/internal/dto"
	"legalplatform/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ChatService interface {
	AskAssistant(ctx context.Context, senderID uuid.UUID, query string) (string, error)
	SendSecureMessage(ctx context.Context, conversationID uuid.UUID, senderID uuid.UUID, message string) (uuid.UUID, error)
	SendSecureFile(ctx context.Context, conversationID uuid.UUID, senderID uuid.UUID, fileName string, contentType string, data []byte) (uuid.UUID, error)
	ReadSecureConversation(ctx context.Context, conversationID uuid.UUID, requesterID uuid.UUID) ([]service.SecureMessage, error)
}

type ChatHandler struct {
	Service        ChatService
	Validate       *validator.Validate
	MaxUploadBytes int64
}

func NewChatHandler(svc ChatService, validate *validator.Validate, maxUploadBytes int64) *ChatHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &ChatHandler{Service: svc, Validate: validate, MaxUploadBytes: maxUploadBytes}
}

func (h *ChatHandler) Ask(c echo.Context) error {
	senderID, ok := currentAccountID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errUnauthorized)
	}
	var req dto.AskRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	answer, err := h.Service.AskAssistant(c.Request().Context(), senderID, req.Query)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AskResponse{Answer: answer})
}

// SendMessage appends to the conversation named by ?conversation_id, or
// starts a new one when it is absent.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	senderID, ok := currentAccountID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errUnauthorized)
	}
	conversationID, err := conversationParam(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.SecureMessageRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	id, err := h.Service.SendSecureMessage(c.Request().Context(), conversationID, senderID, req.Message)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.ConversationResponse{ConversationID: id.String()})
}

func (h *ChatHandler) SendFile(c echo.Context) error {
	senderID, ok := currentAccountID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errUnauthorized)
	}
	limitRequestBody(c, h.MaxUploadBytes)
	conversationID, err := conversationParam(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	upload, err := readUpload(c, "file", h.MaxUploadBytes)
	if err != nil {
		return writeUploadError(c, err)
	}
	id, err := h.Service.SendSecureFile(c.Request().Context(), conversationID, senderID, upload.name, upload.contentType, upload.data)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.ConversationResponse{ConversationID: id.String()})
}

func (h *ChatHandler) ReadConversation(c echo.Context) error {
	requesterID, ok := currentAccountID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errUnauthorized)
	}
	conversationID, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	messages, err := h.Service.ReadSecureConversation(c.Request().Context(), conversationID, requesterID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.SecureMessageResponsesFromService(messages))
}

// conversationParam reads conversation_id from the query or a form field.
// Absent means uuid.Nil.
func conversationParam(c echo.Context) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.QueryParam("conversation_id"))
	if raw == "" {
		raw = strings.TrimSpace(c.FormValue("conversation_id"))
	}
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errInvalidConversation
	}
	return id, nil
}
