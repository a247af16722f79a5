package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"legalplatform/internal/entity"
	"legalplatform/internal/metrics"
	"legalplatform/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultContentType = "application/octet-stream"

// ContentService encrypts documents and secure chat payloads before they are
// persisted and decrypts them for the callers allowed to read them.
type ContentService struct {
	documents repository.DocumentRepository
	chats     repository.ChatRepository
	cipher    PayloadCipher
	blobs     BlobStore
	assistant Assistant
	clock     Clock
	metrics   *metrics.Recorder
	log       logrus.FieldLogger
}

func NewContentService(
	documents repository.DocumentRepository,
	chats repository.ChatRepository,
	cipher PayloadCipher,
	blobs BlobStore,
	assistant Assistant,
	clock Clock,
	recorder *metrics.Recorder,
	logger logrus.FieldLogger,
) *ContentService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ContentService{
		documents: documents,
		chats:     chats,
		cipher:    cipher,
		blobs:     blobs,
		assistant: assistant,
		clock:     clock,
		metrics:   recorder,
		log:       logger.WithField("service", "content"),
	}
}

// StoreDocument encrypts content and records its plaintext size.
func (s *ContentService) StoreDocument(
	ctx context.Context,
	ownerID uuid.UUID,
	fileName string,
	contentType string,
	content []byte,
) (document *entity.Document, err error) {
	defer func() { s.metrics.ContentEvent("store_document", outcome(err)) }()

	fileName = strings.TrimSpace(fileName)
	if ownerID == uuid.Nil || fileName == "" {
		return nil, ErrInvalidInput
	}
	if blank(contentType) {
		contentType = defaultContentType
	}

	ciphertext, iv, err := s.cipher.Encrypt(content)
	if err != nil {
		return nil, fmt.Errorf("content.StoreDocument: %w", err)
	}
	document = &entity.Document{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   int64(len(content)),
		Blob:        entity.EncryptedBlob{Ciphertext: ciphertext, IV: iv},
		CreatedAt:   s.now(),
	}

	if s.blobs != nil {
		key := fmt.Sprintf("documents/%s/%s", ownerID, document.ID)
		if err := s.blobs.Put(ctx, key, ciphertext); err != nil {
			return nil, fmt.Errorf("content.StoreDocument: %w", err)
		}
		document.Blob.Ciphertext = nil
		document.StorageKey = &key
	}

	if err := s.documents.Create(ctx, document); err != nil {
		if document.StorageKey != nil {
			if delErr := s.blobs.Delete(ctx, *document.StorageKey); delErr != nil {
				s.log.WithError(delErr).WithField("key", *document.StorageKey).Warn("orphaned blob not removed")
			}
		}
		return nil, fmt.Errorf("content.StoreDocument: %w", err)
	}
	return document, nil
}

func (s *ContentService) ListDocuments(ctx context.Context, ownerID uuid.UUID) ([]entity.Document, error) {
	documents, err := s.documents.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("content.ListDocuments: %w", err)
	}
	return documents, nil
}

// FetchDocument returns the decrypted document to its owner only.
func (s *ContentService) FetchDocument(ctx context.Context, requesterID uuid.UUID, documentID uuid.UUID) (content *DocumentContent, err error) {
	defer func() { s.metrics.ContentEvent("fetch_document", outcome(err)) }()

	document, err := s.documents.FindByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("content.FetchDocument: %w", err)
	}
	if document == nil {
		return nil, ErrNotFound
	}
	if document.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	ciphertext := document.Blob.Ciphertext
	if document.StorageKey != nil {
		if s.blobs == nil {
			return nil, fmt.Errorf("content.FetchDocument: document %s is in object storage but no blob store is configured", document.ID)
		}
		ciphertext, err = s.blobs.Get(ctx, *document.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("content.FetchDocument: %w", err)
		}
	}

	data, err := s.cipher.Decrypt(ciphertext, document.Blob.IV)
	if err != nil {
		s.log.WithError(err).WithField("document_id", document.ID).Error("document integrity check failed")
		return nil, fmt.Errorf("content.FetchDocument: %w", ErrDecryptionFailed)
	}
	return &DocumentContent{
		FileName:    document.FileName,
		ContentType: document.ContentType,
		Data:        data,
	}, nil
}

// AppendSecureChat encrypts the payload and appends it to the conversation.
// A nil conversationID starts a new conversation whose id is the id of this
// first record.
func (s *ContentService) AppendSecureChat(
	ctx context.Context,
	conversationID uuid.UUID,
	senderID uuid.UUID,
	payload SecurePayload,
) (id uuid.UUID, err error) {
	defer func() { s.metrics.ContentEvent("append_secure_chat", outcome(err)) }()

	if senderID == uuid.Nil {
		return uuid.Nil, ErrInvalidInput
	}
	plaintext, err := encodePayload(payload)
	if err != nil {
		return uuid.Nil, err
	}
	token, err := s.cipher.EncryptString(plaintext)
	if err != nil {
		return uuid.Nil, fmt.Errorf("content.AppendSecureChat: %w", err)
	}

	record := &entity.ChatRecord{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Secure:         true,
		Kind:           payload.Kind,
		Payload:        token,
		CreatedAt:      s.now(),
	}
	if record.ConversationID == uuid.Nil {
		record.ConversationID = record.ID
	}
	if err := s.chats.Create(ctx, record); err != nil {
		return uuid.Nil, fmt.Errorf("content.AppendSecureChat: %w", err)
	}
	return record.ConversationID, nil
}

func (s *ContentService) SendSecureMessage(ctx context.Context, conversationID uuid.UUID, senderID uuid.UUID, message string) (uuid.UUID, error) {
	return s.AppendSecureChat(ctx, conversationID, senderID, SecurePayload{Kind: entity.ChatMessage, Message: message})
}

func (s *ContentService) SendSecureFile(
	ctx context.Context,
	conversationID uuid.UUID,
	senderID uuid.UUID,
	fileName string,
	contentType string,
	data []byte,
) (uuid.UUID, error) {
	if blank(contentType) {
		contentType = defaultContentType
	}
	return s.AppendSecureChat(ctx, conversationID, senderID, SecurePayload{
		Kind: entity.ChatFile,
		File: &FileAttachment{Name: strings.TrimSpace(fileName), ContentType: contentType, Data: data},
	})
}

// ReadSecureConversation decrypts the secure records of a conversation in
// creation order. Any account may read any conversation id it knows.
// TODO: restrict reads to conversation participants once product defines who they are.
func (s *ContentService) ReadSecureConversation(ctx context.Context, conversationID uuid.UUID, requesterID uuid.UUID) (messages []SecureMessage, err error) {
	defer func() { s.metrics.ContentEvent("read_secure_conversation", outcome(err)) }()

	records, err := s.chats.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("content.ReadSecureConversation: %w", err)
	}

	messages = make([]SecureMessage, 0, len(records))
	for _, record := range records {
		if !record.Secure {
			continue
		}
		message, err := s.decodeRecord(record)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"record_id":    record.ID,
				"requester_id": requesterID,
			}).Error("chat record integrity check failed")
			return nil, fmt.Errorf("content.ReadSecureConversation: %w", err)
		}
		messages = append(messages, message)
	}
	return messages, nil
}

// AskAssistant forwards a question to the legal assistant and keeps the
// exchange as a non-secure record.
func (s *ContentService) AskAssistant(ctx context.Context, senderID uuid.UUID, query string) (answer string, err error) {
	defer func() { s.metrics.ContentEvent("ask_assistant", outcome(err)) }()

	if senderID == uuid.Nil || blank(query) {
		return "", ErrInvalidInput
	}
	if s.assistant == nil {
		return "", ErrAssistantUnavailable
	}
	answer, err = s.assistant.Ask(ctx, query)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}

	id := uuid.New()
	record := &entity.ChatRecord{
		ID:             id,
		ConversationID: id,
		SenderID:       senderID,
		Kind:           entity.ChatAsk,
		Query:          &query,
		Payload:        answer,
		CreatedAt:      s.now(),
	}
	if err := s.chats.Create(ctx, record); err != nil {
		return "", fmt.Errorf("content.AskAssistant: %w", err)
	}
	return answer, nil
}

func encodePayload(payload SecurePayload) (string, error) {
	switch payload.Kind {
	case entity.ChatMessage:
		if blank(payload.Message) {
			return "", ErrInvalidInput
		}
		return payload.Message, nil
	case entity.ChatFile:
		if payload.File == nil || blank(payload.File.Name) {
			return "", ErrInvalidInput
		}
		envelope, err := json.Marshal(payload.File)
		if err != nil {
			return "", fmt.Errorf("content.encodePayload: %w", err)
		}
		return string(envelope), nil
	case entity.ChatAsk:
		return "", fmt.Errorf("%w: assistant records are not secure", ErrInvalidInput)
	}
	return "", fmt.Errorf("%w: unknown chat kind %q", ErrInvalidInput, payload.Kind)
}

func (s *ContentService) decodeRecord(record entity.ChatRecord) (SecureMessage, error) {
	plaintext, err := s.cipher.DecryptString(record.Payload)
	if err != nil {
		return SecureMessage{}, err
	}
	message := SecureMessage{
		ID:        record.ID,
		SenderID:  record.SenderID,
		Kind:      record.Kind,
		CreatedAt: record.CreatedAt,
	}
	switch record.Kind {
	case entity.ChatMessage:
		message.Message = plaintext
	case entity.ChatFile:
		var file FileAttachment
		if err := json.Unmarshal([]byte(plaintext), &file); err != nil {
			return SecureMessage{}, errors.Join(ErrDecryptionFailed, err)
		}
		message.Message = file.Name
		message.File = &file
	default:
		return SecureMessage{}, fmt.Errorf("unexpected secure record kind %q", record.Kind)
	}
	return message, nil
}

func (s *ContentService) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock.Now()
}
