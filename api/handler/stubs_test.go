package handler

import (
	"context"

	"legalplatform/internal/entity"
	"legalplatform/internal/service"

	"github.com/google/uuid"
)

type identityServiceStub struct {
	RegisterLocalPersonFunc func(ctx context.Context, input service.RegisterLocalPersonInput) (*service.RegisterResult, error)
	RegisterLawyerFunc      func(ctx context.Context, input service.RegisterLawyerInput) (*service.RegisterResult, error)
	VerifyOtpFunc           func(ctx context.Context, email string, code string) (*service.VerifyResult, error)
	ResendOtpFunc           func(ctx context.Context, email string) (string, error)
	LoginFunc               func(ctx context.Context, input service.LoginInput) (*service.LoginResult, error)
	GetAccountFunc          func(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
}

func (s *identityServiceStub) RegisterLocalPerson(ctx context.Context, input service.RegisterLocalPersonInput) (*service.RegisterResult, error) {
	return s.RegisterLocalPersonFunc(ctx, input)
}

func (s *identityServiceStub) RegisterLawyer(ctx context.Context, input service.RegisterLawyerInput) (*service.RegisterResult, error) {
	return s.RegisterLawyerFunc(ctx, input)
}

func (s *identityServiceStub) VerifyOtp(ctx context.Context, email string, code string) (*service.VerifyResult, error) {
	return s.VerifyOtpFunc(ctx, email, code)
}

func (s *identityServiceStub) ResendOtp(ctx context.Context, email string) (string, error) {
	return s.ResendOtpFunc(ctx, email)
}

func (s *identityServiceStub) Login(ctx context.Context, input service.LoginInput) (*service.LoginResult, error) {
	return s.LoginFunc(ctx, input)
}

func (s *identityServiceStub) GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	return s.GetAccountFunc(ctx, accountID)
}

type reviewerStub struct {
	ApproveLawyerFunc func(ctx context.Context, accountID uuid.UUID) error
	RejectLawyerFunc  func(ctx context.Context, accountID uuid.UUID, reason string) error
	ListPendingFunc   func(ctx context.Context) ([]entity.LawyerProfile, error)
}

func (s *reviewerStub) ApproveLawyer(ctx context.Context, accountID uuid.UUID) error {
	return s.ApproveLawyerFunc(ctx, accountID)
}

func (s *reviewerStub) RejectLawyer(ctx context.Context, accountID uuid.UUID, reason string) error {
	return s.RejectLawyerFunc(ctx, accountID, reason)
}

func (s *reviewerStub) ListPending(ctx context.Context) ([]entity.LawyerProfile, error) {
	return s.ListPendingFunc(ctx)
}

type documentServiceStub struct {
	StoreDocumentFunc func(ctx context.Context, ownerID uuid.UUID, fileName string, contentType string, content []byte) (*entity.Document, error)
	ListDocumentsFunc func(ctx context.Context, ownerID uuid.UUID) ([]entity.Document, error)
	FetchDocumentFunc func(ctx context.Context, requesterID uuid.UUID, documentID uuid.UUID) (*service.DocumentContent, error)
}

func (s *documentServiceStub) StoreDocument(ctx context.Context, ownerID uuid.UUID, fileName string, contentType string, content []byte) (*entity.Document, error) {
	return s.StoreDocumentFunc(ctx, ownerID, fileName, contentType, content)
}

func (s *documentServiceStub) ListDocuments(ctx context.Context, ownerID uuid.UUID) ([]entity.Document, error) {
	return s.ListDocumentsFunc(ctx, ownerID)
}

func (s *documentServiceStub) FetchDocument(ctx context.Context, requesterID uuid.UUID, documentID uuid.UUID) (*service.DocumentContent, error) {
	return s.FetchDocumentFunc(ctx, requesterID, documentID)
}

type chatServiceStub struct {
	AskAssistantFunc           func(ctx context.Context, senderID uuid.UUID, query string) (string, error)
	SendSecureMessageFunc      func(ctx context.Context, conversationID uuid.UUID, senderID uuid.UUID, message string) (uuid.UUID, error)
	SendSecureFileFunc         func(ctx context.Context, conversationID uuid.UUID, senderID uuid.UUID, fileName string, contentType string, data []byte) (uuid.UUID, error)
	ReadSecureConversationFunc func(ctx context.Context, conversationID uuid.UUID, requesterID uuid.UUID) ([]service.SecureMessage, error)
}

func (s *chatServiceStub) AskAssistant(ctx context.Context, senderID uuid.UUID, query string) (string, error) {
	return s.AskAssistantFunc(ctx, senderID, query)
}

func (s *chatServiceStub) SendSecureMessage(ctx context.Context, conversationID uuid.UUID, senderID uuid.UUID, message string) (uuid.UUID, error) {
	return s.SendSecureMessageFunc(ctx, conversationID, senderID, message)
}

func (s *chatServiceStub) SendSecureFile(ctx context.Context, conversationID uuid.UUID, senderID uuid.UUID, fileName string, contentType string, data []byte) (uuid.UUID, error) {
	return s.SendSecureFileFunc(ctx, conversationID, senderID, fileName, contentType, data)
}

func (s *chatServiceStub) ReadSecureConversation(ctx context.Context, conversationID uuid.UUID, requesterID uuid.UUID) ([]service.SecureMessage, error) {
	return s.ReadSecureConversationFunc(ctx, conversationID, requesterID)
}
