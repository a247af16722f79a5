package service

import (
	"context"
	"time"

	"legalplatform/internal/entity"

	"golang.org/x/crypto/bcrypt"
)

type IdentityConfig struct {
	AccessTokenTTL time.Duration
}

// Notifier delivers lifecycle emails. Callers treat every failure as non-fatal.
type Notifier interface {
	SendOtp(ctx context.Context, email string, code string) error
	SendApproval(ctx context.Context, email string) error
	SendRejection(ctx context.Context, email string, reason string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type AccessTokenIssuer interface {
	IssueAccessToken(account entity.Account, ttl time.Duration) (string, time.Duration, error)
}

type CodeGenerator interface {
	Generate(now time.Time) (code string, expiresAt time.Time, err error)
}

type PayloadCipher interface {
	Encrypt(plaintext []byte) (ciphertext []byte, iv []byte, err error)
	Decrypt(ciphertext []byte, iv []byte) ([]byte, error)
	EncryptString(plaintext string) (string, error)
	DecryptString(token string) (string, error)
}

// BlobStore holds document ciphertext outside the database.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type Assistant interface {
	Ask(ctx context.Context, query string) (string, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
