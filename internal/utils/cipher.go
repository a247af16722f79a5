package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrDecryptionFailed = errors.New("decryption failed")

const tokenSeparator = ":"

// Cipher seals payloads with AES-256-GCM under a key derived from a
// configured secret. It is safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

func NewCipher(secret string) (*Cipher, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("cipher: empty secret")
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt returns the ciphertext and the freshly generated IV it was sealed with.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, []byte, error) {
	iv := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, nil, fmt.Errorf("cipher: generate iv: %w", err)
	}
	return c.aead.Seal(nil, iv, plaintext, nil), iv, nil
}

func (c *Cipher) Decrypt(ciphertext []byte, iv []byte) ([]byte, error) {
	if len(iv) != c.aead.NonceSize() || len(ciphertext) < c.aead.Overhead() {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := c.aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// EncryptString returns base64(iv) + ":" + base64(ciphertext).
func (c *Cipher) EncryptString(plaintext string) (string, error) {
	ciphertext, iv, err := c.Encrypt([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(iv) + tokenSeparator + base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (c *Cipher) DecryptString(token string) (string, error) {
	parts := strings.Split(token, tokenSeparator)
	if len(parts) != 2 {
		return "", ErrDecryptionFailed
	}
	iv, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrDecryptionFailed
	}
	ciphertext, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", ErrDecryptionFailed
	}
	plaintext, err := c.Decrypt(ciphertext, iv)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
