package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

const DefaultAccessTokenTTL = 60 * time.Minute

// JWTManager signs and parses HS256 session tokens. The secret is fixed for
// the lifetime of the process.
type JWTManager struct {
	Secret         []byte
	Issuer         string
	Audience       string
	AccessTokenTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// AccessClaims carries the account id in the registered "sub" claim.
type AccessClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssueAccessToken signs a token for the account. A non-positive ttl falls
// back to the manager's default.
func (m JWTManager) IssueAccessToken(accountID string, role string, email string, ttl time.Duration) (string, time.Duration, error) {
	if len(m.Secret) == 0 {
		return "", 0, errors.New("jwt: empty secret")
	}
	if ttl <= 0 {
		ttl = m.AccessTokenTTL
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	now := m.now()
	claims := AccessClaims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.Issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if m.Audience != "" {
		claims.Audience = jwt.ClaimStrings{m.Audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return "", 0, err
	}
	return signed, ttl, nil
}

func (m JWTManager) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.Issuer))
	}
	if m.Audience != "" {
		options = append(options, jwt.WithAudience(m.Audience))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.Secret, nil
	}, options...)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m JWTManager) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}
