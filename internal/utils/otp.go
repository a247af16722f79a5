package utils

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/pquerna/otp"
)

const DefaultOTPTTL = 10 * time.Minute

// OTPGenerator draws numeric codes uniformly from [0, 10^digits).
type OTPGenerator struct {
	Digits otp.Digits
	TTL    time.Duration
	// Random defaults to crypto/rand.Reader.
	Random io.Reader
}

func NewOTPGenerator(ttl time.Duration) OTPGenerator {
	return OTPGenerator{Digits: otp.DigitsSix, TTL: ttl}
}

func (g OTPGenerator) Generate(now time.Time) (string, time.Time, error) {
	digits := g.Digits
	if digits == 0 {
		digits = otp.DigitsSix
	}
	ttl := g.TTL
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	source := g.Random
	if source == nil {
		source = rand.Reader
	}

	upper := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits.Length())), nil)
	n, err := rand.Int(source, upper)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("otp: %w", err)
	}
	return digits.Format(int32(n.Int64())), now.Add(ttl), nil
}
