package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is read from the environment, optionally seeded by a .env file.
type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR"        env-default:":8080"`
	DatabaseURL    string        `env:"DATABASE_URL"     env-required:"true"`
	MigrateOnStart bool          `env:"MIGRATE_ON_START" env-default:"true"`
	LogLevel       string        `env:"LOG_LEVEL"        env-default:"info"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" env-default:"104857600"`
	ShutdownGrace  time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	Auth      AuthConfig
	Crypto    CryptoConfig
	Mail      MailConfig
	Storage   StorageConfig
	Assistant AssistantConfig
}

type AuthConfig struct {
	JWTSecret   string        `env:"JWT_SECRET"   env-required:"true"`
	JWTIssuer   string        `env:"JWT_ISSUER"   env-default:"legalplatform"`
	JWTAudience string        `env:"JWT_AUDIENCE" env-default:"legalplatform-clients"`
	JWTTTL      time.Duration `env:"JWT_TTL"      env-default:"60m"`
	OTPTTL      time.Duration `env:"OTP_TTL"      env-default:"10m"`
	BcryptCost  int           `env:"BCRYPT_COST"  env-default:"10"`
}

type CryptoConfig struct {
	AESKey string `env:"CRYPTO_AES_KEY" env-required:"true"`
}

type MailConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	From         string `env:"MAIL_FROM" env-default:"Legal Platform <no-reply@legalplatform.local>"`
}

// StorageConfig is optional. Without a bucket documents stay in the database.
type StorageConfig struct {
	Bucket          string `env:"S3_BUCKET"`
	Region          string `env:"S3_REGION" env-default:"us-east-1"`
	Endpoint        string `env:"S3_ENDPOINT"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
}

type AssistantConfig struct {
	BaseURL string `env:"ASSISTANT_BASE_URL"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be blank"))
	}
	if strings.TrimSpace(c.Crypto.AESKey) == "" {
		errs = append(errs, errors.New("CRYPTO_AES_KEY must not be blank"))
	}
	if c.Auth.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.Auth.OTPTTL <= 0 {
		errs = append(errs, errors.New("OTP_TTL must be positive"))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST %d out of range 4..31", c.Auth.BcryptCost))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	return errors.Join(errs...)
}
