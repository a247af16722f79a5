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
	"legalplatform/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

const (
	msgSignedUp       = "Signup successful. Verify email with OTP."
	msgLawyerSignedUp = "Signup successful. Verify email with OTP. Admin will review profile."
	msgEmailVerified  = "Email verified"
	msgAwaitApproval  = "Email verified. Admin will review profile."
	msgOtpSent        = "If the account exists and is unverified, a new OTP has been sent."
)

// IdentityService drives the account state machine: signup, email
// verification, lawyer vetting and login.
type IdentityService struct {
	accounts repository.AccountRepository
	lawyers  repository.LawyerProfileRepository
	codes    repository.OneTimeCodeRepository
	audit    repository.AuditLogRepository
	tx       repository.TxManager

	notifier     Notifier
	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	otp          CodeGenerator
	clock        Clock
	metrics      *metrics.Recorder
	log          logrus.FieldLogger
	config       IdentityConfig
}

func NewIdentityService(
	accounts repository.AccountRepository,
	lawyers repository.LawyerProfileRepository,
	codes repository.OneTimeCodeRepository,
	audit repository.AuditLogRepository,
	tx repository.TxManager,
	notifier Notifier,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	otp CodeGenerator,
	clock Clock,
	recorder *metrics.Recorder,
	logger logrus.FieldLogger,
	config IdentityConfig,
) *IdentityService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &IdentityService{
		accounts:     accounts,
		lawyers:      lawyers,
		codes:        codes,
		audit:        audit,
		tx:           tx,
		notifier:     notifier,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		otp:          otp,
		clock:        clock,
		metrics:      recorder,
		log:          logger.WithField("service", "identity"),
		config:       config,
	}
}

func (s *IdentityService) RegisterLocalPerson(ctx context.Context, input RegisterLocalPersonInput) (result *RegisterResult, err error) {
	defer func() { s.metrics.IdentityEvent("register_local_person", outcome(err)) }()

	if blank(input.Email) || blank(input.Password) {
		return nil, ErrInvalidInput
	}
	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity.RegisterLocalPerson: %w", err)
	}

	account := &entity.Account{
		ID:           uuid.New(),
		Email:        utils.NormalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         entity.RoleLocalPerson,
		Name:         optional(input.Name),
		PhoneNumber:  optional(input.PhoneNumber),
		City:         optional(input.City),
	}
	code, err := s.register(ctx, account, nil)
	if err != nil {
		return nil, err
	}

	s.sendOtp(ctx, account.Email, code)
	s.logAudit(ctx, &account.ID, input.IPAddress, entity.AuditRegistered, map[string]any{"role": account.Role})
	return &RegisterResult{AccountID: account.ID, Message: msgSignedUp}, nil
}

func (s *IdentityService) RegisterLawyer(ctx context.Context, input RegisterLawyerInput) (result *RegisterResult, err error) {
	defer func() { s.metrics.IdentityEvent("register_lawyer", outcome(err)) }()

	if blank(input.Email) || blank(input.Password) || blank(input.Profile.FullName) {
		return nil, ErrInvalidInput
	}
	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity.RegisterLawyer: %w", err)
	}

	account := &entity.Account{
		ID:           uuid.New(),
		Email:        utils.NormalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         entity.RoleLawyer,
	}
	profile := &entity.LawyerProfile{
		ID:     uuid.New(),
		Status: entity.LawyerPending,
	}
	applyProfileInput(profile, input.Profile)

	code, err := s.register(ctx, account, profile)
	if err != nil {
		return nil, err
	}

	s.sendOtp(ctx, account.Email, code)
	s.logAudit(ctx, &account.ID, input.IPAddress, entity.AuditRegistered, map[string]any{"role": account.Role})
	return &RegisterResult{AccountID: account.ID, Message: msgLawyerSignedUp}, nil
}

// register persists the account, the optional lawyer profile and a fresh
// code as one unit and returns the plain code for delivery.
func (s *IdentityService) register(ctx context.Context, account *entity.Account, profile *entity.LawyerProfile) (string, error) {
	var code string
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.accounts.FindByEmail(ctx, account.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateEmail
		}
		if err := s.accounts.Create(ctx, account); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrDuplicateEmail
			}
			return err
		}
		if profile != nil {
			profile.AccountID = account.ID
			if err := s.lawyers.Create(ctx, profile); err != nil {
				return err
			}
		}
		code, err = s.issueCode(ctx, account.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return "", err
		}
		return "", fmt.Errorf("identity.register: %w", err)
	}
	return code, nil
}

// VerifyOtp consumes the latest active code of the account. The account row
// stays locked from lookup to update so concurrent attempts serialize.
func (s *IdentityService) VerifyOtp(ctx context.Context, email string, code string) (result *VerifyResult, err error) {
	defer func() { s.metrics.IdentityEvent("verify_otp", outcome(err)) }()

	if blank(email) || blank(code) {
		return nil, ErrInvalidInput
	}
	normalized := utils.NormalizeEmail(email)
	code = strings.TrimSpace(code)

	var account *entity.Account
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		found, err := s.accounts.FindByEmailForUpdate(ctx, normalized)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrUnknownAccount
		}

		now := s.now()
		active, err := s.codes.FindActiveForAccount(ctx, found.ID, now)
		if err != nil {
			return err
		}
		if active == nil || !active.ActiveAt(now) || !utils.TokenMatchesHash(codeSubject(found.ID, code), active.CodeHash) {
			return ErrInvalidOrExpiredCode
		}
		consumed, err := s.codes.MarkUsed(ctx, active.ID)
		if err != nil {
			return err
		}
		if !consumed {
			return ErrInvalidOrExpiredCode
		}

		activate, err := s.activatesOnVerification(ctx, found)
		if err != nil {
			return err
		}
		found.EmailVerified = true
		if activate {
			found.Active = true
		}
		if err := s.accounts.Update(ctx, found); err != nil {
			return err
		}
		account = found
		return nil
	})
	if err != nil {
		return nil, wrapUnlessKnown("identity.VerifyOtp", err)
	}

	s.logAudit(ctx, &account.ID, nil, entity.AuditEmailVerified, map[string]any{"active": account.Active})
	message := msgEmailVerified
	if !account.Active {
		message = msgAwaitApproval
	}
	return &VerifyResult{AccountID: account.ID, Active: account.Active, Message: message}, nil
}

// activatesOnVerification reports whether a verified email is the last step
// before the account becomes active.
func (s *IdentityService) activatesOnVerification(ctx context.Context, account *entity.Account) (bool, error) {
	switch account.Role {
	case entity.RoleLocalPerson, entity.RoleAdmin:
		return true, nil
	case entity.RoleLawyer:
		profile, err := s.lawyers.FindByAccountID(ctx, account.ID)
		if err != nil {
			return false, err
		}
		return profile != nil && profile.Status == entity.LawyerApproved, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownRole, account.Role)
}

// ResendOtp issues a new code for an unverified account. Unknown or already
// verified emails succeed silently.
func (s *IdentityService) ResendOtp(ctx context.Context, email string) (message string, err error) {
	defer func() { s.metrics.IdentityEvent("resend_otp", outcome(err)) }()

	if blank(email) {
		return "", ErrInvalidInput
	}
	normalized := utils.NormalizeEmail(email)

	var code string
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		account, err := s.accounts.FindByEmailForUpdate(ctx, normalized)
		if err != nil {
			return err
		}
		if account == nil || account.EmailVerified {
			return nil
		}
		code, err = s.issueCode(ctx, account.ID)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("identity.ResendOtp: %w", err)
	}
	if code != "" {
		s.sendOtp(ctx, normalized, code)
	}
	return msgOtpSent, nil
}

func (s *IdentityService) Login(ctx context.Context, input LoginInput) (result *LoginResult, err error) {
	defer func() { s.metrics.IdentityEvent("login", outcome(err)) }()

	if blank(input.Email) || input.Password == "" {
		return nil, ErrInvalidInput
	}
	email := utils.NormalizeEmail(input.Email)
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("identity.Login: %w", err)
	}
	if account == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		s.logAudit(ctx, nil, input.IPAddress, entity.AuditLoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}
	if !s.passwordHash.Verify(account.PasswordHash, input.Password) {
		s.logAudit(ctx, &account.ID, input.IPAddress, entity.AuditLoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if !account.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	if !account.Active {
		return nil, ErrAccountNotActive
	}
	if !account.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, account.Role)
	}

	token, ttl, err := s.accessTokens.IssueAccessToken(*account, s.config.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("identity.Login: %w", err)
	}

	s.logAudit(ctx, &account.ID, input.IPAddress, entity.AuditLoginSuccess, nil)
	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   int64(ttl.Seconds()),
		AccountID:   account.ID,
		Role:        account.Role,
	}, nil
}

// ApproveLawyer marks the lawyer's profile Approved. The account is activated
// here when the email is already verified, otherwise on verification.
func (s *IdentityService) ApproveLawyer(ctx context.Context, accountID uuid.UUID) (err error) {
	defer func() { s.metrics.IdentityEvent("approve_lawyer", outcome(err)) }()

	var account *entity.Account
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		found, profile, err := s.lockLawyer(ctx, accountID)
		if err != nil {
			return err
		}
		profile.Approve(s.now())
		if err := s.lawyers.Update(ctx, profile); err != nil {
			return err
		}
		if found.EmailVerified && !found.Active {
			found.Active = true
			if err := s.accounts.Update(ctx, found); err != nil {
				return err
			}
		}
		account = found
		return nil
	})
	if err != nil {
		return wrapUnlessKnown("identity.ApproveLawyer", err)
	}

	s.notify(ctx, "approval", func(ctx context.Context) error {
		return s.notifier.SendApproval(ctx, account.Email)
	})
	s.logAudit(ctx, &account.ID, nil, entity.AuditLawyerApproved, map[string]any{"active": account.Active})
	return nil
}

// RejectLawyer marks the profile Rejected with a reason. Account.Active is
// left as it is.
func (s *IdentityService) RejectLawyer(ctx context.Context, accountID uuid.UUID, reason string) (err error) {
	defer func() { s.metrics.IdentityEvent("reject_lawyer", outcome(err)) }()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrInvalidInput
	}

	var account *entity.Account
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		found, profile, err := s.lockLawyer(ctx, accountID)
		if err != nil {
			return err
		}
		profile.Reject(reason)
		if err := s.lawyers.Update(ctx, profile); err != nil {
			return err
		}
		account = found
		return nil
	})
	if err != nil {
		return wrapUnlessKnown("identity.RejectLawyer", err)
	}

	s.notify(ctx, "rejection", func(ctx context.Context) error {
		return s.notifier.SendRejection(ctx, account.Email, reason)
	})
	s.logAudit(ctx, &account.ID, nil, entity.AuditLawyerRejected, map[string]any{"reason": reason})
	return nil
}

func (s *IdentityService) GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("identity.GetAccount: %w", err)
	}
	if account == nil {
		return nil, ErrNotFound
	}
	return account, nil
}

func (s *IdentityService) lockLawyer(ctx context.Context, accountID uuid.UUID) (*entity.Account, *entity.LawyerProfile, error) {
	account, err := s.accounts.FindByIDForUpdate(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if account == nil {
		return nil, nil, ErrNotFound
	}
	switch account.Role {
	case entity.RoleLawyer:
	case entity.RoleLocalPerson, entity.RoleAdmin:
		return nil, nil, ErrNotALawyer
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownRole, account.Role)
	}
	profile, err := s.lawyers.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, ErrNotFound
	}
	return account, profile, nil
}

func (s *IdentityService) issueCode(ctx context.Context, accountID uuid.UUID) (string, error) {
	now := s.now()
	code, expiresAt, err := s.otp.Generate(now)
	if err != nil {
		return "", err
	}
	record := &entity.OneTimeCode{
		ID:        uuid.New(),
		AccountID: accountID,
		CodeHash:  utils.HashToken(codeSubject(accountID, code)),
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if err := s.codes.Create(ctx, record); err != nil {
		return "", err
	}
	return code, nil
}

func (s *IdentityService) sendOtp(ctx context.Context, email string, code string) {
	s.notify(ctx, "otp", func(ctx context.Context) error {
		return s.notifier.SendOtp(ctx, email, code)
	})
}

func (s *IdentityService) notify(ctx context.Context, kind string, send func(ctx context.Context) error) {
	if s.notifier == nil {
		return
	}
	if err := send(ctx); err != nil {
		s.log.WithError(err).WithField("notification", kind).Warn("notification not delivered")
		s.metrics.NotificationFailed(kind)
	}
}

func (s *IdentityService) logAudit(
	ctx context.Context,
	accountID *uuid.UUID,
	ipAddress *string,
	action entity.AuditAction,
	metadata map[string]any,
) {
	if s.audit == nil {
		return
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			s.log.WithError(err).Warn("audit metadata not encoded")
			return
		}
		payload = datatypes.JSON(bytes)
	}
	err := s.audit.Log(ctx, &entity.AuditLog{
		AccountID: accountID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	})
	if err != nil {
		s.log.WithError(err).WithField("action", action).Warn("audit log not written")
	}
}

func (s *IdentityService) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock.Now()
}

// codeSubject binds a code to its account before hashing so equal codes of
// different accounts never share a digest.
func codeSubject(accountID uuid.UUID, code string) string {
	return accountID.String() + ":" + code
}

func applyProfileInput(profile *entity.LawyerProfile, input LawyerProfileInput) {
	profile.PhotoURL = input.PhotoURL
	profile.FullName = strings.TrimSpace(input.FullName)
	profile.Address = input.Address
	profile.PhoneNumber = input.PhoneNumber
	profile.City = input.City
	profile.CNIC = input.CNIC
	profile.DateOfBirth = input.DateOfBirth
	profile.LawDegreeName = input.LawDegreeName
	profile.University = input.University
	profile.GraduationYear = input.GraduationYear
	profile.Specialization = input.Specialization
	profile.YearsOfExperience = input.YearsOfExperience
	profile.CurrentFirmOrPractice = input.CurrentFirmOrPractice
	profile.VideoIntroURL = input.VideoIntroURL
}

func wrapUnlessKnown(op string, err error) error {
	if outcome(err) != "internal" {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
