package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"assekura/internal/models"
	"assekura/internal/utils"
)

var (
	ErrPhoneRequired   = errors.New("phone required")
	ErrInvalidFormat   = errors.New("invalid code format")
	ErrNoPending       = errors.New("no pending verification")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrCodeExpired     = errors.New("code expired")
	ErrCodeInvalid     = errors.New("code invalid")
	ErrAlreadyVerified = errors.New("already verified")
	ErrResendThrottled = errors.New("resend throttled")
)

const maxConfirmAttempts = 5
const defaultCodeTTL = 10 * time.Minute

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

// VerificationStore is the durable record keyed by normalized phone
// number. Implemented by repositories.VerificationRepository.
type VerificationStore interface {
	GetByPhone(phone string) (*models.PhoneVerification, error)
	Upsert(v *models.PhoneVerification) error
	IncrementAttempts(phone string) (int, error)
	MarkVerified(phone string) error
}

// ResendThrottle caps how often codes may be issued per phone number.
type ResendThrottle interface {
	Allow(phone string) (bool, error)
}

type CodeSender interface {
	SendCode(to, code string) error
}

type VerificationService struct {
	Store    VerificationStore
	Throttle ResendThrottle // optional
	SMS      CodeSender
	Logger   *logrus.Logger
	CodeTTL  time.Duration // 0 means defaultCodeTTL
}

func NewVerificationService(store VerificationStore, throttle ResendThrottle, sms CodeSender, logger *logrus.Logger, codeTTL time.Duration) *VerificationService {
	if codeTTL <= 0 {
		codeTTL = defaultCodeTTL
	}
	return &VerificationService{
		Store:    store,
		Throttle: throttle,
		SMS:      sms,
		Logger:   logger,
		CodeTTL:  codeTTL,
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Send issues a fresh 6-digit code for the number. A number that is
// already verified can never be reissued a code through this flow.
func (s *VerificationService) Send(phone string) error {
	if phone == "" {
		return ErrPhoneRequired
	}
	normalized := utils.NormalizePhone(phone)
	if normalized == "" {
		return ErrPhoneRequired
	}

	if s.Throttle != nil {
		ok, err := s.Throttle.Allow(normalized)
		if err != nil {
			return fmt.Errorf("resend throttle: %w", err)
		}
		if !ok {
			return ErrResendThrottled
		}
	}

	existing, err := s.Store.GetByPhone(normalized)
	if err != nil {
		return err
	}
	if existing != nil && existing.Verified {
		return ErrAlreadyVerified
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	rec := &models.PhoneVerification{
		PhoneNumber: normalized,
		Code:        code,
		ExpiresAt:   time.Now().Add(s.CodeTTL),
	}
	if err := s.Store.Upsert(rec); err != nil {
		return err
	}

	if s.SMS != nil {
		if err := s.SMS.SendCode(normalized, code); err != nil {
			return fmt.Errorf("dispatch code: %w", err)
		}
	}

	s.Logger.WithField("phone", normalized).Info("verification code issued")
	return nil
}

// Verify compares the entered code against the stored record. On a
// mismatch it returns ErrCodeInvalid together with the number of
// attempts remaining before the cap.
func (s *VerificationService) Verify(phone, code string) (attemptsLeft int, err error) {
	// format gate: rejected before any store access
	if !codePattern.MatchString(code) {
		return 0, ErrInvalidFormat
	}
	normalized := utils.NormalizePhone(phone)
	if normalized == "" {
		return 0, ErrPhoneRequired
	}

	rec, err := s.Store.GetByPhone(normalized)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, ErrNoPending
	}
	if rec.Attempts >= maxConfirmAttempts {
		return 0, ErrTooManyAttempts
	}
	// a code is usable only strictly before its expiry
	if !time.Now().Before(rec.ExpiresAt) {
		return 0, ErrCodeExpired
	}

	if code != rec.Code {
		attempts, incErr := s.Store.IncrementAttempts(normalized)
		if incErr != nil {
			return 0, incErr
		}
		left := maxConfirmAttempts - attempts
		if left < 0 {
			left = 0
		}
		return left, ErrCodeInvalid
	}

	if err := s.Store.MarkVerified(normalized); err != nil {
		return 0, err
	}
	s.Logger.WithField("phone", normalized).Info("phone verified")
	return 0, nil
}

// IsVerified reports whether the number has completed verification.
// The lead intake uses this as the authoritative server-side check.
func (s *VerificationService) IsVerified(phone string) (bool, error) {
	normalized := utils.NormalizePhone(phone)
	if normalized == "" {
		return false, nil
	}
	rec, err := s.Store.GetByPhone(normalized)
	if err != nil {
		return false, err
	}
	return rec != nil && rec.Verified, nil
}
