package services

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"assekura/internal/models"
)

// memVerificationStore mirrors the repository's single-row-per-phone
// semantics in memory.
type memVerificationStore struct {
	mu      sync.Mutex
	records map[string]*models.PhoneVerification
	reads   int
	writes  int
}

func newMemVerificationStore() *memVerificationStore {
	return &memVerificationStore{records: make(map[string]*models.PhoneVerification)}
}

func (m *memVerificationStore) GetByPhone(phone string) (*models.PhoneVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	rec, ok := m.records[phone]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memVerificationStore) Upsert(v *models.PhoneVerification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	existing, ok := m.records[v.PhoneNumber]
	if !ok {
		rec := *v
		rec.Attempts = 0
		m.records[v.PhoneNumber] = &rec
		return nil
	}
	existing.Code = v.Code
	existing.ExpiresAt = v.ExpiresAt
	existing.Attempts = 0
	return nil
}

func (m *memVerificationStore) IncrementAttempts(phone string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	rec := m.records[phone]
	rec.Attempts++
	return rec.Attempts, nil
}

func (m *memVerificationStore) MarkVerified(phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	rec := m.records[phone]
	rec.Verified = true
	rec.VerifiedAt = time.Now()
	return nil
}

func (m *memVerificationStore) raw(phone string) *models.PhoneVerification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[phone]
}

type denyThrottle struct{}

func (denyThrottle) Allow(string) (bool, error) { return false, nil }

func newTestVerificationService(t *testing.T, store VerificationStore) *VerificationService {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewVerificationService(store, nil, nil, logger, 0)
}

func TestSendCreatesNormalizedRecord(t *testing.T) {
	store := newMemVerificationStore()
	svc := newTestVerificationService(t, store)

	require.NoError(t, svc.Send("0157 1234567"))

	rec := store.raw("+491571234567")
	require.NotNil(t, rec)
	require.Regexp(t, `^[0-9]{6}$`, rec.Code)
	require.Equal(t, 0, rec.Attempts)
	require.False(t, rec.Verified)
	require.True(t, rec.ExpiresAt.After(time.Now().Add(9*time.Minute)))
}

func TestSendRequiresPhone(t *testing.T) {
	svc := newTestVerificationService(t, newMemVerificationStore())
	require.ErrorIs(t, svc.Send(""), ErrPhoneRequired)
	require.ErrorIs(t, svc.Send("---"), ErrPhoneRequired)
}

func TestVerifyInvalidCodeReportsAttemptsLeft(t *testing.T) {
	store := newMemVerificationStore()
	svc := newTestVerificationService(t, store)
	require.NoError(t, svc.Send("+491571234567"))
	store.raw("+491571234567").Code = "483920"

	left, err := svc.Verify("+491571234567", "000000")
	require.ErrorIs(t, err, ErrCodeInvalid)
	require.Equal(t, 4, left)
}

func TestAttemptCap(t *testing.T) {
	store := newMemVerificationStore()
	svc := newTestVerificationService(t, store)
	require.NoError(t, svc.Send("+491571234567"))
	store.raw("+491571234567").Code = "483920"

	for i := 0; i < 5; i++ {
		left, err := svc.Verify("+491571234567", "000000")
		require.ErrorIs(t, err, ErrCodeInvalid)
		require.Equal(t, 4-i, left)
	}

	// even the correct code is refused once the cap is reached
	_, err := svc.Verify("+491571234567", "483920")
	require.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestVerifyExpiredCode(t *testing.T) {
	store := newMemVerificationStore()
	svc := newTestVerificationService(t, store)
	require.NoError(t, svc.Send("+491571234567"))

	rec := store.raw("+491571234567")
	rec.Code = "483920"
	rec.ExpiresAt = time.Now()

	_, err := svc.Verify("+491571234567", "483920")
	require.ErrorIs(t, err, ErrCodeExpired)
}

func TestReissueResetsState(t *testing.T) {
	store := newMemVerificationStore()
	svc := newTestVerificationService(t, store)
	require.NoError(t, svc.Send("+491571234567"))

	rec := store.raw("+491571234567")
	rec.Code = "483920"
	rec.Attempts = 3

	require.NoError(t, svc.Send("+491571234567"))
	rec = store.raw("+491571234567")
	require.Equal(t, 0, rec.Attempts)

	if rec.Code != "483920" { // a fresh random code collides once in 10^6
		_, err := svc.Verify("+491571234567", "483920")
		require.ErrorIs(t, err, ErrCodeInvalid)
	}
}

func TestVerifiedNumberLocksSend(t *testing.T) {
	store := newMemVerificationStore()
	svc := newTestVerificationService(t, store)
	require.NoError(t, svc.Send("+491571234567"))

	rec := store.raw("+491571234567")
	rec.Code = "483920"

	_, err := svc.Verify("+491571234567", "483920")
	require.NoError(t, err)
	require.True(t, store.raw("+491571234567").Verified)
	require.False(t, store.raw("+491571234567").VerifiedAt.IsZero())

	require.ErrorIs(t, svc.Send("+491571234567"), ErrAlreadyVerified)

	ok, err := svc.IsVerified("0157 1234567")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyFormatGateSkipsStore(t *testing.T) {
	store := newMemVerificationStore()
	svc := newTestVerificationService(t, store)
	require.NoError(t, svc.Send("+491571234567"))

	readsBefore := store.reads
	writesBefore := store.writes
	for _, code := range []string{"", "12345", "1234567", "12a456", "12 456"} {
		_, err := svc.Verify("+491571234567", code)
		require.ErrorIs(t, err, ErrInvalidFormat, "code %q", code)
	}
	require.Equal(t, readsBefore, store.reads)
	require.Equal(t, writesBefore, store.writes)
	require.Equal(t, 0, store.raw("+491571234567").Attempts)
}

func TestVerifyWithoutSend(t *testing.T) {
	svc := newTestVerificationService(t, newMemVerificationStore())
	_, err := svc.Verify("+491571234567", "123456")
	require.ErrorIs(t, err, ErrNoPending)
}

func TestSendThrottled(t *testing.T) {
	store := newMemVerificationStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := NewVerificationService(store, denyThrottle{}, nil, logger, 0)

	require.ErrorIs(t, svc.Send("+491571234567"), ErrResendThrottled)
	require.Nil(t, store.raw("+491571234567"))
}
