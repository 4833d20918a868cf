package funnel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	sendRes   *VerifyPhoneResult
	sendErr   error
	verifyRes *VerifyPhoneResult
	verifyErr error

	onSend   func(phone string)
	onVerify func(phone, code string)
	lastCode string
}

func (f *fakeAPI) SendCode(ctx context.Context, phone string) (*VerifyPhoneResult, error) {
	if f.onSend != nil {
		f.onSend(phone)
	}
	return f.sendRes, f.sendErr
}

func (f *fakeAPI) VerifyCode(ctx context.Context, phone, code string) (*VerifyPhoneResult, error) {
	f.lastCode = code
	if f.onVerify != nil {
		f.onVerify(phone, code)
	}
	return f.verifyRes, f.verifyErr
}

func okResult() *VerifyPhoneResult { return &VerifyPhoneResult{Success: true} }

func newTestController(api *fakeAPI) (*Controller, *time.Time) {
	ctrl := NewController(api)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	ctrl.now = func() time.Time { return *clock }
	return ctrl, clock
}

func TestHappyPath(t *testing.T) {
	api := &fakeAPI{sendRes: okResult(), verifyRes: okResult()}
	ctrl, _ := newTestController(api)

	ctrl.SetPhone("0157 1234567")
	require.Equal(t, StateIdle, ctrl.State())

	require.NoError(t, ctrl.SendCode(context.Background()))
	require.Equal(t, StateCodeSent, ctrl.State())

	require.NoError(t, ctrl.VerifyCode(context.Background(), "483920"))
	require.Equal(t, StateVerified, ctrl.State())
	require.Equal(t, "0157 1234567", ctrl.VerifiedPhone())
	require.True(t, ctrl.CanSubmit())
	require.NoError(t, ctrl.Submit())
}

func TestSendRejectsBadPhoneFormat(t *testing.T) {
	ctrl, _ := newTestController(&fakeAPI{sendRes: okResult()})

	ctrl.SetPhone("12345")
	require.ErrorIs(t, ctrl.SendCode(context.Background()), ErrInvalidPhone)
	require.Equal(t, StateIdle, ctrl.State())
	require.NotEmpty(t, ctrl.Err())
}

func TestResendCooldown(t *testing.T) {
	api := &fakeAPI{sendRes: okResult()}
	ctrl, clock := newTestController(api)
	ctrl.SetPhone("0157 1234567")

	require.NoError(t, ctrl.SendCode(context.Background()))

	err := ctrl.SendCode(context.Background())
	require.ErrorIs(t, err, ErrCooldown)
	require.Contains(t, ctrl.Err(), "wait")

	*clock = clock.Add(29 * time.Second)
	require.ErrorIs(t, ctrl.SendCode(context.Background()), ErrCooldown)

	*clock = clock.Add(time.Second)
	require.NoError(t, ctrl.SendCode(context.Background()))
}

func TestVerifyRequiresCodeSent(t *testing.T) {
	ctrl, _ := newTestController(&fakeAPI{verifyRes: okResult()})
	ctrl.SetPhone("0157 1234567")
	require.ErrorIs(t, ctrl.VerifyCode(context.Background(), "123456"), ErrNoCodeSent)
}

func TestVerifyCodeFormatGate(t *testing.T) {
	api := &fakeAPI{sendRes: okResult(), verifyRes: okResult()}
	ctrl, _ := newTestController(api)
	ctrl.SetPhone("0157 1234567")
	require.NoError(t, ctrl.SendCode(context.Background()))

	for _, code := range []string{"", "12345", "1234567", "abcdef"} {
		require.ErrorIs(t, ctrl.VerifyCode(context.Background(), code), ErrCodeFormat)
		require.Equal(t, StateCodeSent, ctrl.State())
	}
	require.Empty(t, api.lastCode, "malformed codes must not reach the network")
}

func TestVerifyFailureReturnsToCodeSent(t *testing.T) {
	four := 4
	api := &fakeAPI{
		sendRes:   okResult(),
		verifyRes: &VerifyPhoneResult{Success: false, Error: "invalid code", AttemptsLeft: &four},
	}
	ctrl, _ := newTestController(api)
	ctrl.SetPhone("0157 1234567")
	require.NoError(t, ctrl.SendCode(context.Background()))

	err := ctrl.VerifyCode(context.Background(), "000000")
	require.ErrorIs(t, err, ErrRequestFail)
	require.Equal(t, StateCodeSent, ctrl.State())
	require.Contains(t, ctrl.Err(), "invalid code")
	require.Contains(t, ctrl.Err(), "4 attempts left")
}

func TestNetworkFailureResetsSending(t *testing.T) {
	api := &fakeAPI{sendErr: errors.New("connection refused")}
	ctrl, _ := newTestController(api)
	ctrl.SetPhone("0157 1234567")

	err := ctrl.SendCode(context.Background())
	require.ErrorIs(t, err, ErrRequestFail)
	require.Equal(t, StateIdle, ctrl.State())
	require.NotEmpty(t, ctrl.Err())
}

func TestEditingPhoneResetsSubState(t *testing.T) {
	api := &fakeAPI{sendRes: okResult(), verifyRes: okResult()}
	ctrl, _ := newTestController(api)
	ctrl.SetPhone("+4915700000001")
	require.NoError(t, ctrl.SendCode(context.Background()))
	require.NoError(t, ctrl.VerifyCode(context.Background(), "483920"))
	require.True(t, ctrl.CanSubmit())

	// editing the phone after verification orphans the session
	ctrl.SetPhone("+4915700000002")
	require.Equal(t, StateIdle, ctrl.State())
	require.False(t, ctrl.CanSubmit())

	err := ctrl.Submit()
	require.ErrorIs(t, err, ErrNotVerified)
	require.Equal(t, StateIdle, ctrl.State())
}

func TestStaleSendResponseIgnored(t *testing.T) {
	api := &fakeAPI{sendRes: okResult()}
	ctrl, _ := newTestController(api)
	ctrl.SetPhone("0157 1234567")

	// the visitor edits the phone while the send is in flight; the
	// late success must not promote the new phone to CodeSent
	api.onSend = func(string) { ctrl.SetPhone("0157 7654321") }
	require.NoError(t, ctrl.SendCode(context.Background()))
	require.Equal(t, StateIdle, ctrl.State())
	require.Zero(t, ctrl.CooldownRemaining())
}

func TestStaleVerifyResponseIgnored(t *testing.T) {
	api := &fakeAPI{sendRes: okResult(), verifyRes: okResult()}
	ctrl, _ := newTestController(api)
	ctrl.SetPhone("0157 1234567")
	require.NoError(t, ctrl.SendCode(context.Background()))

	api.onVerify = func(string, string) { ctrl.SetPhone("0157 7654321") }
	require.NoError(t, ctrl.VerifyCode(context.Background(), "483920"))
	require.Equal(t, StateIdle, ctrl.State())
	require.False(t, ctrl.CanSubmit())
	require.Empty(t, ctrl.VerifiedPhone())
}

func TestCooldownRemaining(t *testing.T) {
	api := &fakeAPI{sendRes: okResult()}
	ctrl, clock := newTestController(api)
	ctrl.SetPhone("0157 1234567")
	require.Zero(t, ctrl.CooldownRemaining())

	require.NoError(t, ctrl.SendCode(context.Background()))
	require.Equal(t, 30*time.Second, ctrl.CooldownRemaining())

	*clock = clock.Add(12 * time.Second)
	require.Equal(t, 18*time.Second, ctrl.CooldownRemaining())

	*clock = clock.Add(time.Minute)
	require.Zero(t, ctrl.CooldownRemaining())
}
