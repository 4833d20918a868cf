// Package funnel drives the multi-step contact form's phone
// verification sub-state: which step the visitor is on, when a code
// may be (re)sent, and whether the form as a whole may be submitted.
package funnel

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"
)

type State int

const (
	StateIdle State = iota
	StateSending
	StateCodeSent
	StateVerifying
	StateVerified
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateCodeSent:
		return "code_sent"
	case StateVerifying:
		return "verifying"
	case StateVerified:
		return "verified"
	}
	return "unknown"
}

var (
	ErrBusy         = errors.New("request already in flight")
	ErrInvalidPhone = errors.New("invalid phone format")
	ErrCooldown     = errors.New("resend cooldown active")
	ErrCodeFormat   = errors.New("code must be 6 digits")
	ErrNoCodeSent   = errors.New("no code sent yet")
	ErrRequestFail  = errors.New("request failed")
	ErrNotVerified  = errors.New("phone not verified for the current value")
)

const resendCooldown = 30 * time.Second

// loose pre-check before the server sees the number
var (
	phonePattern = regexp.MustCompile(`^[0-9+()\-\s]{8,}$`)
	codeInput    = regexp.MustCompile(`^[0-9]{6}$`)
)

// VerifyAPI is what the controller needs from the network layer.
type VerifyAPI interface {
	SendCode(ctx context.Context, phone string) (*VerifyPhoneResult, error)
	VerifyCode(ctx context.Context, phone, code string) (*VerifyPhoneResult, error)
}

// Controller is the explicit state object behind the form widget. All
// transitions run through its methods, so the legal ones are testable
// in isolation. Safe for use from multiple goroutines.
type Controller struct {
	mu  sync.Mutex
	api VerifyAPI
	now func() time.Time

	state         State
	phone         string
	lastSentAt    time.Time
	verifiedPhone string
	errMsg        string

	// bumped whenever the phone field changes; responses started under
	// an older session are dropped on arrival
	session uint64
}

func NewController(api VerifyAPI) *Controller {
	return &Controller{api: api, now: time.Now}
}

// SetPhone records the current phone field value. Any edit after a
// code was sent (or the number verified) orphans that session and
// drops the sub-state back to idle.
func (f *Controller) SetPhone(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v == f.phone {
		return
	}
	f.phone = v
	if f.state != StateIdle {
		f.state = StateIdle
		f.errMsg = ""
		f.session++
	}
}

// SendCode requests a fresh code for the current phone value.
func (f *Controller) SendCode(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateSending || f.state == StateVerifying {
		f.mu.Unlock()
		return ErrBusy
	}
	if !phonePattern.MatchString(f.phone) {
		f.errMsg = "please enter a valid phone number"
		f.mu.Unlock()
		return ErrInvalidPhone
	}
	if !f.lastSentAt.IsZero() {
		elapsed := f.now().Sub(f.lastSentAt)
		if elapsed < resendCooldown {
			remaining := int((resendCooldown - elapsed).Seconds()) + 1
			f.errMsg = fmt.Sprintf("please wait %d seconds before requesting a new code", remaining)
			f.mu.Unlock()
			return ErrCooldown
		}
	}
	f.state = StateSending
	f.errMsg = ""
	phone := f.phone
	session := f.session
	f.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := f.api.SendCode(ctx, phone)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session != session {
		// phone changed mid-flight; this response belongs to nobody
		return nil
	}
	if err != nil {
		f.state = StateIdle
		f.errMsg = "could not reach the server, please try again"
		return fmt.Errorf("%w: %v", ErrRequestFail, err)
	}
	if !res.Success {
		f.state = StateIdle
		f.errMsg = res.Error
		return ErrRequestFail
	}
	f.state = StateCodeSent
	f.lastSentAt = f.now()
	return nil
}

// VerifyCode submits the entered code for the current phone value.
func (f *Controller) VerifyCode(ctx context.Context, code string) error {
	f.mu.Lock()
	if f.state == StateSending || f.state == StateVerifying {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.state != StateCodeSent {
		f.mu.Unlock()
		return ErrNoCodeSent
	}
	if !codeInput.MatchString(code) {
		f.errMsg = "the code must be exactly 6 digits"
		f.mu.Unlock()
		return ErrCodeFormat
	}
	f.state = StateVerifying
	f.errMsg = ""
	phone := f.phone
	session := f.session
	f.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := f.api.VerifyCode(ctx, phone, code)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session != session {
		return nil
	}
	if err != nil {
		f.state = StateCodeSent
		f.errMsg = "could not reach the server, please try again"
		return fmt.Errorf("%w: %v", ErrRequestFail, err)
	}
	if !res.Success {
		f.state = StateCodeSent
		f.errMsg = res.Error
		if res.AttemptsLeft != nil {
			f.errMsg = fmt.Sprintf("%s (%d attempts left)", res.Error, *res.AttemptsLeft)
		}
		return ErrRequestFail
	}
	f.state = StateVerified
	f.verifiedPhone = phone
	return nil
}

// CanSubmit gates the overall form: verification must have succeeded
// for the phone value as it stands right now.
func (f *Controller) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StateVerified && f.verifiedPhone == f.phone
}

// Submit is the final gate. When the phone was edited after
// verification the visitor is routed back to the phone step.
func (f *Controller) Submit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateVerified && f.verifiedPhone == f.phone {
		return nil
	}
	f.state = StateIdle
	f.errMsg = "please verify your phone number before submitting"
	return ErrNotVerified
}

func (f *Controller) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Controller) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

func (f *Controller) VerifiedPhone() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verifiedPhone
}

// CooldownRemaining reports how long until another send is allowed.
func (f *Controller) CooldownRemaining() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastSentAt.IsZero() {
		return 0
	}
	remaining := resendCooldown - f.now().Sub(f.lastSentAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
