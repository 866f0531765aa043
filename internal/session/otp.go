package session

import (
	"errors"
	"time"
)

var (
	ErrOTPMismatch  = errors.New("verification code does not match")
	ErrOTPExpired   = errors.New("verification code expired")
	ErrOTPExhausted = errors.New("too many failed verification attempts")
	ErrNoPending    = errors.New("no registration pending verification")
)

// PendingSignup is a registration waiting on its verification code. The
// account row is only written after Verify succeeds.
type PendingSignup struct {
	Username     string
	Email        string
	Phone        string
	PasswordHash string

	Code         string
	ExpiresAt    time.Time
	AttemptsLeft int
}

func NewPendingSignup(username, email, phone, passwordHash, code string, now time.Time) *PendingSignup {
	return &PendingSignup{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		Code:         code,
		ExpiresAt:    now.Add(OTPTTL),
		AttemptsLeft: OTPMaxAttempts,
	}
}

// Verify checks the submitted code. A mismatch burns one attempt; expiry
// and exhaustion are terminal, the caller must discard the pending signup.
func (p *PendingSignup) Verify(code string, now time.Time) error {
	if now.After(p.ExpiresAt) {
		return ErrOTPExpired
	}
	if p.AttemptsLeft <= 0 {
		return ErrOTPExhausted
	}
	if code != p.Code {
		p.AttemptsLeft--
		if p.AttemptsLeft == 0 {
			return ErrOTPExhausted
		}
		return ErrOTPMismatch
	}
	return nil
}

// SetPending stashes a registration on this (pre-auth) session.
func (s *Session) SetPending(p *PendingSignup) {
	s.mu.Lock()
	s.Pending = p
	s.mu.Unlock()
}

// VerifyPending checks the submitted code against the stashed signup. On
// success the signup is returned and cleared. Expiry and exhaustion also
// clear it: the user has to register again.
func (s *Session) VerifyPending(code string, now time.Time) (*PendingSignup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Pending == nil {
		return nil, ErrNoPending
	}
	if err := s.Pending.Verify(code, now); err != nil {
		if errors.Is(err, ErrOTPExpired) || errors.Is(err, ErrOTPExhausted) {
			s.Pending = nil
		}
		return nil, err
	}
	p := s.Pending
	s.Pending = nil
	return p, nil
}
