package session

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadHistoryLifecycle(t *testing.T) {
	m := NewManager()
	sess := m.Create()

	assert.Empty(t, sess.Snapshot().UploadHistory)

	sess.AppendUpload(UploadEntry{Filename: "resume.pdf", Timestamp: "2025-01-02 10:30:00"})

	history := sess.Snapshot().UploadHistory
	require.Len(t, history, 1)
	assert.Equal(t, "resume.pdf", history[0].Filename)
	assert.NotEmpty(t, history[0].Timestamp)

	sess.ClearHistory()
	assert.Empty(t, sess.Snapshot().UploadHistory)
}

func TestUploadHistoryPreservesOrder(t *testing.T) {
	m := NewManager()
	sess := m.Create()

	sess.AppendUpload(UploadEntry{Filename: "first.pdf"})
	sess.AppendUpload(UploadEntry{Filename: "second.pdf"})

	history := sess.Snapshot().UploadHistory
	require.Len(t, history, 2)
	assert.Equal(t, "first.pdf", history[0].Filename)
	assert.Equal(t, "second.pdf", history[1].Filename)
}

func TestManagerDeleteClearsSession(t *testing.T) {
	m := NewManager()
	sess := m.Create()
	sess.Update(func(r *Record) {
		r.LoggedIn = true
		r.Email = "a@b.com"
	})

	m.Delete(sess.ID)

	_, ok := m.Get(sess.ID)
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewManager()
	sess := m.Create()
	sess.AppendUpload(UploadEntry{Filename: "resume.pdf"})

	snap := sess.Snapshot()
	snap.UploadHistory[0].Filename = "mutated.pdf"

	assert.Equal(t, "resume.pdf", sess.Snapshot().UploadHistory[0].Filename)
}

func TestNewSessionDefaults(t *testing.T) {
	m := NewManager()
	sess := m.Create()

	r := sess.Snapshot()
	assert.False(t, r.LoggedIn)
	assert.Equal(t, "User", r.AccountType)
	assert.NotEmpty(t, r.ProfileImage)
}

func TestNewOTPCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code := NewOTPCode()
		assert.Regexp(t, pattern, code)
	}
}

func TestVerifyPendingSuccess(t *testing.T) {
	now := time.Now()
	m := NewManager()
	sess := m.Create()
	sess.SetPending(NewPendingSignup("sam", "sam@example.com", "+911234567890", "hash", "483920", now))

	pending, err := sess.VerifyPending("483920", now)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", pending.Email)
	assert.Equal(t, "hash", pending.PasswordHash)

	// Consumed: a second verify finds nothing pending.
	_, err = sess.VerifyPending("483920", now)
	assert.ErrorIs(t, err, ErrNoPending)
}

func TestVerifyPendingMismatchKeepsPending(t *testing.T) {
	now := time.Now()
	m := NewManager()
	sess := m.Create()
	sess.SetPending(NewPendingSignup("sam", "sam@example.com", "", "hash", "483920", now))

	_, err := sess.VerifyPending("000000", now)
	assert.ErrorIs(t, err, ErrOTPMismatch)

	// Still pending; the right code works afterwards.
	pending, err := sess.VerifyPending("483920", now)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", pending.Email)
}

func TestVerifyPendingAttemptsExhausted(t *testing.T) {
	now := time.Now()
	m := NewManager()
	sess := m.Create()
	sess.SetPending(NewPendingSignup("sam", "sam@example.com", "", "hash", "483920", now))

	_, err := sess.VerifyPending("111111", now)
	assert.ErrorIs(t, err, ErrOTPMismatch)
	_, err = sess.VerifyPending("222222", now)
	assert.ErrorIs(t, err, ErrOTPMismatch)
	_, err = sess.VerifyPending("333333", now)
	assert.ErrorIs(t, err, ErrOTPExhausted)

	// Exhaustion discards the signup, even with the right code.
	_, err = sess.VerifyPending("483920", now)
	assert.ErrorIs(t, err, ErrNoPending)
}

func TestVerifyPendingExpired(t *testing.T) {
	now := time.Now()
	m := NewManager()
	sess := m.Create()
	sess.SetPending(NewPendingSignup("sam", "sam@example.com", "", "hash", "483920", now))

	later := now.Add(OTPTTL + time.Second)
	_, err := sess.VerifyPending("483920", later)
	assert.ErrorIs(t, err, ErrOTPExpired)

	_, err = sess.VerifyPending("483920", now)
	assert.ErrorIs(t, err, ErrNoPending)
}
