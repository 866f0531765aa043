package session

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// Verification codes expire after five minutes and allow three
	// attempts; afterwards the signup has to be restarted.
	OTPTTL         = 5 * time.Minute
	OTPMaxAttempts = 3
)

// UploadEntry is one row of the per-session upload history. Score is only
// set for uploads that went through the resume-score page.
type UploadEntry struct {
	Filename  string `json:"filename"`
	Timestamp string `json:"timestamp"`
	Score     *int   `json:"score,omitempty"`
}

// Record holds everything that lives for exactly one login. It is never
// persisted; logout (or a restart) drops it.
type Record struct {
	LoggedIn     bool
	Username     string
	Email        string
	Phone        string
	AccountType  string
	ProfileImage string

	UploadHistory []UploadEntry
	Questions     []string
	VoiceAnswer   string
}

// Session is a Record plus the manager bookkeeping around it.
type Session struct {
	ID      string
	Record  Record
	Pending *PendingSignup

	mu sync.Mutex
}

// Manager owns all live sessions, keyed by uuid. Safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) Create() *Session {
	s := &Session{
		ID: uuid.NewString(),
		Record: Record{
			AccountType:  "User",
			ProfileImage: "https://cdn-icons-png.flaticon.com/512/3135/3135715.png",
		},
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete clears the whole record. Used by logout.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Update runs fn while holding the session lock. All record mutations go
// through here so handlers never race each other on the same session.
func (s *Session) Update(fn func(r *Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.Record)
}

// Snapshot returns a copy of the record, history included.
func (s *Session) Snapshot() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.Record
	r.UploadHistory = append([]UploadEntry(nil), s.Record.UploadHistory...)
	r.Questions = append([]string(nil), s.Record.Questions...)
	return r
}

// AppendUpload records a new upload at the end of the history.
func (s *Session) AppendUpload(entry UploadEntry) {
	s.Update(func(r *Record) {
		r.UploadHistory = append(r.UploadHistory, entry)
	})
}

// ClearHistory empties the upload history. Only the explicit user action
// calls this.
func (s *Session) ClearHistory() {
	s.Update(func(r *Record) {
		r.UploadHistory = nil
	})
}

// NewOTPCode returns a random 6-digit numeric code.
func NewOTPCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails if the platform source is broken.
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
