package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Sarathkio/resume-bot/internal/models"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("account not found")
)

// Store is the single repository the rest of the app talks to. Handlers
// depend on this interface so the storage engine stays swappable and tests
// can run against an in-memory fake.
type Store interface {
	CreateAccount(account *models.Account) error
	FindByEmail(email string) (*models.Account, error)
	EmailExists(email string) (bool, error)
	Authenticate(email, password string) (*models.Account, error)
	UpdatePassword(email, newPassword string) error
	UpdatePhone(email, newPhone string) error
	UpdateProfilePicture(email, path string) error
}

// HashPassword returns the unsalted sha256 hex digest used for all stored
// passwords. Deterministic, so Authenticate can hash-and-compare.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

type GormStore struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) CreateAccount(account *models.Account) error {
	exists, err := s.EmailExists(account.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateEmail
	}
	// The existence check above is not atomic with the insert; the unique
	// index on email catches the losing side of a concurrent registration.
	if err := s.DB.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *GormStore) FindByEmail(email string) (*models.Account, error) {
	var account models.Account
	err := s.DB.Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *GormStore) EmailExists(email string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) Authenticate(email, password string) (*models.Account, error) {
	var account models.Account
	err := s.DB.Where("email = ? AND password_hash = ?", email, HashPassword(password)).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *GormStore) UpdatePassword(email, newPassword string) error {
	return s.DB.Model(&models.Account{}).Where("email = ?", email).
		Update("password_hash", HashPassword(newPassword)).Error
}

func (s *GormStore) UpdatePhone(email, newPhone string) error {
	return s.DB.Model(&models.Account{}).Where("email = ?", email).
		Update("phone", newPhone).Error
}

func (s *GormStore) UpdateProfilePicture(email, path string) error {
	return s.DB.Model(&models.Account{}).Where("email = ?", email).
		Update("profile_picture", path).Error
}
