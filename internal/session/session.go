// Package session holds the current authenticated identity: at most one at a
// time, restored from the persisted record at startup and re-persisted on
// every change.
package session

import (
	"errors"
	"strings"

	"github.com/cartusagri/storefront/internal/config"
	"github.com/cartusagri/storefront/internal/models"
)

// Precondition failures. All are rejected before any state changes.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmptyField         = errors.New("name, email and password are required")
)

// Storage is the persistence collaborator for the session record.
type Storage interface {
	LoadSession() (*models.User, bool, error)
	SaveSession(*models.User) error
	ClearSession() error
}

// Store answers "who is the current user" and "is the current user an admin".
type Store struct {
	storage Storage
	demo    []config.DemoUser
	current *models.User
}

// New restores the session from storage. A missing or unreadable record
// simply means nobody is logged in.
func New(storage Storage, demo []config.DemoUser) (*Store, error) {
	s := &Store{storage: storage, demo: demo}
	u, ok, err := storage.LoadSession()
	if err != nil {
		return nil, err
	}
	if ok {
		s.current = u
	}
	return s, nil
}

// Current returns the logged-in identity, or nil.
func (s *Store) Current() *models.User {
	return s.current
}

// IsAuthenticated reports whether anybody is logged in.
func (s *Store) IsAuthenticated() bool {
	return s.current != nil
}

// IsAdmin reports whether the current user carries the admin role.
func (s *Store) IsAdmin() bool {
	return s.current.IsAdmin()
}

// Login validates the credentials against the fixed demo allow-list.
// On match the identity becomes current and is persisted; on mismatch the
// session is left untouched and ErrInvalidCredentials is returned.
// Demo authentication only: no hashing, no rate limiting.
func (s *Store) Login(email, password string) (*models.User, error) {
	for _, d := range s.demo {
		if strings.EqualFold(d.Email, email) && d.Password == password {
			u := d.User()
			if err := s.storage.SaveSession(&u); err != nil {
				return nil, err
			}
			s.current = &u
			return &u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Register unconditionally creates a fresh user-role identity, makes it
// current and persists it. Duplicate emails are not checked; identities
// are keyed by id, not email.
func (s *Store) Register(name, email, password string) (*models.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrEmptyField
	}
	u := models.NewUser(name, email)
	if err := s.storage.SaveSession(&u); err != nil {
		return nil, err
	}
	s.current = &u
	return &u, nil
}

// Logout clears the current identity and removes the persisted record.
// Logging out when nobody is logged in is a no-op.
func (s *Store) Logout() error {
	if err := s.storage.ClearSession(); err != nil {
		return err
	}
	s.current = nil
	return nil
}
