// Package chat implements the support-message store. Customers talk to a
// single fixed admin identity; the admin can address any customer. The
// full message log and the widget position persist between sessions.
package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cartusagri/storefront/internal/config"
	"github.com/cartusagri/storefront/internal/models"
)

var (
	// ErrNotAuthenticated is returned by operations that need a current
	// identity when there is none.
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrEmptyMessage is returned by Send when the content is blank.
	ErrEmptyMessage = errors.New("message content is empty")
)

// Storage persists the message log and the widget position.
type Storage interface {
	LoadMessages() ([]models.Message, bool, error)
	SaveMessages([]models.Message) error
	LoadWidgetPosition() (*models.WidgetPosition, bool, error)
	SaveWidgetPosition(*models.WidgetPosition) error
}

// Session exposes the current identity to the store.
type Session interface {
	Current() *models.User
}

// Store routes and persists support messages.
type Store struct {
	storage  Storage
	session  Session
	cfg      config.ChatConfig
	messages []models.Message
}

// New restores the persisted message log.
func New(storage Storage, session Session, cfg config.ChatConfig) (*Store, error) {
	s := &Store{storage: storage, session: session, cfg: cfg}
	msgs, ok, err := storage.LoadMessages()
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if ok {
		s.messages = msgs
	}
	return s, nil
}

// Send appends a message from the current identity. Customers always send
// to the admin regardless of receiverID; the admin sends to receiverID, or
// to the configured default recipient when it is empty.
func (s *Store) Send(content, receiverID string) (*models.Message, error) {
	current := s.session.Current()
	if current == nil {
		return nil, fmt.Errorf("Send: %w", ErrNotAuthenticated)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("Send: %w", ErrEmptyMessage)
	}

	to := s.cfg.AdminID
	if current.IsAdmin() {
		to = receiverID
		if to == "" {
			to = s.cfg.DefaultRecipientID
		}
	}

	msg := models.NewMessage(current.ID, to, content)
	s.messages = append(s.messages, msg)
	if err := s.storage.SaveMessages(s.messages); err != nil {
		return nil, fmt.Errorf("Send: %w", err)
	}
	return &msg, nil
}

// MessagesWith returns, in insertion order, the conversation between the
// current identity and userID. For customers the conversation partner is
// always the admin, whatever userID says. Without a current identity the
// result is empty.
func (s *Store) MessagesWith(userID string) []models.Message {
	current := s.session.Current()
	if current == nil {
		return nil
	}
	other := userID
	if !current.IsAdmin() {
		other = s.cfg.AdminID
	}
	var out []models.Message
	for _, m := range s.messages {
		if (m.SenderID == current.ID && m.ReceiverID == other) ||
			(m.SenderID == other && m.ReceiverID == current.ID) {
			out = append(out, m)
		}
	}
	return out
}

// UnreadCount returns how many messages addressed to the current identity
// are still unread. It is zero when nobody is logged in.
func (s *Store) UnreadCount() int {
	current := s.session.Current()
	if current == nil {
		return 0
	}
	var n int
	for _, m := range s.messages {
		if m.ReceiverID == current.ID && !m.Read {
			n++
		}
	}
	return n
}

// MarkRead flips the read flag on the listed message ids, leaving every
// other message untouched.
func (s *Store) MarkRead(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	changed := false
	for i, m := range s.messages {
		if want[m.ID] && !m.Read {
			s.messages[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := s.storage.SaveMessages(s.messages); err != nil {
		return fmt.Errorf("MarkRead: %w", err)
	}
	return nil
}

// Participants returns the ids of everyone the current identity has
// exchanged messages with, in order of first contact. The admin uses this
// to list open conversations.
func (s *Store) Participants() []string {
	current := s.session.Current()
	if current == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, m := range s.messages {
		var other string
		switch current.ID {
		case m.SenderID:
			other = m.ReceiverID
		case m.ReceiverID:
			other = m.SenderID
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	return out
}

// WidgetPosition returns the persisted widget offset, or ok=false when the
// widget has never been moved.
func (s *Store) WidgetPosition() (models.WidgetPosition, bool, error) {
	pos, ok, err := s.storage.LoadWidgetPosition()
	if err != nil {
		return models.WidgetPosition{}, false, fmt.Errorf("WidgetPosition: %w", err)
	}
	if !ok {
		return models.WidgetPosition{}, false, nil
	}
	return *pos, true, nil
}

// SetWidgetPosition persists the widget offset.
func (s *Store) SetWidgetPosition(pos models.WidgetPosition) error {
	if err := s.storage.SaveWidgetPosition(&pos); err != nil {
		return fmt.Errorf("SetWidgetPosition: %w", err)
	}
	return nil
}
