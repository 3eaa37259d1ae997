package chat_test

import (
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/cartusagri/storefront/internal/chat"
	"github.com/cartusagri/storefront/internal/config"
	"github.com/cartusagri/storefront/internal/db"
	"github.com/cartusagri/storefront/internal/models"
)

// fakeSession lets tests swap the current identity without a full login
// round-trip.
type fakeSession struct {
	user *models.User
}

func (f *fakeSession) Current() *models.User { return f.user }

var (
	adminUser = &models.User{ID: "1", Name: "Admin User", Email: "admin@cartusagri.com", Role: models.RoleAdmin}
	johnUser  = &models.User{ID: "2", Name: "John Doe", Email: "user@example.com", Role: models.RoleUser}
	janeUser  = &models.User{ID: "9", Name: "Jane Farmer", Email: "jane@example.com", Role: models.RoleUser}
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("openTestDB: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func newStore(t *testing.T, d *db.DB, sess *fakeSession) *chat.Store {
	t.Helper()
	s, err := chat.New(d, sess, config.Default().Chat)
	if err != nil {
		t.Fatalf("chat.New: %v", err)
	}
	return s
}

// ---------------------------------------------------------------------------
// Send
// ---------------------------------------------------------------------------

func TestSend_CustomerAlwaysReachesAdmin(t *testing.T) {
	c := qt.New(t)
	s := newStore(t, openTestDB(t), &fakeSession{user: johnUser})

	// The explicit receiver is ignored for customers.
	msg, err := s.Send("is the liver fresh?", "9")
	c.Assert(err, qt.IsNil)
	c.Assert(msg.SenderID, qt.Equals, "2")
	c.Assert(msg.ReceiverID, qt.Equals, "1")
	c.Assert(msg.Read, qt.IsFalse)
}

func TestSend_AdminRouting(t *testing.T) {
	c := qt.New(t)
	s := newStore(t, openTestDB(t), &fakeSession{user: adminUser})

	msg, err := s.Send("your order shipped", "9")
	c.Assert(err, qt.IsNil)
	c.Assert(msg.ReceiverID, qt.Equals, "9")

	// No receiver falls back to the default recipient.
	msg, err = s.Send("anyone there?", "")
	c.Assert(err, qt.IsNil)
	c.Assert(msg.ReceiverID, qt.Equals, "2")
}

func TestSend_Preconditions(t *testing.T) {
	c := qt.New(t)
	sess := &fakeSession{}
	s := newStore(t, openTestDB(t), sess)

	_, err := s.Send("hello", "")
	c.Assert(err, qt.ErrorIs, chat.ErrNotAuthenticated)

	sess.user = johnUser
	_, err = s.Send("   ", "")
	c.Assert(err, qt.ErrorIs, chat.ErrEmptyMessage)
}

// ---------------------------------------------------------------------------
// Conversations
// ---------------------------------------------------------------------------

func TestMessagesWith_PairsConversation(t *testing.T) {
	c := qt.New(t)
	d := openTestDB(t)
	sess := &fakeSession{user: johnUser}
	s := newStore(t, d, sess)

	_, err := s.Send("hello", "")
	c.Assert(err, qt.IsNil)

	sess.user = adminUser
	_, err = s.Send("hi John", "2")
	c.Assert(err, qt.IsNil)
	_, err = s.Send("welcome Jane", "9")
	c.Assert(err, qt.IsNil)

	// The admin sees only the John thread when asking for it.
	got := s.MessagesWith("2")
	c.Assert(got, qt.HasLen, 2)
	c.Assert(got[0].Content, qt.Equals, "hello")
	c.Assert(got[1].Content, qt.Equals, "hi John")

	// John sees the same thread whatever id he asks for.
	sess.user = johnUser
	c.Assert(s.MessagesWith("9"), qt.HasLen, 2)

	// Jane sees only her own thread.
	sess.user = janeUser
	got = s.MessagesWith("")
	c.Assert(got, qt.HasLen, 1)
	c.Assert(got[0].Content, qt.Equals, "welcome Jane")

	// No identity, no messages.
	sess.user = nil
	c.Assert(s.MessagesWith("2"), qt.HasLen, 0)
}

func TestParticipants_OrderOfFirstContact(t *testing.T) {
	c := qt.New(t)
	sess := &fakeSession{user: adminUser}
	s := newStore(t, openTestDB(t), sess)

	_, err := s.Send("hi John", "2")
	c.Assert(err, qt.IsNil)
	_, err = s.Send("hi Jane", "9")
	c.Assert(err, qt.IsNil)
	_, err = s.Send("still there?", "2")
	c.Assert(err, qt.IsNil)

	c.Assert(s.Participants(), qt.DeepEquals, []string{"2", "9"})

	sess.user = johnUser
	c.Assert(s.Participants(), qt.DeepEquals, []string{"1"})
}

// ---------------------------------------------------------------------------
// Read tracking
// ---------------------------------------------------------------------------

func TestUnreadCount_AfterReload(t *testing.T) {
	c := qt.New(t)
	d := openTestDB(t)
	sess := &fakeSession{user: johnUser}
	s := newStore(t, d, sess)

	_, err := s.Send("one", "")
	c.Assert(err, qt.IsNil)

	sess.user = adminUser
	c.Assert(s.UnreadCount(), qt.Equals, 1)
	_, err = s.Send("reply", "2")
	c.Assert(err, qt.IsNil)

	// A fresh store over the same storage recounts identically.
	again := newStore(t, d, &fakeSession{user: adminUser})
	c.Assert(again.UnreadCount(), qt.Equals, 1)

	again = newStore(t, d, &fakeSession{user: johnUser})
	c.Assert(again.UnreadCount(), qt.Equals, 1)

	again = newStore(t, d, &fakeSession{})
	c.Assert(again.UnreadCount(), qt.Equals, 0)
}

func TestMarkRead_OnlyListedIDs(t *testing.T) {
	c := qt.New(t)
	d := openTestDB(t)
	sess := &fakeSession{user: johnUser}
	s := newStore(t, d, sess)

	m1, err := s.Send("one", "")
	c.Assert(err, qt.IsNil)
	m2, err := s.Send("two", "")
	c.Assert(err, qt.IsNil)

	sess.user = adminUser
	before := s.MessagesWith("2")
	c.Assert(s.MarkRead([]string{m1.ID}), qt.IsNil)

	after := s.MessagesWith("2")
	c.Assert(after[0].Read, qt.IsTrue)
	c.Assert(after[1].Read, qt.IsFalse)
	c.Assert(s.UnreadCount(), qt.Equals, 1)

	// Every field other than the flipped flag is untouched.
	before[0].Read = true
	c.Assert(after, qt.DeepEquals, before)

	// Unknown ids are ignored, and the change survives a reload.
	c.Assert(s.MarkRead([]string{"ghost", m2.ID}), qt.IsNil)
	again := newStore(t, d, &fakeSession{user: adminUser})
	c.Assert(again.UnreadCount(), qt.Equals, 0)
}

// ---------------------------------------------------------------------------
// Widget position
// ---------------------------------------------------------------------------

func TestWidgetPosition_RoundTrip(t *testing.T) {
	c := qt.New(t)
	s := newStore(t, openTestDB(t), &fakeSession{user: johnUser})

	_, ok, err := s.WidgetPosition()
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)

	c.Assert(s.SetWidgetPosition(models.WidgetPosition{X: 24, Y: 160}), qt.IsNil)

	pos, ok, err := s.WidgetPosition()
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
	c.Assert(pos, qt.Equals, models.WidgetPosition{X: 24, Y: 160})
}
