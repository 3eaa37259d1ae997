package blog_test

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	qt "github.com/frankban/quicktest"

	"github.com/cartusagri/storefront/internal/blog"
	"github.com/cartusagri/storefront/internal/db"
	"github.com/cartusagri/storefront/internal/models"
)

type fakeSession struct {
	user *models.User
}

func (f *fakeSession) Current() *models.User { return f.user }

var maria = &models.User{ID: "3", Name: "Maria Johnson", Email: "maria@cartusagri.com", Role: models.RoleUser}

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("openTestDB: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func newStore(t *testing.T, d *db.DB, sess *fakeSession) *blog.Store {
	t.Helper()
	s, err := blog.New(d, sess)
	if err != nil {
		t.Fatalf("blog.New: %v", err)
	}
	return s
}

func TestAdd_NewestFirst(t *testing.T) {
	c := qt.New(t)
	s := newStore(t, openTestDB(t), &fakeSession{user: maria})

	first, err := s.Add("Raising Free-Range Chickens", "A complete guide to pasture life.", "", []string{"farming"}, "")
	c.Assert(err, qt.IsNil)
	second, err := s.Add("Seasonal Recipes", "Making the most of your chicken.", "", nil, "")
	c.Assert(err, qt.IsNil)

	posts := s.Posts()
	c.Assert(posts, qt.HasLen, 2)
	c.Assert(posts[0].ID, qt.Equals, second.ID)
	c.Assert(posts[1].ID, qt.Equals, first.ID)
	c.Assert(posts[0].Author.Name, qt.Equals, "Maria Johnson")
	c.Assert(posts[0].Likes, qt.Equals, 0)
}

func TestAdd_Preconditions(t *testing.T) {
	c := qt.New(t)
	sess := &fakeSession{}
	s := newStore(t, openTestDB(t), sess)

	_, err := s.Add("title", "content", "", nil, "")
	c.Assert(err, qt.ErrorIs, blog.ErrNotAuthenticated)

	sess.user = maria
	_, err = s.Add("  ", "content", "", nil, "")
	c.Assert(err, qt.ErrorIs, blog.ErrEmptyField)
	_, err = s.Add("title", "", "", nil, "")
	c.Assert(err, qt.ErrorIs, blog.ErrEmptyField)
	c.Assert(s.Posts(), qt.HasLen, 0)
}

func TestAdd_DerivesExcerpt(t *testing.T) {
	c := qt.New(t)
	s := newStore(t, openTestDB(t), &fakeSession{user: maria})

	long := strings.Repeat("pasture-raised birds need room to roam ", 10)
	post, err := s.Add("Space", long, "", nil, "")
	c.Assert(err, qt.IsNil)
	c.Assert(len(post.Excerpt) <= 124, qt.IsTrue)
	c.Assert(strings.HasSuffix(post.Excerpt, "..."), qt.IsTrue)

	// An explicit excerpt is kept as-is.
	post, err = s.Add("Short", long, "hand-written preview", nil, "")
	c.Assert(err, qt.IsNil)
	c.Assert(post.Excerpt, qt.Equals, "hand-written preview")
}

func TestAdd_ExcerptNeverSplitsRune(t *testing.T) {
	c := qt.New(t)
	s := newStore(t, openTestDB(t), &fakeSession{user: maria})

	// No spaces in the first 120 runes, so the cut lands mid-word.
	post, err := s.Add("放牧", strings.Repeat("散养鸡需要空间", 30), "", nil, "")
	c.Assert(err, qt.IsNil)
	c.Assert(utf8.ValidString(post.Excerpt), qt.IsTrue)
	c.Assert(strings.HasSuffix(post.Excerpt, "..."), qt.IsTrue)
	c.Assert(len([]rune(post.Excerpt)) <= 123, qt.IsTrue)
}

func TestPosts_ReturnsDeepCopies(t *testing.T) {
	c := qt.New(t)
	s := newStore(t, openTestDB(t), &fakeSession{user: maria})

	post, err := s.Add("Feed", "On organic feed.", "", []string{"feed"}, "")
	c.Assert(err, qt.IsNil)
	_, err = s.AddComment(post.ID, "Looks great.")
	c.Assert(err, qt.IsNil)

	got := s.Posts()
	got[0].Tags[0] = "clobbered"
	got[0].Comments[0].Content = "clobbered"
	got[0].Comments = append(got[0].Comments, models.Comment{ID: "ghost"})

	byID, err := s.Post(post.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(byID.Tags, qt.DeepEquals, []string{"feed"})
	c.Assert(byID.Comments, qt.HasLen, 1)
	c.Assert(byID.Comments[0].Content, qt.Equals, "Looks great.")

	byID.Comments[0].Content = "clobbered"
	again, err := s.Post(post.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(again.Comments[0].Content, qt.Equals, "Looks great.")
}

func TestLike(t *testing.T) {
	c := qt.New(t)
	s := newStore(t, openTestDB(t), &fakeSession{user: maria})

	post, err := s.Add("Feed", "On organic feed.", "", nil, "")
	c.Assert(err, qt.IsNil)

	c.Assert(s.Like(post.ID), qt.IsNil)
	c.Assert(s.Like(post.ID), qt.IsNil)
	got, err := s.Post(post.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Likes, qt.Equals, 2)

	c.Assert(s.Like("ghost"), qt.ErrorIs, blog.ErrPostNotFound)
}

func TestAddComment(t *testing.T) {
	c := qt.New(t)
	sess := &fakeSession{user: maria}
	s := newStore(t, openTestDB(t), sess)

	post, err := s.Add("Feed", "On organic feed.", "", nil, "")
	c.Assert(err, qt.IsNil)

	sess.user = &models.User{ID: "7", Name: "Thomas Wright", Role: models.RoleUser}
	comment, err := s.AddComment(post.ID, "Very helpful, thanks!")
	c.Assert(err, qt.IsNil)
	c.Assert(comment.Author.Name, qt.Equals, "Thomas Wright")

	got, err := s.Post(post.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Comments, qt.HasLen, 1)
	c.Assert(got.Comments[0].Content, qt.Equals, "Very helpful, thanks!")

	sess.user = nil
	_, err = s.AddComment(post.ID, "anon")
	c.Assert(err, qt.ErrorIs, blog.ErrNotAuthenticated)

	sess.user = maria
	_, err = s.AddComment("ghost", "hello")
	c.Assert(err, qt.ErrorIs, blog.ErrPostNotFound)
}

func TestPosts_RestoredAcrossRestart(t *testing.T) {
	c := qt.New(t)
	d := openTestDB(t)
	sess := &fakeSession{user: maria}

	s := newStore(t, d, sess)
	post, err := s.Add("Feed", "On organic feed.", "", []string{"feed", "organic"}, "")
	c.Assert(err, qt.IsNil)
	c.Assert(s.Like(post.ID), qt.IsNil)

	again := newStore(t, d, sess)
	posts := again.Posts()
	c.Assert(posts, qt.HasLen, 1)
	c.Assert(posts[0].Likes, qt.Equals, 1)
	c.Assert(posts[0].Tags, qt.DeepEquals, []string{"feed", "organic"})
}
