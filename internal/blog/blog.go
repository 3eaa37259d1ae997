// Package blog holds the farm-journal posts with their likes and comments.
// New posts go to the front of the list; engagement only ever grows.
package blog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cartusagri/storefront/internal/models"
)

var (
	// ErrNotAuthenticated is returned by mutations that need a current
	// identity when there is none.
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrEmptyField is returned by Add when title or content is blank.
	ErrEmptyField = errors.New("title and content are required")

	// ErrPostNotFound is returned when an id matches no post.
	ErrPostNotFound = errors.New("post not found")
)

// Storage persists the post list.
type Storage interface {
	LoadPosts() ([]models.Blog, bool, error)
	SavePosts([]models.Blog) error
}

// Session exposes the current identity for authorship.
type Session interface {
	Current() *models.User
}

// Store manages the post list, newest first.
type Store struct {
	storage Storage
	session Session
	posts   []models.Blog
}

// New restores the persisted posts.
func New(storage Storage, session Session) (*Store, error) {
	s := &Store{storage: storage, session: session}
	posts, ok, err := storage.LoadPosts()
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if ok {
		s.posts = posts
	}
	return s, nil
}

// Posts returns a copy of the post list, newest first. Tags and comments
// are cloned so mutating a returned post never reaches store state.
func (s *Store) Posts() []models.Blog {
	out := make([]models.Blog, len(s.posts))
	for i, p := range s.posts {
		out[i] = clonePost(p)
	}
	return out
}

// Post returns a single post by id.
func (s *Store) Post(id string) (*models.Blog, error) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			post := clonePost(s.posts[i])
			return &post, nil
		}
	}
	return nil, fmt.Errorf("Post %q: %w", id, ErrPostNotFound)
}

func clonePost(p models.Blog) models.Blog {
	p.Tags = slices.Clone(p.Tags)
	p.Comments = slices.Clone(p.Comments)
	return p
}

// Add publishes a post by the current identity at the front of the list.
func (s *Store) Add(title, content, excerpt string, tags []string, imageURL string) (*models.Blog, error) {
	current := s.session.Current()
	if current == nil {
		return nil, fmt.Errorf("Add: %w", ErrNotAuthenticated)
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("Add: %w", ErrEmptyField)
	}
	if excerpt == "" {
		excerpt = makeExcerpt(content)
	}

	post := models.NewBlog(*current, title, content, excerpt, tags, imageURL)
	s.posts = append([]models.Blog{post}, s.posts...)
	if err := s.storage.SavePosts(s.posts); err != nil {
		return nil, fmt.Errorf("Add: %w", err)
	}
	return &post, nil
}

// Like increments a post's like counter.
func (s *Store) Like(id string) error {
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Likes++
			if err := s.storage.SavePosts(s.posts); err != nil {
				return fmt.Errorf("Like: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("Like %q: %w", id, ErrPostNotFound)
}

// AddComment appends a comment by the current identity to a post.
func (s *Store) AddComment(postID, content string) (*models.Comment, error) {
	current := s.session.Current()
	if current == nil {
		return nil, fmt.Errorf("AddComment: %w", ErrNotAuthenticated)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("AddComment: %w", ErrEmptyField)
	}
	for i := range s.posts {
		if s.posts[i].ID == postID {
			comment := models.NewComment(*current, content)
			s.posts[i].Comments = append(s.posts[i].Comments, comment)
			if err := s.storage.SavePosts(s.posts); err != nil {
				return nil, fmt.Errorf("AddComment: %w", err)
			}
			return &comment, nil
		}
	}
	return nil, fmt.Errorf("AddComment %q: %w", postID, ErrPostNotFound)
}

// makeExcerpt trims the post body to a preview of at most 120 characters,
// cut at a word boundary.
func makeExcerpt(content string) string {
	const max = 120
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
