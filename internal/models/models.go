// Package models defines the core data types for the storefront.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level of a user. There are exactly two.
type Role string

// Valid roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ValidCategories lists the accepted product category values.
var ValidCategories = []string{"whole", "parts", "organs", "processed"}

// User is the identity held for a session. Created at login or registration
// and kept only for the session lifetime plus the persisted session record.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Product is a catalog entry. Immutable from the storefront's point of view:
// there is no write path back to the catalog.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	OldPrice    float64  `json:"oldPrice,omitempty"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	IsOrganic   bool     `json:"isOrganic"`
	IsFreeRange bool     `json:"isFreeRange"`
	Featured    bool     `json:"featured"`
	Sold        int      `json:"sold"`
}

// CartItem pairs a product with a positive quantity.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart holds the line items plus the monetary totals derived from them.
// The derived fields are recomputed from Items after every mutation and are
// never independently settable.
type Cart struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Tax      float64    `json:"tax"`
	Shipping float64    `json:"shipping"`
	Total    float64    `json:"total"`
}

// Message is one entry in the append-only chat log. The only mutation ever
// applied after creation is flipping Read from false to true.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewMessage creates an unread message from sender to receiver stamped now.
func NewMessage(senderID, receiverID, content string) Message {
	return Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Read:       false,
		CreatedAt:  time.Now().UTC(),
	}
}

// Review is a customer rating attached to a product.
type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	ProductID  string    `json:"productId"`
	UserName   string    `json:"userName"`
	UserAvatar string    `json:"userAvatar,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewReview creates a review of a product by the given user, stamped now.
func NewReview(user User, productID string, rating int, comment string) Review {
	return Review{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		ProductID:  productID,
		UserName:   user.Name,
		UserAvatar: user.Avatar,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
}

// Blog is a post with engagement counters. Comments are appended and likes
// incremented; neither is ever removed.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Tags      []string  `json:"tags"`
	Likes     int       `json:"likes"`
	Comments  []Comment `json:"comments"`
}

// NewBlog creates a post by the given author with zero engagement.
func NewBlog(author User, title, content, excerpt string, tags []string, imageURL string) Blog {
	return Blog{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Excerpt:   excerpt,
		Author:    author,
		CreatedAt: time.Now().UTC(),
		ImageURL:  imageURL,
		Tags:      tags,
		Likes:     0,
		Comments:  []Comment{},
	}
}

// Comment is a reply appended to a blog post.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewComment creates a comment by the given author, stamped now.
func NewComment(author User, content string) Comment {
	return Comment{
		ID:        uuid.NewString(),
		Content:   content,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
}

// NewUser creates a fresh identity with the user role. Email collisions
// are not checked; identities are keyed by id, not email.
func NewUser(name, email string) User {
	return User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Role:  RoleUser,
	}
}

// WidgetPosition is the persisted screen offset of the chat widget.
// Presentation-only; not part of the core data model.
type WidgetPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}
