// Package catalog exposes the product listing, full-text search and
// customer reviews.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cartusagri/storefront/internal/models"
)

var (
	// ErrProductNotFound is returned when an id matches no product.
	ErrProductNotFound = errors.New("product not found")

	// ErrNotAuthenticated is returned by AddReview when nobody is
	// logged in.
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrInvalidRating is returned when a review rating falls outside
	// the 1 to 5 range.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Storage is the product and review persistence layer.
type Storage interface {
	GetProduct(id string) (*models.Product, bool, error)
	ListProducts() ([]models.Product, error)
	ListFeatured() ([]models.Product, error)
	ListByCategory(category string) ([]models.Product, error)
	BestSellers(limit int) ([]models.Product, error)
	SearchProducts(query string, limit int) ([]models.Product, error)
	InsertReview(r *models.Review) error
	ReviewsForProduct(productID string) ([]models.Review, error)
}

// Session exposes the current identity for review attribution.
type Session interface {
	Current() *models.User
}

// Store answers catalog queries and records reviews.
type Store struct {
	storage Storage
	session Session
}

func New(storage Storage, session Session) *Store {
	return &Store{storage: storage, session: session}
}

// All returns every product in catalog order.
func (s *Store) All() ([]models.Product, error) {
	products, err := s.storage.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("All: %w", err)
	}
	return products, nil
}

// ByID returns a single product.
func (s *Store) ByID(id string) (*models.Product, error) {
	p, ok, err := s.storage.GetProduct(id)
	if err != nil {
		return nil, fmt.Errorf("ByID: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("ByID %q: %w", id, ErrProductNotFound)
	}
	return p, nil
}

// Featured returns the products flagged for the landing page.
func (s *Store) Featured() ([]models.Product, error) {
	products, err := s.storage.ListFeatured()
	if err != nil {
		return nil, fmt.Errorf("Featured: %w", err)
	}
	return products, nil
}

// ByCategory returns the products in one category.
func (s *Store) ByCategory(category string) ([]models.Product, error) {
	products, err := s.storage.ListByCategory(category)
	if err != nil {
		return nil, fmt.Errorf("ByCategory: %w", err)
	}
	return products, nil
}

// BestSellers returns up to limit products ordered by units sold.
func (s *Store) BestSellers(limit int) ([]models.Product, error) {
	products, err := s.storage.BestSellers(limit)
	if err != nil {
		return nil, fmt.Errorf("BestSellers: %w", err)
	}
	return products, nil
}

// Search runs a full-text query over product names, descriptions and
// categories. A blank query returns no results.
func (s *Store) Search(query string, limit int) ([]models.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	products, err := s.storage.SearchProducts(query, limit)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	return products, nil
}

// Reviews returns a product's reviews in submission order.
func (s *Store) Reviews(productID string) ([]models.Review, error) {
	reviews, err := s.storage.ReviewsForProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("Reviews: %w", err)
	}
	return reviews, nil
}

// AddReview records a review by the current identity. The product must
// exist and the rating must be 1 to 5.
func (s *Store) AddReview(productID string, rating int, comment string) (*models.Review, error) {
	current := s.session.Current()
	if current == nil {
		return nil, fmt.Errorf("AddReview: %w", ErrNotAuthenticated)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("AddReview: %w", ErrInvalidRating)
	}
	p, ok, err := s.storage.GetProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("AddReview: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("AddReview %q: %w", productID, ErrProductNotFound)
	}

	r := models.NewReview(*current, p.ID, rating, comment)
	if err := s.storage.InsertReview(&r); err != nil {
		return nil, fmt.Errorf("AddReview: %w", err)
	}
	return &r, nil
}
