// Package service implements the Storefront orchestrator that wires together
// configuration, database, session, cart, chat, catalog and blog stores.
package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cartusagri/storefront/internal/blog"
	"github.com/cartusagri/storefront/internal/cart"
	"github.com/cartusagri/storefront/internal/catalog"
	"github.com/cartusagri/storefront/internal/chat"
	"github.com/cartusagri/storefront/internal/config"
	"github.com/cartusagri/storefront/internal/db"
	"github.com/cartusagri/storefront/internal/session"
	"github.com/cartusagri/storefront/internal/setup"
	"github.com/cartusagri/storefront/internal/stats"
)

// Service holds one fully wired storefront rooted at StoreHome.
type Service struct {
	StoreHome string
	Config    *config.StoreConfig

	database *db.DB

	Session *session.Store
	Cart    *cart.Store
	Chat    *chat.Store
	Catalog *catalog.Store
	Blog    *blog.Store
}

// New initialises a Service rooted at storeHome.
// If storeHome is empty it is resolved via config.GetStoreHome.
func New(storeHome string) (*Service, error) {
	if storeHome == "" {
		storeHome = config.GetStoreHome()
	}

	if err := os.MkdirAll(storeHome, 0o755); err != nil {
		return nil, fmt.Errorf("service.New: create store home: %w", err)
	}

	cfg, err := config.Load(filepath.Join(storeHome, "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}

	database, err := db.Open(filepath.Join(storeHome, "store.db"))
	if err != nil {
		return nil, fmt.Errorf("service.New: open db: %w", err)
	}

	if err := setup.EnsureSeedData(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("service.New: seed data: %w", err)
	}

	sessionStore, err := session.New(database, cfg.DemoUsers)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("service.New: session store: %w", err)
	}
	cartStore, err := cart.New(database, cfg.Pricing)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("service.New: cart store: %w", err)
	}
	chatStore, err := chat.New(database, sessionStore, cfg.Chat)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("service.New: chat store: %w", err)
	}
	blogStore, err := blog.New(database, sessionStore)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("service.New: blog store: %w", err)
	}

	return &Service{
		StoreHome: storeHome,
		Config:    cfg,
		database:  database,
		Session:   sessionStore,
		Cart:      cartStore,
		Chat:      chatStore,
		Catalog:   catalog.New(database, sessionStore),
		Blog:      blogStore,
	}, nil
}

// Close releases all resources held by the service.
func (s *Service) Close() error {
	return s.database.Close()
}

// Stats assembles the admin dashboard report with the top n sellers.
func (s *Service) Stats(topN int) (*stats.Report, error) {
	products, err := s.database.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("Stats: %w", err)
	}
	reviewCount, err := s.database.CountReviews()
	if err != nil {
		return nil, fmt.Errorf("Stats: %w", err)
	}

	return &stats.Report{
		ProductCount:   len(products),
		ReviewCount:    reviewCount,
		PostCount:      len(s.Blog.Posts()),
		InventoryValue: stats.InventoryValue(products),
		UnreadMessages: s.Chat.UnreadCount(),
		TopSelling:     stats.TopSelling(products, topN),
	}, nil
}
