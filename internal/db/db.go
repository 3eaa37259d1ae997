// Package db manages the SQLite database backing the storefront: a key-value
// state table for the persisted session/cart/chat records and relational
// catalog tables with an FTS5 index for product search.
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql

	"github.com/cartusagri/storefront/internal/models"
)

// Persisted state keys. The names match the records the storefront has
// always written, so existing state files keep loading after upgrades.
const (
	stateKeySession   = "user"
	stateKeyCart      = "cart"
	stateKeyMessages  = "chatMessages"
	stateKeyPosts     = "blogs"
	stateKeyWidgetPos = "chatPosition"
)

// DB wraps a *sql.DB with the path it was opened from.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the SQLite database at path and initialises the schema.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("db.Open: %w", err)
	}
	d := &DB{db: sqldb, path: path}
	if err := d.createSchema(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("db.Open createSchema: %w", err)
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func (d *DB) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			rowid         INTEGER PRIMARY KEY AUTOINCREMENT,
			id            TEXT UNIQUE NOT NULL,
			name          TEXT NOT NULL,
			description   TEXT NOT NULL,
			price         REAL NOT NULL,
			old_price     REAL NOT NULL DEFAULT 0,
			image         TEXT NOT NULL DEFAULT '',
			images        TEXT NOT NULL DEFAULT '[]',
			category      TEXT NOT NULL,
			stock         INTEGER NOT NULL DEFAULT 0,
			rating        REAL NOT NULL DEFAULT 0,
			review_count  INTEGER NOT NULL DEFAULT 0,
			is_organic    INTEGER NOT NULL DEFAULT 0,
			is_free_range INTEGER NOT NULL DEFAULT 0,
			featured      INTEGER NOT NULL DEFAULT 0,
			sold          INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			rowid       INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT UNIQUE NOT NULL,
			product_id  TEXT NOT NULL REFERENCES products(id),
			user_id     TEXT NOT NULL,
			user_name   TEXT NOT NULL,
			user_avatar TEXT NOT NULL DEFAULT '',
			rating      INTEGER NOT NULL,
			comment     TEXT NOT NULL,
			created_at  TEXT NOT NULL
		)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS products_fts USING fts5(
			name, description, category,
			content='products', content_rowid='rowid',
			tokenize='porter unicode61'
		)`,
		`CREATE TRIGGER IF NOT EXISTS products_ai AFTER INSERT ON products BEGIN
			INSERT INTO products_fts(rowid, name, description, category)
			VALUES (new.rowid, new.name, new.description, new.category);
		END`,
		`CREATE TRIGGER IF NOT EXISTS products_ad AFTER DELETE ON products BEGIN
			INSERT INTO products_fts(products_fts, rowid, name, description, category)
			VALUES ('delete', old.rowid, old.name, old.description, old.category);
		END`,
	}

	for _, s := range stmts {
		if _, err := d.db.Exec(s); err != nil {
			return fmt.Errorf("createSchema exec: %w\nSQL: %s", err, s)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// State records
// ---------------------------------------------------------------------------

// getState returns the raw JSON value for key, or ok=false when absent.
func (d *DB) getState(key string) ([]byte, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getState %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// setState writes the raw JSON value for key, replacing any previous value.
func (d *DB) setState(key string, value []byte) error {
	_, err := d.db.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("setState %q: %w", key, err)
	}
	return nil
}

// deleteState removes the record for key. Missing keys are not an error.
func (d *DB) deleteState(key string) error {
	if _, err := d.db.Exec(`DELETE FROM state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleteState %q: %w", key, err)
	}
	return nil
}

// loadState unmarshals the record for key into dst.
// A record that fails to parse is logged and treated as absent, never fatal.
func (d *DB) loadState(key string, dst any) (bool, error) {
	raw, ok, err := d.getState(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Warn("discarding unreadable state record", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

// saveState marshals src and persists it under key.
func (d *DB) saveState(key string, src any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("saveState %q: %w", key, err)
	}
	return d.setState(key, raw)
}

// LoadSession returns the persisted session identity, if any.
func (d *DB) LoadSession() (*models.User, bool, error) {
	var u models.User
	ok, err := d.loadState(stateKeySession, &u)
	if err != nil || !ok {
		return nil, false, err
	}
	return &u, true, nil
}

// SaveSession persists the session identity.
func (d *DB) SaveSession(u *models.User) error {
	return d.saveState(stateKeySession, u)
}

// ClearSession removes the persisted session identity.
func (d *DB) ClearSession() error {
	return d.deleteState(stateKeySession)
}

// LoadCart returns the persisted cart, if any.
func (d *DB) LoadCart() (*models.Cart, bool, error) {
	var cart models.Cart
	ok, err := d.loadState(stateKeyCart, &cart)
	if err != nil || !ok {
		return nil, false, err
	}
	return &cart, true, nil
}

// SaveCart persists the full cart, items and totals.
func (d *DB) SaveCart(cart *models.Cart) error {
	return d.saveState(stateKeyCart, cart)
}

// LoadMessages returns the persisted chat log, if any, in insertion order.
func (d *DB) LoadMessages() ([]models.Message, bool, error) {
	var msgs []models.Message
	ok, err := d.loadState(stateKeyMessages, &msgs)
	if err != nil || !ok {
		return nil, false, err
	}
	return msgs, true, nil
}

// SaveMessages persists the full chat log.
func (d *DB) SaveMessages(msgs []models.Message) error {
	return d.saveState(stateKeyMessages, msgs)
}

// LoadPosts returns the persisted blog posts, if any, newest first.
func (d *DB) LoadPosts() ([]models.Blog, bool, error) {
	var posts []models.Blog
	ok, err := d.loadState(stateKeyPosts, &posts)
	if err != nil || !ok {
		return nil, false, err
	}
	return posts, true, nil
}

// SavePosts persists the full blog post list.
func (d *DB) SavePosts(posts []models.Blog) error {
	return d.saveState(stateKeyPosts, posts)
}

// LoadWidgetPosition returns the persisted chat widget offset, if any.
func (d *DB) LoadWidgetPosition() (*models.WidgetPosition, bool, error) {
	var pos models.WidgetPosition
	ok, err := d.loadState(stateKeyWidgetPos, &pos)
	if err != nil || !ok {
		return nil, false, err
	}
	return &pos, true, nil
}

// SaveWidgetPosition persists the chat widget offset.
func (d *DB) SaveWidgetPosition(pos *models.WidgetPosition) error {
	return d.saveState(stateKeyWidgetPos, pos)
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

const productCols = `id, name, description, price, old_price, image, images,
	category, stock, rating, review_count, is_organic, is_free_range, featured, sold`

// Same column list qualified for joins against the FTS table, where the
// name/description/category columns would otherwise be ambiguous.
const productColsPrefixed = `p.id, p.name, p.description, p.price, p.old_price, p.image, p.images,
	p.category, p.stock, p.rating, p.review_count, p.is_organic, p.is_free_range, p.featured, p.sold`

// InsertProduct adds a product to the catalog. Used only by seeding; the
// storefront itself has no write path into the catalog.
func (d *DB) InsertProduct(p *models.Product) error {
	imagesJSON, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(`
		INSERT INTO products (`+productCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.OldPrice, p.Image,
		string(imagesJSON), p.Category, p.Stock, p.Rating, p.ReviewCount,
		boolToInt(p.IsOrganic), boolToInt(p.IsFreeRange), boolToInt(p.Featured), p.Sold,
	)
	if err != nil {
		return fmt.Errorf("InsertProduct: %w", err)
	}
	return nil
}

// CountProducts returns the number of catalog entries.
func (d *DB) CountProducts() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountProducts: %w", err)
	}
	return n, nil
}

// GetProduct fetches a single product by exact ID.
func (d *DB) GetProduct(id string) (*models.Product, bool, error) {
	row := d.db.QueryRow(`SELECT `+productCols+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("GetProduct: %w", err)
	}
	return p, true, nil
}

// ListProducts returns the whole catalog in insertion order.
func (d *DB) ListProducts() ([]models.Product, error) {
	return d.queryProducts(`SELECT ` + productCols + ` FROM products ORDER BY rowid`)
}

// ListFeatured returns products with the featured flag, in insertion order.
func (d *DB) ListFeatured() ([]models.Product, error) {
	return d.queryProducts(`SELECT ` + productCols + ` FROM products WHERE featured = 1 ORDER BY rowid`)
}

// ListByCategory returns products in the given category tag, in insertion order.
func (d *DB) ListByCategory(category string) ([]models.Product, error) {
	return d.queryProducts(
		`SELECT `+productCols+` FROM products WHERE category = ? ORDER BY rowid`, category)
}

// BestSellers returns the top limit products by cumulative units sold.
func (d *DB) BestSellers(limit int) ([]models.Product, error) {
	return d.queryProducts(
		`SELECT `+productCols+` FROM products ORDER BY sold DESC, rowid LIMIT ?`, limit)
}

// SearchProducts performs a BM25 full-text search over the catalog.
func (d *DB) SearchProducts(query string, limit int) ([]models.Product, error) {
	if query == "" {
		return nil, nil
	}

	// Build "term1"* OR "term2"* FTS5 query.
	terms := strings.Fields(query)
	ftsParts := make([]string, len(terms))
	for i, t := range terms {
		ftsParts[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"*`
	}
	ftsQuery := strings.Join(ftsParts, " OR ")

	return d.queryProducts(`
		SELECT `+productColsPrefixed+`
		FROM products_fts fts
		JOIN products p ON p.rowid = fts.rowid
		WHERE fts.products_fts MATCH ?
		ORDER BY fts.rank
		LIMIT ?`, ftsQuery, limit)
}

func (d *DB) queryProducts(query string, args ...any) ([]models.Product, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("queryProducts: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("queryProducts scan: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("queryProducts rows: %w", err)
	}
	return products, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*models.Product, error) {
	var p models.Product
	var imagesJSON string
	var organic, freeRange, featured int
	err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.OldPrice, &p.Image,
		&imagesJSON, &p.Category, &p.Stock, &p.Rating, &p.ReviewCount,
		&organic, &freeRange, &featured, &p.Sold,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(imagesJSON), &p.Images); err != nil {
		slog.Warn("discarding unreadable product image list", "product", p.ID, "err", err)
		p.Images = nil
	}
	p.IsOrganic = organic != 0
	p.IsFreeRange = freeRange != 0
	p.Featured = featured != 0
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ---------------------------------------------------------------------------
// Reviews
// ---------------------------------------------------------------------------

// InsertReview appends a review. Reviews are never updated or removed.
func (d *DB) InsertReview(r *models.Review) error {
	_, err := d.db.Exec(`
		INSERT INTO reviews (id, product_id, user_id, user_name, user_avatar, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ProductID, r.UserID, r.UserName, r.UserAvatar,
		r.Rating, r.Comment, r.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("InsertReview: %w", err)
	}
	return nil
}

// ReviewsForProduct returns all reviews of a product in insertion order.
func (d *DB) ReviewsForProduct(productID string) ([]models.Review, error) {
	rows, err := d.db.Query(`
		SELECT id, product_id, user_id, user_name, user_avatar, rating, comment, created_at
		FROM reviews WHERE product_id = ? ORDER BY rowid`, productID)
	if err != nil {
		return nil, fmt.Errorf("ReviewsForProduct: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("ReviewsForProduct scan: %w", err)
		}
		reviews = append(reviews, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ReviewsForProduct rows: %w", err)
	}
	return reviews, nil
}

// CountReviews returns the total number of reviews across all products.
func (d *DB) CountReviews() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT count(*) FROM reviews`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountReviews: %w", err)
	}
	return n, nil
}

func scanReview(s scanner) (*models.Review, error) {
	var r models.Review
	var createdAt string
	err := s.Scan(
		&r.ID, &r.ProductID, &r.UserID, &r.UserName, &r.UserAvatar,
		&r.Rating, &r.Comment, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
