// Package config handles configuration loading and store home resolution.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cartusagri/storefront/internal/models"
)

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// PricingConfig holds the constants the cart derives its totals from.
type PricingConfig struct {
	TaxRate          float64 `yaml:"tax_rate"`           // fraction of subtotal
	ShippingFee      float64 `yaml:"shipping_fee"`       // flat fee below the threshold
	FreeShippingOver float64 `yaml:"free_shipping_over"` // shipping waived when subtotal exceeds this
}

// ChatConfig names the fixed identities the message store routes around.
// They are configuration, not literals in business logic.
type ChatConfig struct {
	AdminID            string `yaml:"admin_id"`             // all non-admin messages go here
	DefaultRecipientID string `yaml:"default_recipient_id"` // admin fallback when no receiver is given
}

// DemoUser is one entry of the fixed login allow-list. Passwords are stored
// in the clear: this is demo authentication, not a production credential
// store.
type DemoUser struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Avatar   string `yaml:"avatar"`
}

// User converts the allow-list entry into a session identity.
func (d DemoUser) User() models.User {
	role := models.RoleUser
	if d.Role == string(models.RoleAdmin) {
		role = models.RoleAdmin
	}
	return models.User{ID: d.ID, Name: d.Name, Email: d.Email, Role: role, Avatar: d.Avatar}
}

// StoreConfig is the root per-store configuration.
type StoreConfig struct {
	Pricing   PricingConfig `yaml:"pricing"`
	Chat      ChatConfig    `yaml:"chat"`
	DemoUsers []DemoUser    `yaml:"demo_users"`
}

// Default returns a StoreConfig populated with the storefront's stock
// settings: 8% tax, a 12.99 flat shipping fee waived above a 100 subtotal,
// and the two demo identities.
func Default() *StoreConfig {
	return &StoreConfig{
		Pricing: PricingConfig{
			TaxRate:          0.08,
			ShippingFee:      12.99,
			FreeShippingOver: 100,
		},
		Chat: ChatConfig{
			AdminID:            "1",
			DefaultRecipientID: "2",
		},
		DemoUsers: []DemoUser{
			{
				ID:       "1",
				Name:     "Admin User",
				Email:    "admin@cartusagri.com",
				Password: "admin123",
				Role:     string(models.RoleAdmin),
			},
			{
				ID:       "2",
				Name:     "John Doe",
				Email:    "user@example.com",
				Password: "user123",
				Role:     string(models.RoleUser),
			},
		},
	}
}

// Load reads a per-store config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values; a demo_users list replaces the
// default allow-list wholesale.
func Load(path string) (*StoreConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if pricing, ok := raw["pricing"].(map[string]any); ok {
		if v, ok := asFloat(pricing["tax_rate"]); ok {
			cfg.Pricing.TaxRate = v
		}
		if v, ok := asFloat(pricing["shipping_fee"]); ok {
			cfg.Pricing.ShippingFee = v
		}
		if v, ok := asFloat(pricing["free_shipping_over"]); ok {
			cfg.Pricing.FreeShippingOver = v
		}
	}

	if chat, ok := raw["chat"].(map[string]any); ok {
		if v, ok := chat["admin_id"].(string); ok && v != "" {
			cfg.Chat.AdminID = v
		}
		if v, ok := chat["default_recipient_id"].(string); ok && v != "" {
			cfg.Chat.DefaultRecipientID = v
		}
	}

	if _, ok := raw["demo_users"]; ok {
		var full struct {
			DemoUsers []DemoUser `yaml:"demo_users"`
		}
		if err := yaml.Unmarshal(data, &full); err == nil && len(full.DemoUsers) > 0 {
			cfg.DemoUsers = full.DemoUsers
		}
	}

	return cfg, nil
}

// asFloat accepts the numeric types yaml.v3 produces for bare numbers.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// Store home resolution
// ---------------------------------------------------------------------------

// globalConfigPath returns the path to the global storefront config file.
// This file stores only store_home (and future global settings).
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "storefront", "config.yaml"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveStoreHome returns the store home path and the source of the resolution.
// Priority: STOREFRONT_HOME env → persisted global config → ~/.storefront
// source is one of "env", "config", or "default".
func ResolveStoreHome() (path, source string) {
	if env := os.Getenv("STOREFRONT_HOME"); env != "" {
		p, err := normalizePath(env)
		if err == nil {
			return p, "env"
		}
	}

	if persisted, ok, _ := GetPersistedStoreHome(); ok {
		return persisted, "config"
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".storefront"), "default"
}

// GetStoreHome returns the resolved store home path.
func GetStoreHome() string {
	path, _ := ResolveStoreHome()
	return path
}

// GetPersistedStoreHome reads store_home from the global config.
// Returns ("", false, nil) if not set.
func GetPersistedStoreHome() (string, bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", false, nil
	}

	val, _ := raw["store_home"].(string)
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false, nil
	}

	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedStoreHome normalizes path and persists it in the global config.
// Returns the normalized path.
func SetPersistedStoreHome(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	// Read existing global config, preserving any other keys.
	var raw map[string]any
	if data, err := os.ReadFile(cfgPath); err == nil {
		_ = yaml.Unmarshal(data, &raw)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["store_home"] = normalized

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedStoreHome removes store_home from the global config.
// Returns true if the key was present and removed.
// If the file becomes empty after removal it is deleted.
func ClearPersistedStoreHome() (bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false, nil
	}

	if _, ok := raw["store_home"]; !ok {
		return false, nil
	}
	delete(raw, "store_home")

	if len(raw) == 0 {
		_ = os.Remove(cfgPath)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(cfgPath, out, 0o600)
}
