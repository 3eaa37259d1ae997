package config_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/cartusagri/storefront/internal/config"
	"github.com/cartusagri/storefront/internal/models"
)

func TestDefault_HappyPath(t *testing.T) {
	c := qt.New(t)
	cfg := config.Default()
	c.Assert(cfg, qt.IsNotNil)
	c.Assert(cfg.Pricing.TaxRate, qt.Equals, 0.08)
	c.Assert(cfg.Pricing.ShippingFee, qt.Equals, 12.99)
	c.Assert(cfg.Pricing.FreeShippingOver, qt.Equals, 100.0)
	c.Assert(cfg.Chat.AdminID, qt.Equals, "1")
	c.Assert(cfg.Chat.DefaultRecipientID, qt.Equals, "2")
	c.Assert(cfg.DemoUsers, qt.HasLen, 2)
	c.Assert(cfg.DemoUsers[0].Email, qt.Equals, "admin@cartusagri.com")
	c.Assert(cfg.DemoUsers[0].Role, qt.Equals, "admin")
	c.Assert(cfg.DemoUsers[1].Email, qt.Equals, "user@example.com")
	c.Assert(cfg.DemoUsers[1].Role, qt.Equals, "user")
}

func TestDemoUserConversion(t *testing.T) {
	c := qt.New(t)

	admin := config.Default().DemoUsers[0].User()
	c.Assert(admin.Role, qt.Equals, models.RoleAdmin)
	c.Assert(admin.IsAdmin(), qt.IsTrue)

	// Unknown role strings degrade to the user role.
	odd := config.DemoUser{ID: "9", Role: "superuser"}.User()
	c.Assert(odd.Role, qt.Equals, models.RoleUser)
}

func TestLoad_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("non-existent file returns defaults without error", func(c *qt.C) {
		cfg, err := config.Load("/nonexistent/config.yaml")
		c.Assert(err, qt.IsNil)
		c.Assert(cfg, qt.IsNotNil)
		c.Assert(cfg.Pricing.TaxRate, qt.Equals, 0.08)
		c.Assert(cfg.Chat.AdminID, qt.Equals, "1")
	})

	tests := []struct {
		name          string
		yaml          string
		wantTaxRate   float64
		wantShipping  float64
		wantThreshold float64
		wantAdminID   string
		wantDefaultID string
	}{
		{
			name:          "full pricing section overrides all fields",
			yaml:          "pricing:\n  tax_rate: 0.1\n  shipping_fee: 9.5\n  free_shipping_over: 50\n",
			wantTaxRate:   0.1,
			wantShipping:  9.5,
			wantThreshold: 50,
			wantAdminID:   "1",
			wantDefaultID: "2",
		},
		{
			name:          "chat identities override",
			yaml:          "chat:\n  admin_id: support\n  default_recipient_id: customer\n",
			wantTaxRate:   0.08,
			wantShipping:  12.99,
			wantThreshold: 100,
			wantAdminID:   "support",
			wantDefaultID: "customer",
		},
		{
			name:          "partial pricing retains remaining defaults",
			yaml:          "pricing:\n  tax_rate: 0.05\n",
			wantTaxRate:   0.05,
			wantShipping:  12.99,
			wantThreshold: 100,
			wantAdminID:   "1",
			wantDefaultID: "2",
		},
	}

	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			tmp := t.TempDir()
			path := filepath.Join(tmp, "config.yaml")
			err := os.WriteFile(path, []byte(tt.yaml), 0o600)
			c.Assert(err, qt.IsNil)

			cfg, err := config.Load(path)
			c.Assert(err, qt.IsNil)
			c.Assert(cfg.Pricing.TaxRate, qt.Equals, tt.wantTaxRate)
			c.Assert(cfg.Pricing.ShippingFee, qt.Equals, tt.wantShipping)
			c.Assert(cfg.Pricing.FreeShippingOver, qt.Equals, tt.wantThreshold)
			c.Assert(cfg.Chat.AdminID, qt.Equals, tt.wantAdminID)
			c.Assert(cfg.Chat.DefaultRecipientID, qt.Equals, tt.wantDefaultID)
		})
	}
}

func TestLoad_DemoUsersReplaceDefaults(t *testing.T) {
	c := qt.New(t)

	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	yaml := "demo_users:\n" +
		"  - id: \"42\"\n" +
		"    name: Test Owner\n" +
		"    email: owner@farm.test\n" +
		"    password: hunter2\n" +
		"    role: admin\n"
	err := os.WriteFile(path, []byte(yaml), 0o600)
	c.Assert(err, qt.IsNil)

	cfg, err := config.Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.DemoUsers, qt.HasLen, 1)
	c.Assert(cfg.DemoUsers[0].ID, qt.Equals, "42")
	c.Assert(cfg.DemoUsers[0].Email, qt.Equals, "owner@farm.test")
	c.Assert(cfg.DemoUsers[0].User().Role, qt.Equals, models.RoleAdmin)
}

func TestResolveStoreHome_EnvOverride(t *testing.T) {
	c := qt.New(t)

	tmp := t.TempDir()
	t.Setenv("STOREFRONT_HOME", tmp)

	path, source := config.ResolveStoreHome()
	c.Assert(source, qt.Equals, "env")
	c.Assert(path, qt.Equals, tmp)
}
