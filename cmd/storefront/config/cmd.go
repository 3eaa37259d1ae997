// Package configcmd implements the `storefront config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/config"
)

const configTemplate = `# Cartus Agri storefront configuration

# Cart pricing constants.
pricing:
  tax_rate: 0.08
  shipping_fee: 12.99
  free_shipping_over: 100

# Fixed identities the chat routes around.
chat:
  admin_id: "1"
  default_recipient_id: "2"

# Demo accounts accepted by login.
# demo_users:
#   - id: "1"
#     name: Admin User
#     email: admin@cartusagri.com
#     password: admin123
#     role: admin
`

// Command implements `storefront config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		newConfigInit(ctx),
		newSetHome(ctx),
		newClearHome(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	home, source := config.ResolveStoreHome()
	if c.ctx.StoreHome != "" {
		home = c.ctx.StoreHome
		source = "flag"
	}
	cfg, err := config.Load(filepath.Join(home, "config.yaml"))
	if err != nil {
		return err
	}

	emails := make([]string, 0, len(cfg.DemoUsers))
	for _, u := range cfg.DemoUsers {
		emails = append(emails, u.Email)
	}
	data := map[string]any{
		"pricing": map[string]any{
			"tax_rate":           cfg.Pricing.TaxRate,
			"shipping_fee":       cfg.Pricing.ShippingFee,
			"free_shipping_over": cfg.Pricing.FreeShippingOver,
		},
		"chat": map[string]any{
			"admin_id":             cfg.Chat.AdminID,
			"default_recipient_id": cfg.Chat.DefaultRecipientID,
		},
		"demo_users":        emails,
		"store_home":        home,
		"store_home_source": source,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := ctx.StoreHome
			if home == "" {
				home = config.GetStoreHome()
			}
			cfgPath := filepath.Join(home, "config.yaml")
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

// ---------------------------------------------------------------------------
// config set-home
// ---------------------------------------------------------------------------

func newSetHome(_ *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "set-home <path>",
		Short: "Persist store home location (used when STOREFRONT_HOME is unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.SetPersistedStoreHome(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(resolved, 0o755); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Persisted store home: %s\n", resolved)
			fmt.Fprintln(out, "Override anytime with STOREFRONT_HOME.")
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// config clear-home
// ---------------------------------------------------------------------------

func newClearHome(_ *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-home",
		Short: "Remove persisted store home location from global config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed, err := config.ClearPersistedStoreHome()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if changed {
				fmt.Fprintln(out, "Cleared persisted store home setting.")
			} else {
				fmt.Fprintln(out, "No persisted store home setting was found.")
			}
			return nil
		},
	}
}
