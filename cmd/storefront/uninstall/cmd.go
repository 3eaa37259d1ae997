// Package uninstallcmd implements the `storefront uninstall` command.
package uninstallcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/config"
)

// Command implements `storefront uninstall`.
type Command struct {
	ctx   *shared.Context
	cmd   *cobra.Command
	force bool
}

// New creates the uninstall command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Delete the store and all of its data",
		RunE:  c.run,
	}
	c.cmd.Flags().BoolVar(&c.force, "force", false, "Delete without confirmation")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	home := c.ctx.StoreHome
	if home == "" {
		home = config.GetStoreHome()
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(home); os.IsNotExist(err) {
		fmt.Fprintf(out, "Nothing to remove: %s does not exist.\n", home)
		return nil
	}

	if !c.force {
		fmt.Fprintf(out, "This deletes the store at %s, including the catalog, cart, and message history.\n", home)
		fmt.Fprintln(out, "Re-run with --force to proceed.")
		return nil
	}

	if err := os.RemoveAll(home); err != nil {
		return fmt.Errorf("uninstall: %w", err)
	}
	fmt.Fprintf(out, "Removed %s\n", home)
	return nil
}
