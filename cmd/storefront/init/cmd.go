// Package initcmd implements the `storefront init` command.
package initcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/service"
)

// Command implements `storefront init`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the init command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize the store and seed the sample catalog",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := service.New(c.ctx.StoreHome)
	if err != nil {
		return err
	}
	defer svc.Close()

	products, err := svc.Catalog.All()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Store initialized at %s\n", svc.StoreHome)
	fmt.Fprintf(out, "Catalog: %d products, %d journal posts\n", len(products), len(svc.Blog.Posts()))
	return nil
}
