// Package logoutcmd implements the `storefront logout` command.
package logoutcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/service"
)

// Command implements `storefront logout`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the logout command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
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

	out := cmd.OutOrStdout()
	if !svc.Session.IsAuthenticated() {
		fmt.Fprintln(out, "Not logged in.")
		return nil
	}
	if err := svc.Session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Logged out.")
	return nil
}
