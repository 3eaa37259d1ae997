// Package registercmd implements the `storefront register` command.
package registercmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/service"
)

// Command implements `storefront register`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	name     string
	email    string
	password string
}

// New creates the register command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "register",
		Short: "Create a new account and log in",
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.name, "name", "", "Display name (required)")
	f.StringVar(&c.email, "email", "", "Account email (required)")
	f.StringVar(&c.password, "password", "", "Account password (required)")

	_ = c.cmd.MarkFlagRequired("name")
	_ = c.cmd.MarkFlagRequired("email")
	_ = c.cmd.MarkFlagRequired("password")

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

	u, err := svc.Session.Register(c.name, c.email, c.password)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Logged in as %s.\n", u.Name, u.Email)
	return nil
}
