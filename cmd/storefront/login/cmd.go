// Package logincmd implements the `storefront login` command.
package logincmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/service"
)

// Command implements `storefront login`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	email    string
	password string
}

// New creates the login command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.email, "email", "", "Account email (required)")
	f.StringVar(&c.password, "password", "", "Account password (required)")

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

	u, err := svc.Session.Login(c.email, c.password)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s> (%s)\n", u.Name, u.Email, u.Role)
	return nil
}
