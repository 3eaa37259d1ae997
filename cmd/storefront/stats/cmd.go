// Package statscmd implements the `storefront stats` command.
package statscmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/service"
)

// Command implements `storefront stats`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	top    int
	asJSON bool
}

// New creates the stats command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "stats",
		Short: "Show the admin dashboard figures",
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.IntVar(&c.top, "top", 5, "Number of top sellers to include")
	f.BoolVar(&c.asJSON, "json", false, "Print the report as JSON")

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

	if !svc.Session.IsAdmin() {
		return fmt.Errorf("stats: admin access required")
	}

	report, err := svc.Stats(c.top)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if c.asJSON {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	}

	fmt.Fprintf(out, "Products:        %d\n", report.ProductCount)
	fmt.Fprintf(out, "Reviews:         %d\n", report.ReviewCount)
	fmt.Fprintf(out, "Journal posts:   %d\n", report.PostCount)
	fmt.Fprintf(out, "Inventory value: $%.2f\n", report.InventoryValue)
	fmt.Fprintf(out, "Unread messages: %d\n", report.UnreadMessages)
	fmt.Fprintln(out, "\nTop sellers:")
	for i, p := range report.TopSelling {
		fmt.Fprintf(out, "  %d. %-30s %d sold\n", i+1, p.Name, p.Sold)
	}
	return nil
}
