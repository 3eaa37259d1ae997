// Package cartcmd implements the `storefront cart` command group.
package cartcmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/service"
)

// Command implements `storefront cart`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the cart command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newShow(ctx),
		newAdd(ctx),
		newUpdate(ctx),
		newRemove(ctx),
		newClear(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func newShow(ctx *shared.Context) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cart and its totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			cart := svc.Cart.Cart()
			out := cmd.OutOrStdout()
			if asJSON {
				b, err := json.MarshalIndent(cart, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			}

			if len(cart.Items) == 0 {
				fmt.Fprintln(out, "Your cart is empty.")
				return nil
			}
			for _, it := range cart.Items {
				fmt.Fprintf(out, "%3d x %-30s $%6.2f each  $%7.2f\n",
					it.Quantity, it.Product.Name, it.Product.Price,
					it.Product.Price*float64(it.Quantity))
			}
			fmt.Fprintf(out, "\nSubtotal: $%.2f\n", cart.Subtotal)
			fmt.Fprintf(out, "Tax:      $%.2f\n", cart.Tax)
			if cart.Shipping == 0 {
				fmt.Fprintln(out, "Shipping: free")
			} else {
				fmt.Fprintf(out, "Shipping: $%.2f\n", cart.Shipping)
			}
			fmt.Fprintf(out, "Total:    $%.2f\n", cart.Total)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the cart as JSON")
	return cmd
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var qty int
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			p, err := svc.Catalog.ByID(args[0])
			if err != nil {
				return err
			}
			if err := svc.Cart.Add(*p, qty); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s. Cart total: $%.2f\n",
				qty, p.Name, svc.Cart.Cart().Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&qty, "qty", 1, "Quantity to add")
	return cmd
}

func newUpdate(ctx *shared.Context) *cobra.Command {
	var qty int
	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Set the quantity of a line item (0 removes it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Cart.UpdateQuantity(args[0], qty); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cart total: $%.2f\n", svc.Cart.Cart().Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&qty, "qty", 1, "New quantity")
	return cmd
}

func newRemove(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Cart.Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cart total: $%.2f\n", svc.Cart.Cart().Total)
			return nil
		},
	}
}

func newClear(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Cart.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
			return nil
		},
	}
}
