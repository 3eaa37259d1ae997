// Package productscmd implements the `storefront products` command group.
package productscmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/models"
	"github.com/cartusagri/storefront/internal/service"
)

// Command implements `storefront products`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the products command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newList(ctx),
		newShow(ctx),
		newSearch(ctx),
		newBestSellers(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func newList(ctx *shared.Context) *cobra.Command {
	var category string
	var featured, asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			var products []models.Product
			switch {
			case featured:
				products, err = svc.Catalog.Featured()
			case category != "":
				products, err = svc.Catalog.ByCategory(category)
			default:
				products, err = svc.Catalog.All()
			}
			if err != nil {
				return err
			}
			return printProducts(cmd, products, asJSON)
		},
	}
	f := cmd.Flags()
	f.StringVar(&category, "category", "", "Filter by category: whole, parts, organs, processed")
	f.BoolVar(&featured, "featured", false, "Only featured products")
	f.BoolVar(&asJSON, "json", false, "Print products as JSON")
	return cmd
}

func newShow(ctx *shared.Context) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
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
			if asJSON {
				return printJSON(cmd, p)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
			fmt.Fprintf(out, "  %s\n", p.Description)
			if p.OldPrice > 0 {
				fmt.Fprintf(out, "  Price: $%.2f (was $%.2f)\n", p.Price, p.OldPrice)
			} else {
				fmt.Fprintf(out, "  Price: $%.2f\n", p.Price)
			}
			fmt.Fprintf(out, "  Category: %s | Stock: %d | Rating: %.1f (%d reviews) | Sold: %d\n",
				p.Category, p.Stock, p.Rating, p.ReviewCount, p.Sold)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the product as JSON")
	return cmd
}

func newSearch(ctx *shared.Context) *cobra.Command {
	var limit int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over names, descriptions and categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			products, err := svc.Catalog.Search(args[0], limit)
			if err != nil {
				return err
			}
			if len(products) == 0 && !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), "No products found.")
				return nil
			}
			return printProducts(cmd, products, asJSON)
		},
	}
	f := cmd.Flags()
	f.IntVar(&limit, "limit", 10, "Maximum number of results")
	f.BoolVar(&asJSON, "json", false, "Print products as JSON")
	return cmd
}

func newBestSellers(ctx *shared.Context) *cobra.Command {
	var limit int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "bestsellers",
		Short: "List the top-selling products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			products, err := svc.Catalog.BestSellers(limit)
			if err != nil {
				return err
			}
			return printProducts(cmd, products, asJSON)
		},
	}
	f := cmd.Flags()
	f.IntVar(&limit, "limit", 4, "Maximum number of results")
	f.BoolVar(&asJSON, "json", false, "Print products as JSON")
	return cmd
}

func printProducts(cmd *cobra.Command, products []models.Product, asJSON bool) error {
	if asJSON {
		return printJSON(cmd, products)
	}
	out := cmd.OutOrStdout()
	for _, p := range products {
		fmt.Fprintf(out, "%-4s $%6.2f  %-30s %s (stock %d)\n", p.ID, p.Price, p.Name, p.Category, p.Stock)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
