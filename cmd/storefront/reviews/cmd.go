// Package reviewscmd implements the `storefront reviews` command group.
package reviewscmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/service"
)

// Command implements `storefront reviews`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the reviews command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "reviews",
		Short: "Read and write product reviews",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newList(ctx),
		newAdd(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func newList(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "list <product-id>",
		Short: "List a product's reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			reviews, err := svc.Catalog.Reviews(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(reviews) == 0 {
				fmt.Fprintln(out, "No reviews yet.")
				return nil
			}
			for _, r := range reviews {
				fmt.Fprintf(out, "%s  %d/5 by %s\n  %s\n",
					r.CreatedAt.Format("2006-01-02"), r.Rating, r.UserName, r.Comment)
			}
			return nil
		},
	}
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var rating int
	var comment string
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Review a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			r, err := svc.Catalog.AddReview(args[0], rating, comment)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Thanks, %s! Review recorded (id: %s)\n", r.UserName, r.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&rating, "rating", 0, "Rating from 1 to 5 (required)")
	f.StringVar(&comment, "comment", "", "Review text")

	_ = cmd.MarkFlagRequired("rating")
	return cmd
}
