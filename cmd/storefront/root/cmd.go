// Package rootcmd wires the root cobra.Command for the storefront CLI binary.
package rootcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	blogcmd "github.com/cartusagri/storefront/cmd/storefront/blog"
	cartcmd "github.com/cartusagri/storefront/cmd/storefront/cart"
	chatcmd "github.com/cartusagri/storefront/cmd/storefront/chat"
	configcmd "github.com/cartusagri/storefront/cmd/storefront/config"
	initcmd "github.com/cartusagri/storefront/cmd/storefront/init"
	logincmd "github.com/cartusagri/storefront/cmd/storefront/login"
	logoutcmd "github.com/cartusagri/storefront/cmd/storefront/logout"
	productscmd "github.com/cartusagri/storefront/cmd/storefront/products"
	registercmd "github.com/cartusagri/storefront/cmd/storefront/register"
	reviewscmd "github.com/cartusagri/storefront/cmd/storefront/reviews"
	"github.com/cartusagri/storefront/cmd/storefront/shared"
	statscmd "github.com/cartusagri/storefront/cmd/storefront/stats"
	uninstallcmd "github.com/cartusagri/storefront/cmd/storefront/uninstall"
	whoamicmd "github.com/cartusagri/storefront/cmd/storefront/whoami"
	"github.com/cartusagri/storefront/internal/buildinfo"
)

// New creates and returns the root cobra.Command for the storefront CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Cartus Agri — farm storefront from the terminal",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", buildinfo.Version, buildinfo.GitCommit, buildinfo.BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	root.PersistentFlags().StringVar(
		&ctx.StoreHome, "store-home", "",
		"Override store home directory (default: $STOREFRONT_HOME env → persisted config → ~/.storefront)",
	)

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		logincmd.New(ctx).Cmd(),
		logoutcmd.New(ctx).Cmd(),
		registercmd.New(ctx).Cmd(),
		whoamicmd.New(ctx).Cmd(),
		productscmd.New(ctx).Cmd(),
		cartcmd.New(ctx).Cmd(),
		chatcmd.New(ctx).Cmd(),
		blogcmd.New(ctx).Cmd(),
		reviewscmd.New(ctx).Cmd(),
		statscmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		uninstallcmd.New(ctx).Cmd(),
	)

	return root
}
