// Package cli is the command surface of the storefront console. Commands
// stay thin: they parse arguments, call the order service, and render what
// the status engine derived.
package cli

import (
	"github.com/spf13/cobra"

	"gitlab.ozon.dev/qwestard/storefront/internal/api"
	"gitlab.ozon.dev/qwestard/storefront/internal/service"
	"gitlab.ozon.dev/qwestard/storefront/internal/session"
)

// App bundles what the commands need.
type App struct {
	Client  *api.Client
	Orders  *service.OrderService
	Session *session.Store
}

// Root assembles the command tree.
func Root(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront and admin console for the shop backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		LoginCmd(app),
		LogoutCmd(app),
		WhoamiCmd(app),
		OrderCmd(app),
		AdminCmd(app),
	)
	return root
}
