package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gitlab.ozon.dev/qwestard/storefront/internal/status"
	"gitlab.ozon.dev/qwestard/storefront/internal/view"
)

// OrderCmd groups the customer-side order commands.
func OrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Browse and act on your orders",
	}
	cmd.AddCommand(
		orderListCmd(app),
		orderShowCmd(app),
		orderCancelCmd(app),
		orderConfirmCmd(app),
	)
	return cmd
}

func orderListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := app.Client.Orders(cmd.Context())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "You have no orders.")
				return nil
			}
			for i := range orders {
				o := &orders[i]
				fs := status.Derive(o)
				fmt.Fprintf(cmd.OutOrStdout(), "#%d  %s  %s  %s\n",
					o.ID, o.DateOrder.Format("2006-01-02"), formatAmount(o.TotalOrder), paintStatus(fs))
			}
			return nil
		},
	}
}

func orderShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <orderID>",
		Short: "Show one order with its status workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			o, err := app.Orders.Order(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderCustomerOrder(cmd.OutOrStdout(), view.CustomerOrder(o))
			return nil
		},
	}
}

func orderCancelCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <orderID>",
		Short: "Cancel an order (requires --reason)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			o, err := app.Orders.CancelOrder(cmd.Context(), id, reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order #%d cancelled.\n", o.ID)
			renderCustomerOrder(cmd.OutOrStdout(), view.CustomerOrder(o))
			return nil
		},
	}
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Why the order is being cancelled")
	return cmd
}

func orderConfirmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <orderID>",
		Short: "Confirm you received a delivered order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			o, err := app.Orders.ConfirmReceipt(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Receipt of order #%d confirmed.\n", o.ID)
			renderCustomerOrder(cmd.OutOrStdout(), view.CustomerOrder(o))
			return nil
		},
	}
}

func parseOrderID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid order id %q", arg)
	}
	return id, nil
}
