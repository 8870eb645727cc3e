package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gitlab.ozon.dev/qwestard/storefront/internal/models"
	"gitlab.ozon.dev/qwestard/storefront/internal/view"
)

// AdminCmd groups the back-office commands.
func AdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office operations",
	}

	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect and advance orders",
	}
	orderCmd.AddCommand(
		adminOrderShowCmd(app),
		adminSetStatusCmd(app),
		adminSetDeliveryCmd(app),
	)
	cmd.AddCommand(orderCmd)
	return cmd
}

func adminOrderShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <orderID>",
		Short: "Show the admin view of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			o, err := app.Orders.AdminOrder(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderAdminOrder(cmd.OutOrStdout(), view.AdminOrder(o))
			return nil
		},
	}
}

func adminSetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <orderID> <stage>",
		Short: "Advance the fulfillment stage (0 pending, 1 processing, 2 handed to carrier)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			stage, err := parseOrderStage(args[1])
			if err != nil {
				return err
			}
			o, err := app.Orders.AdvanceOrderStatus(cmd.Context(), id, stage)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order #%d moved to %s.\n", o.ID, stage)
			renderAdminOrder(cmd.OutOrStdout(), view.AdminOrder(o))
			return nil
		},
	}
}

func adminSetDeliveryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-delivery <orderID> <stage>",
		Short: "Advance the delivery stage (0 with carrier, 1 in transit, 2 delivered)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			stage, err := parseDeliveryStage(args[1])
			if err != nil {
				return err
			}
			o, err := app.Orders.AdvanceDeliveryStatus(cmd.Context(), id, stage)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Delivery of order #%d moved to %s.\n", o.ID, stage)
			renderAdminOrder(cmd.OutOrStdout(), view.AdminOrder(o))
			return nil
		},
	}
}

func parseOrderStage(arg string) (models.OrderStage, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || !models.OrderStage(n).Valid() {
		return 0, fmt.Errorf("invalid order stage %q (expected 0, 1 or 2)", arg)
	}
	return models.OrderStage(n), nil
}

func parseDeliveryStage(arg string) (models.DeliveryStage, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || !models.DeliveryStage(n).Valid() {
		return 0, fmt.Errorf("invalid delivery stage %q (expected 0, 1 or 2)", arg)
	}
	return models.DeliveryStage(n), nil
}
