package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"gitlab.ozon.dev/qwestard/storefront/internal/status"
	"gitlab.ozon.dev/qwestard/storefront/internal/view"
)

func toneColor(t status.Tone) *color.Color {
	switch t {
	case status.ToneSuccess:
		return color.New(color.FgGreen)
	case status.ToneInfo:
		return color.New(color.FgCyan)
	case status.ToneWarning:
		return color.New(color.FgYellow)
	case status.ToneDanger:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgWhite)
	}
}

func paintStatus(fs status.FinalStatus) string {
	return toneColor(fs.Tone).Sprint(fs.Label)
}

func renderCustomerOrder(w io.Writer, v view.CustomerOrderView) {
	o := v.Order
	fmt.Fprintf(w, "Order #%d  %s  %s\n", o.ID, o.DateOrder.Format("2006-01-02 15:04"), paintStatus(v.Status))
	fmt.Fprintf(w, "  Total: %s  Payment: %s\n", formatAmount(o.TotalOrder), o.MethodPay)
	if o.NameCustomer != "" {
		fmt.Fprintf(w, "  Ship to: %s, %s, %s\n", o.NameCustomer, o.AddressCustomer, o.PhoneCustomer)
	}
	if o.Cancelled() && o.ReasonUserOrder != "" {
		fmt.Fprintf(w, "  Cancellation reason: %s\n", o.ReasonUserOrder)
	}
	for _, item := range o.Items {
		fmt.Fprintf(w, "  %dx %s  %s\n", item.Quantity, item.ProductName, formatAmount(item.LineTotal))
	}

	fmt.Fprintln(w, "Progress:")
	renderSteps(w, v.Steps)

	var actions []string
	if v.CanCancel {
		actions = append(actions, "cancel")
	}
	if v.CanConfirm {
		actions = append(actions, "confirm receipt")
	}
	if len(actions) > 0 {
		fmt.Fprintf(w, "Available actions: %s\n", strings.Join(actions, ", "))
	}
}

func renderAdminOrder(w io.Writer, v view.AdminOrderView) {
	renderCustomerOrder(w, v.CustomerOrderView)

	if v.CanAdvanceOrder {
		fmt.Fprintf(w, "Next order stages: %s\n", joinStages(v.NextOrderStages))
	}
	if v.CanAdvanceDelivery {
		fmt.Fprintf(w, "Next delivery stages: %s\n", joinStages(v.NextDeliveryStages))
	}
	if !v.CanAdvanceOrder && !v.CanAdvanceDelivery {
		fmt.Fprintln(w, "No admin transitions available.")
	}
}

func renderSteps(w io.Writer, steps []status.Step) {
	dim := color.New(color.Faint)
	for _, s := range steps {
		mark := " "
		if s.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %s", mark, s.Label)
		if s.Active {
			line += "  <- current"
		}
		if s.Cancelled && s.Label != status.LabelCancelled {
			line = dim.Sprint(line)
		}
		fmt.Fprintln(w, line)
	}
}

func joinStages[T fmt.Stringer](stages []T) string {
	parts := make([]string, len(stages))
	for i, s := range stages {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
