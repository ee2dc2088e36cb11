package email

import (
	"fmt"
	"strings"
)

func buildConfirmationBody(orderID string, total float64, lines []OrderLine) string {
	var b strings.Builder
	b.WriteString("Thanks for your order at Old Skool!\n\n")
	fmt.Fprintf(&b, "Order: %s\n\n", orderID)
	for _, line := range lines {
		fmt.Fprintf(&b, "  %dx %s\n", line.Quantity, line.Name)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n\n", total)
	b.WriteString("We'll let you know as your order moves along.\n")
	return b.String()
}

func buildStatusBody(orderID, status string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your order %s is now %s.\n\n", orderID, status)
	switch status {
	case "preparing":
		b.WriteString("The kitchen has started on it.\n")
	case "ready":
		b.WriteString("It's ready and will be out for delivery shortly.\n")
	case "delivered":
		b.WriteString("Enjoy your meal!\n")
	case "cancelled":
		b.WriteString("If this is unexpected, please contact the restaurant.\n")
	}
	return b.String()
}
