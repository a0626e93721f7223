package sale

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/libreria/sales-service/internal/sale/dto"
)

// HandoffMessage renders the plain-text order summary sent to the store's
// WhatsApp for manual fulfillment.
func HandoffMessage(d *dto.SaleDetail, c dto.Contact) string {
	email := c.Email
	if email == "" {
		email = "N/A"
	}

	parts := []string{
		fmt.Sprintf("Hello! I have placed a *PENDING* order *#%s*.", d.Sale.ID),
		"My contact details:",
		fmt.Sprintf("Name: %s %s", c.FirstName, c.LastName),
		fmt.Sprintf("Phone: %s", c.Phone),
		fmt.Sprintf("Email: %s", email),
		fmt.Sprintf("Shipping address: %s", c.Address),
		"",
		"--- Order details ---",
	}

	for _, line := range d.Lines {
		parts = append(parts, fmt.Sprintf("• %s (x%d) | unit: $%s", line.Title, line.Quantity, line.UnitPrice.StringFixed(2)))
	}

	parts = append(parts,
		"",
		fmt.Sprintf("*SUBTOTAL (+ shipping): $%s*", d.Sale.Total.StringFixed(2)),
		"",
		"Please confirm my order and the next steps for payment and shipping.",
	)

	return strings.Join(parts, "\n")
}

// WhatsAppLink embeds the message percent-encoded into the wa.me deep-link
// template. QueryEscape uses '+' for spaces, which wa.me renders literally,
// so those are rewritten to %20.
func WhatsAppLink(number, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, encoded)
}
