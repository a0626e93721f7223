package sale

import (
	"strings"
	"testing"

	"github.com/libreria/sales-service/internal/model"
	"github.com/libreria/sales-service/internal/sale/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderDetail() *dto.SaleDetail {
	return &dto.SaleDetail{
		Sale: model.Sale{
			ID:     "4f9d2e6a",
			Total:  decimal.RequireFromString("25.50"),
			Status: model.SaleStatusPending,
		},
		Lines: []dto.SaleLineDetail{
			{
				SaleLine: model.SaleLine{Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
				Title:    "El Principito",
			},
			{
				SaleLine: model.SaleLine{Quantity: 1, UnitPrice: decimal.RequireFromString("5.50")},
				Title:    "Rayuela",
			},
		},
	}
}

func TestHandoffMessage(t *testing.T) {
	msg := HandoffMessage(orderDetail(), dto.Contact{
		FirstName: "Ana",
		LastName:  "Lopez",
		Phone:     "+5215511122233",
		Address:   "Av. Reforma 123, CDMX",
	})

	assert.Contains(t, msg, "*PENDING* order *#4f9d2e6a*")
	assert.Contains(t, msg, "Name: Ana Lopez")
	assert.Contains(t, msg, "Phone: +5215511122233")
	assert.Contains(t, msg, "Email: N/A")
	assert.Contains(t, msg, "Shipping address: Av. Reforma 123, CDMX")
	assert.Contains(t, msg, "• El Principito (x2) | unit: $10.00")
	assert.Contains(t, msg, "• Rayuela (x1) | unit: $5.50")
	assert.Contains(t, msg, "*SUBTOTAL (+ shipping): $25.50*")
}

func TestHandoffMessageWithEmail(t *testing.T) {
	msg := HandoffMessage(orderDetail(), dto.Contact{
		FirstName: "Ana",
		LastName:  "Lopez",
		Phone:     "+5215511122233",
		Email:     "ana@example.com",
		Address:   "Av. Reforma 123",
	})

	assert.Contains(t, msg, "Email: ana@example.com")
	assert.NotContains(t, msg, "N/A")
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+525620576697", "Hello! Order *#1* for $25.50")

	require.True(t, strings.HasPrefix(link, "https://wa.me/+525620576697?text="))

	encoded := strings.TrimPrefix(link, "https://wa.me/+525620576697?text=")
	assert.NotContains(t, encoded, "+", "wa.me renders '+' literally, spaces must be percent-encoded")
	assert.Contains(t, encoded, "%20")
	assert.NotContains(t, encoded, " ")
}
