package domain

import "github.com/shopspring/decimal"

// CartEntry is a product snapshot with the quantity held in the cart
type CartEntry struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity
func (e CartEntry) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(e.Price).Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// CartSummary is the cart contents with derived totals
type CartSummary struct {
	Items        []CartEntry     `json:"items"`
	ItemCount    int             `json:"itemCount"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	TotalDisplay string          `json:"totalDisplay"`
}
