package model

import "github.com/shopspring/decimal"

// CartEntry keeps the unit price as text so it round-trips through the
// session store without losing the snapshot taken at add time.
type CartEntry struct {
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

func (e CartEntry) Price() decimal.Decimal {
	p, err := decimal.NewFromString(e.UnitPrice)
	if err != nil {
		return decimal.Zero
	}
	return p
}

func (e CartEntry) LineTotal() decimal.Decimal {
	return e.Price().Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Cart is the per-session staging area, keyed by book id. It never reaches
// durable storage; checkout converts it into a Sale.
type Cart struct {
	Items map[string]CartEntry `json:"items"`
}

func NewCart() *Cart {
	return &Cart{Items: map[string]CartEntry{}}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) QuantityOf(bookID string) int {
	return c.Items[bookID].Quantity
}

// UnitCount is the number of units across all entries, not distinct books.
func (c *Cart) UnitCount() int {
	total := 0
	for _, e := range c.Items {
		total += e.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Items {
		total = total.Add(e.LineTotal())
	}
	return total
}
