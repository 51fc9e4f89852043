package order

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a priced line in the form the gateway's hosted page expects.
type OrderItem struct {
	Description string  `json:"Description"`
	Quantity    string  `json:"Quantity"`
	Amount      float64 `json:"Amount"`
	Tax         int     `json:"Tax"`
}

type Order struct {
	ID          string
	TotalAmount decimal.Decimal
	Items       []OrderItem
}

// Total is the order total as the gateway consumes it.
func (o Order) Total() float64 {
	return o.TotalAmount.InexactFloat64()
}

// Build assigns a fresh order id and derives per-item and aggregate amounts.
// Sums are computed in decimal so the visible total never drifts from
// sum(price * quantity).
func Build(req *OrderRequest) Order {
	total := decimal.Zero
	items := make([]OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		line := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
		items = append(items, OrderItem{
			Description: it.Name,
			Quantity:    strconv.Itoa(it.Quantity),
			Amount:      line.InexactFloat64(),
			Tax:         0,
		})
	}
	return Order{ID: uuid.NewString(), TotalAmount: total, Items: items}
}
