package receipts

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ItemTotal computes one line's value: unitPrice * quantity * (100 - discount%) / 100,
// in decimal arithmetic so discount math stays exact, rounded to whole VND
// only at the end.
func ItemTotal(unitPrice, quantity, discountPercent float64) float64 {
	price := decimal.NewFromFloat(unitPrice)
	qty := decimal.NewFromFloat(quantity)
	factor := hundred.Sub(decimal.NewFromFloat(discountPercent))
	total := price.Mul(qty).Mul(factor).Div(hundred)
	v, _ := total.Round(0).Float64()
	return v
}

// ReceiptTotal sums line totals for the given items.
func ReceiptTotal(items []Item) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(ItemTotal(it.UnitPrice, it.Quantity, it.DiscountPercent)))
	}
	v, _ := sum.Float64()
	return v
}
