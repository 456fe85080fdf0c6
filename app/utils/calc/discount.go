package calc

import "github.com/shopspring/decimal"

// DiscountPercent is the whole-number percentage by which promotion undercuts
// price, or 0 when there is no saving.
func DiscountPercent(price, promotion decimal.Decimal) int {
	if !price.IsPositive() || !promotion.IsPositive() || promotion.GreaterThanOrEqual(price) {
		return 0
	}
	saving := price.Sub(promotion).Mul(decimal.NewFromInt(100)).Div(price)
	return int(saving.Round(0).IntPart())
}
