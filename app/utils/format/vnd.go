package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var vnd = accounting.Accounting{
	Symbol:    "₫",
	Precision: 0,
	Thousand:  ".",
	Decimal:   ",",
	Format:    "%v %s",
}

// VND formats an amount the way Vietnamese shops print prices: "150.000 ₫".
func VND(amount interface{}) string {
	var d decimal.Decimal
	switch v := amount.(type) {
	case decimal.Decimal:
		d = v
	case decimal.NullDecimal:
		if !v.Valid {
			return ""
		}
		d = v.Decimal
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return vnd.FormatMoneyDecimal(decimal.Zero)
		}
		d = parsed
	default:
		return vnd.FormatMoneyDecimal(decimal.Zero)
	}
	return vnd.FormatMoneyDecimal(d.Round(0))
}
