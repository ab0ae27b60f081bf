package render

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount displays amount in the given ISO 4217 currency, e.g. "₹1,250.00".
// Amounts are rounded half away from zero to the currency's minor unit.
func FormatAmount(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(currency)
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}

	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return money.New(minor.IntPart(), code).Display()
}

// FormatSigned is FormatAmount with an explicit sign for non-negative amounts.
func FormatSigned(amount decimal.Decimal, currency string) string {
	if amount.IsNegative() {
		return FormatAmount(amount, currency)
	}
	return fmt.Sprintf("+%s", FormatAmount(amount, currency))
}
