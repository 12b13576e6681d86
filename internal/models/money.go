package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount of yen with digit grouping, e.g. "¥11,350".
func FormatMoney(amount int) string {
	if amount < 0 {
		return moneyPrinter.Sprintf("-¥%d", -amount)
	}
	return moneyPrinter.Sprintf("¥%d", amount)
}

// FormatMoneyDelta renders a signed amount, e.g. "+¥2,000".
func FormatMoneyDelta(amount int) string {
	if amount > 0 {
		return "+" + FormatMoney(amount)
	}
	return FormatMoney(amount)
}
