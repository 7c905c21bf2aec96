package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR はルピア表示（"Rp 10.000"）。小数は使わない。
func FormatIDR(amount int64) string {
	return printer.Sprintf("Rp %d", amount)
}
