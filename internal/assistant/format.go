package assistant

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

// formatCurrency renders an amount as a symbol-prefixed, two-decimal string
// with thousands grouping, e.g. 1234.5 -> "$1,234.50".
func formatCurrency(amount float64) string {
	return currencyPrinter.Sprintf("$%.2f", amount)
}

// formatDate renders the short human date used in replies, e.g. "Apr 29, 2026".
func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
