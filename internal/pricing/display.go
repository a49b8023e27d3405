package pricing

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Rough per-credit conversion used only for display estimates. Settlement is
// always in whole credits.
var displayRates = map[string]float64{
	"RUB": 2.5,
	"USD": 0.03,
}

// DisplayEstimate renders an informational local-currency estimate for a
// credit amount based on the caller's country. Unknown or empty countries
// fall back to USD. The returned string is presentation-only.
func DisplayEstimate(credits int, countryCode string) string {
	if credits <= 0 {
		return ""
	}
	unit := currency.USD
	tag := language.English
	if strings.EqualFold(countryCode, "RU") {
		unit = currency.RUB
		tag = language.Russian
	}
	rate, ok := displayRates[unit.String()]
	if !ok {
		return ""
	}
	amount := float64(credits) * rate
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}
