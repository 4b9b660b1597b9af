package pricing

import (
	"fmt"
	"math"
)

// Currency describes a display currency. Conversion is display-only;
// settlement always happens in USD.
type Currency struct {
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
	Label  string  `json:"label"`
}

// Currencies lists the supported display currencies keyed by code.
var Currencies = map[string]Currency{
	"USD": {Symbol: "$", Rate: 1, Label: "USD"},
	"ILS": {Symbol: "₪", Rate: 3.7, Label: "ILS"},
}

// Convert converts a USD price into the given display currency, rounded
// to whole units. Unknown codes convert 1:1.
func Convert(priceUSD float64, code string) float64 {
	cur, ok := Currencies[code]
	if !ok {
		return math.Round(priceUSD)
	}
	return math.Round(priceUSD * cur.Rate)
}

// Format renders a USD price with the currency symbol of code.
func Format(priceUSD float64, code string) string {
	cur, ok := Currencies[code]
	if !ok {
		cur = Currencies["USD"]
		code = "USD"
	}
	return fmt.Sprintf("%s%.0f", cur.Symbol, Convert(priceUSD, code))
}
