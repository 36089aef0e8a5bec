// Package pricing computes discounted prices and formats minor-unit amounts.
//
// Amounts are integers in the currency's minor unit (cents for USD). Percent
// values are plain percentages in [0, 100].
package pricing

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/storefront-search/pkg/client"
)

// Discounted applies percent to priceMinor. Percent is clamped to [0, 100] and
// the result is rounded half away from zero to the minor unit.
func Discounted(priceMinor int64, percent float64) int64 {
	percent = clampPercent(percent)
	return int64(math.Round(float64(priceMinor) * (100 - percent) / 100))
}

// PercentOff reports how much cheaper sale is than original, rounded to one
// decimal. It is 0 when original is not positive or sale is not cheaper.
func PercentOff(original, sale int64) float64 {
	if original <= 0 || sale >= original {
		return 0
	}
	pct := float64(original-sale) / float64(original) * 100
	return math.Round(pct*10) / 10
}

func clampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// Tier is a named customer discount level.
type Tier struct {
	Name            string  `json:"name"`
	DiscountPercent float64 `json:"discount_percent"`
}

// ApplyTier prices priceMinor at tier's discount.
func ApplyTier(priceMinor int64, tier Tier) int64 {
	return Discounted(priceMinor, tier.DiscountPercent)
}

// Formatter renders minor-unit amounts for display.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter creates a Formatter for the given currency symbol and BCP 47
// locale. An unparseable locale falls back to English.
func NewFormatter(symbol, locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}
}

// Format renders minor as a grouped two-decimal amount, e.g. "$1,234.50".
func (f *Formatter) Format(minor int64) string {
	var b strings.Builder
	// Magnitude as uint64: -minor overflows for math.MinInt64.
	abs := uint64(minor)
	if minor < 0 {
		b.WriteByte('-')
		abs = -abs
	}
	b.WriteString(f.symbol)
	b.WriteString(f.printer.Sprintf("%.2f", float64(abs)/100))
	return b.String()
}

// Quote is a priced product.
type Quote struct {
	ProductID       string  `json:"product_id"`
	Title           string  `json:"title"`
	Tier            string  `json:"tier,omitempty"`
	OriginalMinor   int64   `json:"original_minor"`
	DiscountedMinor int64   `json:"discounted_minor"`
	PercentOff      float64 `json:"percent_off"`
	Original        string  `json:"original"`
	Discounted      string  `json:"discounted"`
}

// Quote prices p for tier. The effective discount is the larger of the
// product's own discount and the tier's.
func (f *Formatter) Quote(p client.Product, tier Tier) Quote {
	pct := max(clampPercent(p.DiscountPercent), clampPercent(tier.DiscountPercent))
	discounted := Discounted(p.Price, pct)

	return Quote{
		ProductID:       p.ID,
		Title:           p.Title,
		Tier:            tier.Name,
		OriginalMinor:   p.Price,
		DiscountedMinor: discounted,
		PercentOff:      PercentOff(p.Price, discounted),
		Original:        f.Format(p.Price),
		Discounted:      f.Format(discounted),
	}
}
