package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// PriceParser extracts the first numeric price from raw price text coming
// off the catalog markup. Patterns are tried in order of specificity.
type PriceParser struct {
	patterns []pricePattern
}

type pricePattern struct {
	name string
	re   *regexp.Regexp
}

// NewPriceParser creates a parser for the locale formats the catalog uses.
func NewPriceParser() *PriceParser {
	return &PriceParser{
		patterns: []pricePattern{
			// 1 234,56 or 1 234 (space or NBSP thousands, comma decimals)
			{"spaced", regexp.MustCompile(`([0-9]{1,3}(?:[ \x{00a0}][0-9]{3})+(?:[.,][0-9]{1,2})?)`)},
			// 1,234.56 (comma thousands)
			{"grouped", regexp.MustCompile(`([0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{1,2})?)`)},
			// 1234.56 or 1234,56
			{"simple", regexp.MustCompile(`([0-9]+(?:[.,][0-9]{1,2})?)`)},
		},
	}
}

// Parse returns the numeric value and detected currency code of the first
// price-like token in text. ok is false when no number is present; an
// unparseable price never blocks record creation upstream.
func (p *PriceParser) Parse(text string) (value float64, currency string, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, "", false
	}

	for _, pattern := range p.patterns {
		match := pattern.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		cleaned := cleanNumber(match[1], pattern.name)
		if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return v, detectCurrency(text), true
		}
	}

	return 0, "", false
}

func cleanNumber(number, locale string) string {
	switch locale {
	case "spaced":
		number = strings.ReplaceAll(number, "\u00a0", "")
		number = strings.ReplaceAll(number, " ", "")
		return strings.ReplaceAll(number, ",", ".")
	case "grouped":
		return strings.ReplaceAll(number, ",", "")
	default:
		// Lone comma is a decimal separator: 1234,56 -> 1234.56
		if strings.Contains(number, ",") && !strings.Contains(number, ".") {
			return strings.ReplaceAll(number, ",", ".")
		}
		return number
	}
}

func detectCurrency(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(text, "₽") || strings.Contains(lower, "руб"):
		return "RUB"
	case strings.Contains(text, "$") || strings.Contains(lower, "usd"):
		return "USD"
	case strings.Contains(text, "€") || strings.Contains(lower, "eur"):
		return "EUR"
	default:
		return ""
	}
}
