package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// maxAmount is the upper bound for any parsed quantity or price.
// Values above it are treated as extraction noise rather than real amounts.
const maxAmount = 10000000

// Compiled regex patterns for numeric token cleaning
var (
	// Leading currency marker on a captured amount
	currencyPrefixPattern = regexp.MustCompile(`(?i)^` + currencySymbols + `\s*`)

	// Anything that is not a digit or a decimal point
	nonNumericPattern = regexp.MustCompile(`[^\d.]`)
)

// unitAliases maps raw unit tokens to their canonical form. Unknown tokens
// pass through lower-cased.
var unitAliases = map[string]string{
	"kg": "kg", "kgs": "kg", "kilogram": "kg", "kilograms": "kg", "kilo": "kg", "k": "kg",
	"g": "g", "gm": "g", "gram": "g", "grams": "g", "gr": "g",
	"l": "l", "ltr": "l", "litre": "l", "litres": "l", "liter": "l", "lt": "l",
	"ml": "ml", "milliliter": "ml", "millilitre": "ml", "mil": "ml",
	"pcs": "pcs", "pc": "pcs", "piece": "pcs", "pieces": "pcs", "p": "pcs",
	"bottle": "bottles", "bottles": "bottles", "btl": "bottles", "bot": "bottles",
	"packet": "packets", "packets": "packets", "pack": "packets", "pkt": "packets",
	"box": "boxes", "boxes": "boxes", "bx": "boxes",
	"dozen": "dozen", "doz": "dozen", "dz": "dozen",
	"unit": "units", "units": "units", "un": "units",
	"carton": "carton", "ctn": "carton", "crt": "carton",
	"bag": "bags", "bags": "bags", "sack": "sacks", "sacks": "sacks",
	"can": "cans", "cans": "cans",
	"jar": "jars", "jars": "jars",
	"tin": "tins", "tins": "tins",
	"roll": "rolls", "rolls": "rolls",
	"meter": "meters", "meters": "meters", "m": "meters",
	"yard": "yards", "yards": "yards", "yd": "yards",
}

// cleanNumber converts a raw numeric token to a bounded float.
// Returns nil when the token carries no usable number: empty after
// cleaning, unparseable, negative, or above maxAmount.
func cleanNumber(value string) *float64 {
	if value == "" {
		return nil
	}

	cleaned := strings.TrimSpace(value)
	cleaned = currencyPrefixPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = nonNumericPattern.ReplaceAllString(cleaned, "")

	// Collapse extra decimal points into the fraction: "1.234.56" becomes "1.23456"
	if parts := strings.Split(cleaned, "."); len(parts) > 2 {
		cleaned = parts[0] + "." + strings.Join(parts[1:], "")
	}

	if cleaned == "" {
		return nil
	}

	result, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	if result < 0 || result > maxAmount {
		return nil
	}

	return &result
}

// normalizeUnit maps a raw unit token to its canonical form.
func normalizeUnit(unit string) string {
	if unit == "" {
		return ""
	}
	lower := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := unitAliases[lower]; ok {
		return canonical
	}
	return lower
}
