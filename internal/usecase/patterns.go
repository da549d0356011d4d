package usecase

import "regexp"

// captureSet declares which named groups a pattern is allowed to populate.
// Patterns share group names, so the mask replaces dynamic group lookup:
// a descriptor only ever contributes the fields it declares.
type captureSet struct {
	product   bool
	quantity  bool
	unit      bool
	unitPrice bool
	total     bool
}

// patternDescriptor is one line shape in the catalog.
type patternDescriptor struct {
	re          *regexp.Regexp
	priority    int // 1 (most specific) through 4 (least specific)
	description string
	captures    captureSet
}

// Building blocks shared across the catalog
const (
	// Currency markers accepted as an optional prefix before any amount
	currencySymbols  = `(?:Rs\.?|₹|INR|USD|\$|€|£|GBP|EUR|₦|NGN|N|#)`
	optionalCurrency = `(?:` + currencySymbols + `\s*)?`

	// Monetary amount: digit groups with optional thousands commas and 1-2 decimals
	amount = `[\d,]+(?:\.\d{1,2})?`

	// Bare quantity
	qty = `\d+(?:\.\d+)?`

	// Product name for delimiter-based shapes: anything except digits and
	// the structural characters the shapes key on
	productLoose = `[^\d:\-–—@()]+?`

	// Product name for whitespace-based shapes: letters and spaces only
	productWords = `[A-Za-z][A-Za-z\s]+?`
)

// newPatternCatalog compiles the ordered line-shape catalog. Order matters:
// every shape is attempted against every line and ties on confidence go to
// the earliest entry, so the most specific shapes are listed first.
func newPatternCatalog() []patternDescriptor {
	return []patternDescriptor{
		{
			// "Sugar – Rs. 6,000 (50 kg)"
			re: regexp.MustCompile(`(?i)^(?P<product>` + productLoose + `)\s*[-–—]\s*` +
				optionalCurrency + `\s*(?P<total>` + amount + `)\s*` +
				`\(\s*(?P<quantity>` + qty + `)\s*(?P<unit>[a-zA-Z]+)\s*\)`),
			priority:    1,
			description: "product - price (quantity unit)",
			captures:    captureSet{product: true, total: true, quantity: true, unit: true},
		},
		{
			// "Sugar – 6,000 (50 kg)" without a currency marker
			re: regexp.MustCompile(`(?i)^(?P<product>` + productLoose + `)\s*[-–—]\s*` +
				`(?P<total>` + amount + `)\s*` +
				`\(\s*(?P<quantity>` + qty + `)\s*(?P<unit>[a-zA-Z]+)\s*\)`),
			priority:    1,
			description: "product - price (quantity unit) no currency",
			captures:    captureSet{product: true, total: true, quantity: true, unit: true},
		},
		{
			// "Wheat Flour (10kg @ 950)" or "Wheat Flour (10kg @ Rs. 950)"
			re: regexp.MustCompile(`(?i)^(?P<product>` + productLoose + `)\s*` +
				`\(\s*(?P<quantity>` + qty + `)\s*(?P<unit>[a-zA-Z]+)\s*` +
				`@\s*` + optionalCurrency + `\s*(?P<unit_price>` + amount + `)\s*\)`),
			priority:    1,
			description: "product (quantity unit @ price)",
			captures:    captureSet{product: true, quantity: true, unit: true, unitPrice: true},
		},
		{
			// "Cooking Oil: Qty 5 bottles Price 1200/bottle"
			re: regexp.MustCompile(`(?i)^(?P<product>` + productLoose + `)\s*:\s*` +
				`(?:Qty|Quantity)?\s*(?P<quantity>` + qty + `)?\s*(?P<unit>[a-zA-Z]+)?\s*` +
				`(?:Price|Rate|Cost)?\s*` + optionalCurrency + `\s*(?P<unit_price>` + amount + `)\s*/`),
			priority:    1,
			description: "product: qty unit price/unit",
			captures:    captureSet{product: true, quantity: true, unit: true, unitPrice: true},
		},
		{
			// "Rice 25kg Rs.2500" or "Rice 25kg 2500"
			re: regexp.MustCompile(`(?i)^(?P<product>` + productWords + `)\s+` +
				`(?P<quantity>` + qty + `)\s*(?P<unit>[a-zA-Z]+)\s+` +
				optionalCurrency + `\s*(?P<total>` + amount + `)$`),
			priority:    2,
			description: "product quantity unit price",
			captures:    captureSet{product: true, quantity: true, unit: true, total: true},
		},
		{
			// "Tomato 10kg @ 45/kg" or "Tomato @ Rs.45/kg" (quantity optional)
			re: regexp.MustCompile(`(?i)^(?P<product>` + productWords + `)\s+` +
				`(?:(?P<quantity>` + qty + `)\s*(?P<unit>[a-zA-Z]+)\s*)?` +
				`@\s*` + optionalCurrency + `\s*(?P<unit_price>` + amount + `)(?:/\w+)?$`),
			priority:    2,
			description: "product quantity unit @ price",
			captures:    captureSet{product: true, quantity: true, unit: true, unitPrice: true},
		},
		{
			// "Oil Rs.300/litre" or "Oil 300/litre"
			re: regexp.MustCompile(`(?i)^(?P<product>` + productWords + `)\s+` +
				optionalCurrency + `\s*(?P<unit_price>` + amount + `)\s*/(?P<unit>[a-zA-Z]+)$`),
			priority:    2,
			description: "product price/unit",
			captures:    captureSet{product: true, unitPrice: true, unit: true},
		},
		{
			// "Sugar – Rs. 6,000" with no quantity at all
			re: regexp.MustCompile(`(?i)^(?P<product>` + productWords + `)\s*[-–—]\s*` +
				optionalCurrency + `\s*(?P<total>` + amount + `)$`),
			priority:    3,
			description: "product - price only",
			captures:    captureSet{product: true, total: true},
		},
		{
			// "Sugar 50kg" with no price at all
			re: regexp.MustCompile(`(?i)^(?P<product>` + productWords + `)\s+` +
				`(?P<quantity>` + qty + `)\s*(?P<unit>[a-zA-Z]+)$`),
			priority:    4,
			description: "product quantity unit only",
			captures:    captureSet{product: true, quantity: true, unit: true},
		},
		{
			// "Sugar Rs.6000 50kg" with price before quantity
			re: regexp.MustCompile(`(?i)^(?P<product>` + productWords + `)\s+` +
				optionalCurrency + `\s*(?P<total>` + amount + `)\s+` +
				`(?P<quantity>` + qty + `)\s*(?P<unit>[a-zA-Z]+)$`),
			priority:    2,
			description: "product price quantity unit",
			captures:    captureSet{product: true, total: true, quantity: true, unit: true},
		},
		{
			// Unanchored variant of "product quantity unit price": may match
			// inside a longer line such as "Sugar 50kg Rs.6000, Rice 25kg Rs.2500".
			// Only the leftmost match is extracted.
			re: regexp.MustCompile(`(?i)(?P<product>` + productWords + `)\s+` +
				`(?P<quantity>` + qty + `)\s*(?P<unit>[a-zA-Z]+)\s+` +
				optionalCurrency + `\s*(?P<total>` + amount + `)`),
			priority:    1,
			description: "multi-item pattern",
			captures:    captureSet{product: true, quantity: true, unit: true, total: true},
		},
	}
}

// namedGroups extracts the non-empty named groups from a submatch result.
func namedGroups(re *regexp.Regexp, match []string) map[string]string {
	groups := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" || i >= len(match) {
			continue
		}
		if match[i] != "" {
			groups[name] = match[i]
		}
	}
	return groups
}
