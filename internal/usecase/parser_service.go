package usecase

import (
	"log"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Afeez1131/invoice-parsers/internal/domain"
)

// Confidence weights for candidate scoring
const (
	priorityOneWeight    = 0.4  // most specific shapes
	priorityTwoWeight    = 0.3  // whitespace-delimited shapes
	priorityLowWeight    = 0.2  // loose shapes (priority 3 and 4)
	productWeight        = 0.2  // product name present, longer than one character
	quantityWeight       = 0.15 // positive quantity present
	unitWeight           = 0.1  // non-empty canonical unit
	priceWeight          = 0.15 // either price field present
	defaultMinConfidence = 0.3
)

// ParserConfig holds configuration for the parser service
type ParserConfig struct {
	MinConfidence      float64
	EnableDebugLogging bool
}

// ParserService extracts structured line items from free-form invoice text.
// It holds only immutable state (the compiled pattern catalog), so a single
// instance is safe for concurrent use.
type ParserService struct {
	patterns           []patternDescriptor
	minConfidence      float64
	enableDebugLogging bool
}

// NewParserService creates a parser service with the given configuration
func NewParserService(config ParserConfig) *ParserService {
	threshold := config.MinConfidence
	if threshold <= 0 {
		threshold = defaultMinConfidence
	}

	return &ParserService{
		patterns:           newPatternCatalog(),
		minConfidence:      threshold,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Parse extracts line items from an invoice document. Lines are processed
// in source order; items whose confidence does not strictly exceed the
// configured threshold are dropped. Parse never fails: malformed tokens
// simply leave fields absent, and unrecognized lines contribute nothing.
func (s *ParserService) Parse(text string) []domain.ParsedItem {
	items := []domain.ParsedItem{}
	if text == "" {
		return items
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	for _, line := range strings.Split(text, "\n") {
		item := s.extractFromLine(line)
		if item != nil && item.Confidence > s.minConfidence {
			items = append(items, *item)
		}
	}

	return items
}

// ParseToDict returns the parse results as plain field maps, one per item,
// with absent optional fields serialized as null.
func (s *ParserService) ParseToDict(text string) []map[string]interface{} {
	items := s.Parse(text)
	dicts := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		dicts = append(dicts, item.ToMap())
	}
	return dicts
}

// extractFromLine runs every catalog pattern against one line and keeps the
// highest-scoring candidate. A candidate replaces the running best only on
// a strictly greater score, so ties go to the earliest pattern in the
// catalog. Returns nil for noise lines and lines matching no pattern.
func (s *ParserService) extractFromLine(line string) *domain.ParsedItem {
	line = strings.TrimSpace(line)
	if isNoiseLine(line) {
		return nil
	}

	var bestMatch *domain.ParsedItem
	bestScore := -1.0

	for _, descriptor := range s.patterns {
		match := descriptor.re.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		item := s.buildCandidate(line, descriptor, match)
		completeFields(item)
		item.Confidence = scoreCandidate(item, descriptor.priority)

		if s.enableDebugLogging {
			log.Printf("[PARSE] %q | pattern: %s | confidence: %.2f",
				line, descriptor.description, item.Confidence)
		}

		if item.Confidence > bestScore {
			bestScore = item.Confidence
			bestMatch = item
		}
	}

	return bestMatch
}

// buildCandidate populates a ParsedItem from the fields the descriptor
// declares. Groups outside the descriptor's capture set are ignored.
func (s *ParserService) buildCandidate(line string, descriptor patternDescriptor, match []string) *domain.ParsedItem {
	item := &domain.ParsedItem{
		RawText: line,
		Errors:  []string{},
	}

	groups := namedGroups(descriptor.re, match)

	if descriptor.captures.product {
		if raw, ok := groups["product"]; ok {
			name := strings.TrimSpace(raw)
			item.ProductName = &name
		}
	}
	if descriptor.captures.quantity {
		if raw, ok := groups["quantity"]; ok {
			item.Quantity = cleanNumber(raw)
		}
	}
	if descriptor.captures.unit {
		if raw, ok := groups["unit"]; ok {
			item.Unit = normalizeUnit(raw)
		}
	}
	if descriptor.captures.unitPrice {
		if raw, ok := groups["unit_price"]; ok {
			item.UnitPrice = cleanNumber(raw)
		}
	}
	if descriptor.captures.total {
		if raw, ok := groups["total"]; ok {
			item.TotalPrice = cleanNumber(raw)
		}
	}

	return item
}

// completeFields derives a missing price from the other price and a
// positive quantity. When both prices were extracted directly they are
// left alone, even if mutually inconsistent with the quantity.
func completeFields(item *domain.ParsedItem) {
	if item.Quantity == nil || *item.Quantity <= 0 {
		return
	}

	quantity := decimal.NewFromFloat(*item.Quantity)

	if item.TotalPrice != nil && item.UnitPrice == nil {
		unitPrice := decimal.NewFromFloat(*item.TotalPrice).Div(quantity).Round(2).InexactFloat64()
		item.UnitPrice = &unitPrice
	} else if item.UnitPrice != nil && item.TotalPrice == nil {
		totalPrice := decimal.NewFromFloat(*item.UnitPrice).Mul(quantity).Round(2).InexactFloat64()
		item.TotalPrice = &totalPrice
	}
}

// scoreCandidate computes the confidence score for a candidate extraction:
// a base weight from the pattern's priority tier plus a weight per
// populated field, capped at 1.0.
func scoreCandidate(item *domain.ParsedItem, priority int) float64 {
	var score float64

	switch priority {
	case 1:
		score += priorityOneWeight
	case 2:
		score += priorityTwoWeight
	default:
		score += priorityLowWeight
	}

	if item.ProductName != nil && utf8.RuneCountInString(*item.ProductName) > 1 {
		score += productWeight
	}
	if item.Quantity != nil && *item.Quantity > 0 {
		score += quantityWeight
	}
	if item.Unit != "" {
		score += unitWeight
	}
	if item.UnitPrice != nil || item.TotalPrice != nil {
		score += priceWeight
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
