package domain

// ParsedItem represents one product line extracted from invoice text.
// Optional fields are nil when the matched pattern did not capture them
// or the captured token failed normalization.
type ParsedItem struct {
	ProductName *string  `json:"product_name"`
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"` // canonical unit; "" means no unit token captured
	UnitPrice   *float64 `json:"unit_price"`
	TotalPrice  *float64 `json:"total_price"`
	Confidence  float64  `json:"confidence"`
	RawText     string   `json:"raw_text"`
	Errors      []string `json:"errors"`
}

// ToMap returns a serialization-friendly projection of the item with every
// field present; absent optional fields map to nil.
func (i ParsedItem) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"product_name": nil,
		"quantity":     nil,
		"unit":         i.Unit,
		"unit_price":   nil,
		"total_price":  nil,
		"confidence":   i.Confidence,
		"raw_text":     i.RawText,
		"errors":       i.Errors,
	}
	if i.ProductName != nil {
		m["product_name"] = *i.ProductName
	}
	if i.Quantity != nil {
		m["quantity"] = *i.Quantity
	}
	if i.UnitPrice != nil {
		m["unit_price"] = *i.UnitPrice
	}
	if i.TotalPrice != nil {
		m["total_price"] = *i.TotalPrice
	}
	return m
}
