package usecase

import "testing"

func TestIsNoiseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"invoice header with number", "Invoice #88912", true},
		{"invoice header lowercase", "invoice 1234", true},
		{"invoice mention without number", "Invoice pending", false},
		{"trader name", "Al Noor Traders", true},
		{"trader singular", "City Trader", true},
		{"greeting", "Thank you!", true},
		{"greeting with words between", "Thank you for your business", true},
		{"total summary", "Total: Rs. 7,750", true},
		{"grand total summary", "Grand Total: Rs. 8,370", true},
		{"tax summary", "Tax: Rs. 620", true},
		{"bare number", "12345", true},
		{"bare number with spaces", "  42  ", true},
		{"too short", "ab", true},
		{"empty", "", true},
		{"product line", "Sugar – Rs. 6,000 (50 kg)", false},
		{"product with colon", "Cooking Oil: Qty 5 bottles Price 1200/bottle", false},
		{"plain product line", "Rice 25kg 2500", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isNoiseLine(tt.line)
			if got != tt.want {
				t.Errorf("isNoiseLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
