package storefront

import (
	"fmt"
	"strconv"
	"strings"
)

// priceNoise are the decorations storefronts wrap around the number.
var priceNoise = strings.NewReplacer("₹", "", "Rs.", "", "Rs", "", ",", "")

// ParsePrice normalizes a scraped price string ("₹1,29,999", "24999.00")
// to a positive integer rupee amount. Fractional paise are truncated.
func ParsePrice(raw string) (int, error) {
	cleaned := strings.TrimSpace(priceNoise.Replace(raw))
	if cleaned == "" {
		return 0, fmt.Errorf("empty price text %q", raw)
	}

	// Some cards append availability text after the amount.
	if fields := strings.Fields(cleaned); len(fields) > 0 {
		cleaned = fields[0]
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable price %q: %w", raw, err)
	}

	price := int(value)
	if price <= 0 {
		return 0, fmt.Errorf("non-positive price %q", raw)
	}

	return price, nil
}
