package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// skuOffset shifts brand IDs so even the first brand gets a three digit prefix.
const skuOffset = 100

// SKUPrefix derives the brand's SKU prefix from its numeric ID.
func SKUPrefix(brandID uint) string {
	return strconv.FormatUint(uint64(brandID)+skuOffset, 10)
}

// FormatSKU renders the canonical SKU for a brand prefix and sequence number.
func FormatSKU(prefix string, sequence int) string {
	return fmt.Sprintf("%s-%03d", prefix, sequence)
}

// maxSequence scans issued SKUs and returns the highest sequence under the
// prefix. Malformed values are skipped rather than failing item creation.
func maxSequence(skus []string, prefix string) int {
	max := 0
	for _, sku := range skus {
		suffix, ok := strings.CutPrefix(sku, prefix+"-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}
