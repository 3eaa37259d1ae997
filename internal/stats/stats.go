// Package stats derives the admin dashboard figures from the current
// collections. Everything here is a pure function; nothing is cached.
package stats

import (
	"sort"

	"github.com/cartusagri/storefront/internal/models"
)

// Report is the admin dashboard snapshot.
type Report struct {
	ProductCount   int              `json:"productCount"`
	ReviewCount    int              `json:"reviewCount"`
	PostCount      int              `json:"postCount"`
	InventoryValue float64          `json:"inventoryValue"`
	UnreadMessages int              `json:"unreadMessages"`
	TopSelling     []models.Product `json:"topSelling"`
}

// InventoryValue sums price times stock over all products.
func InventoryValue(products []models.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.Price * float64(p.Stock)
	}
	return total
}

// TopSelling returns up to n products ordered by units sold, most first.
// Ties keep their catalog order. The input slice is not modified.
func TopSelling(products []models.Product, n int) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sold > out[j].Sold })
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
