package stats_test

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/cartusagri/storefront/internal/models"
	"github.com/cartusagri/storefront/internal/stats"
)

func TestInventoryValue(t *testing.T) {
	c := qt.New(t)

	products := []models.Product{
		{ID: "p1", Price: 15.99, Stock: 25},
		{ID: "p2", Price: 12.99, Stock: 48},
		{ID: "p3", Price: 2.99, Stock: 0},
	}
	got := stats.InventoryValue(products)
	want := 15.99*25 + 12.99*48
	if math.Abs(got-want) > 1e-9 {
		c.Fatalf("got %v, want %v", got, want)
	}

	c.Assert(stats.InventoryValue(nil), qt.Equals, 0.0)
}

func TestTopSelling(t *testing.T) {
	c := qt.New(t)

	products := []models.Product{
		{ID: "p1", Sold: 780},
		{ID: "p2", Sold: 1200},
		{ID: "p3", Sold: 950},
		{ID: "p4", Sold: 1050},
		{ID: "p5", Sold: 950},
	}

	got := stats.TopSelling(products, 3)
	c.Assert(got, qt.HasLen, 3)
	c.Assert(got[0].ID, qt.Equals, "p2")
	c.Assert(got[1].ID, qt.Equals, "p4")
	c.Assert(got[2].ID, qt.Equals, "p3")

	// Ties keep catalog order.
	got = stats.TopSelling(products, 5)
	c.Assert(got[2].ID, qt.Equals, "p3")
	c.Assert(got[3].ID, qt.Equals, "p5")

	// Asking for more than exists returns everything.
	c.Assert(stats.TopSelling(products, 10), qt.HasLen, 5)

	// The input order is untouched.
	c.Assert(products[0].ID, qt.Equals, "p1")
}
