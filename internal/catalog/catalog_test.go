package catalog_test

import (
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/cartusagri/storefront/internal/catalog"
	"github.com/cartusagri/storefront/internal/db"
	"github.com/cartusagri/storefront/internal/models"
)

type fakeSession struct {
	user *models.User
}

func (f *fakeSession) Current() *models.User { return f.user }

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("openTestDB: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func seedProducts(t *testing.T, d *db.DB) {
	t.Helper()
	for _, p := range []models.Product{
		{ID: "p1", Name: "Whole Free-Range Chicken", Description: "Farm-raised whole chicken", Price: 15.99, Category: "whole", Stock: 25, Featured: true, Sold: 780},
		{ID: "p2", Name: "Chicken Breast Fillets", Description: "Boneless skinless fillets", Price: 12.99, Category: "parts", Stock: 48, Featured: true, Sold: 1200},
		{ID: "p3", Name: "Premium Chicken Sausages", Description: "Herbed sausages ready for the grill", Price: 9.99, Category: "processed", Stock: 30, Sold: 560},
	} {
		p := p
		if err := d.InsertProduct(&p); err != nil {
			t.Fatalf("seedProducts: %v", err)
		}
	}
}

func newStore(t *testing.T, d *db.DB, sess *fakeSession) *catalog.Store {
	t.Helper()
	seedProducts(t, d)
	return catalog.New(d, sess)
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestQueries(t *testing.T) {
	c := qt.New(t)
	s := newStore(t, openTestDB(t), &fakeSession{})

	c.Run("all", func(c *qt.C) {
		got, err := s.All()
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.HasLen, 3)
		c.Assert(got[0].ID, qt.Equals, "p1")
	})

	c.Run("by id", func(c *qt.C) {
		p, err := s.ByID("p2")
		c.Assert(err, qt.IsNil)
		c.Assert(p.Name, qt.Equals, "Chicken Breast Fillets")

		_, err = s.ByID("ghost")
		c.Assert(err, qt.ErrorIs, catalog.ErrProductNotFound)
	})

	c.Run("featured", func(c *qt.C) {
		got, err := s.Featured()
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.HasLen, 2)
	})

	c.Run("by category", func(c *qt.C) {
		got, err := s.ByCategory("processed")
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.HasLen, 1)
		c.Assert(got[0].ID, qt.Equals, "p3")

		got, err = s.ByCategory("organs")
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.HasLen, 0)
	})

	c.Run("best sellers", func(c *qt.C) {
		got, err := s.BestSellers(2)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.HasLen, 2)
		c.Assert(got[0].ID, qt.Equals, "p2")
		c.Assert(got[1].ID, qt.Equals, "p1")
	})
}

func TestSearch(t *testing.T) {
	c := qt.New(t)
	s := newStore(t, openTestDB(t), &fakeSession{})

	got, err := s.Search("sausage", 10)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 1)
	c.Assert(got[0].ID, qt.Equals, "p3")

	// Blank queries return nothing rather than everything.
	got, err = s.Search("   ", 10)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 0)
}

// ---------------------------------------------------------------------------
// Reviews
// ---------------------------------------------------------------------------

func TestAddReview_HappyPath(t *testing.T) {
	c := qt.New(t)
	user := &models.User{ID: "2", Name: "John Doe", Email: "user@example.com", Role: models.RoleUser}
	s := newStore(t, openTestDB(t), &fakeSession{user: user})

	r, err := s.AddReview("p1", 4, "Fresh and delicious. Will buy again.")
	c.Assert(err, qt.IsNil)
	c.Assert(r.ProductID, qt.Equals, "p1")
	c.Assert(r.UserName, qt.Equals, "John Doe")
	c.Assert(r.Rating, qt.Equals, 4)

	got, err := s.Reviews("p1")
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 1)
	c.Assert(got[0].ID, qt.Equals, r.ID)
}

func TestAddReview_Preconditions(t *testing.T) {
	c := qt.New(t)
	sess := &fakeSession{}
	s := newStore(t, openTestDB(t), sess)

	_, err := s.AddReview("p1", 4, "nice")
	c.Assert(err, qt.ErrorIs, catalog.ErrNotAuthenticated)

	sess.user = &models.User{ID: "2", Name: "John Doe", Role: models.RoleUser}
	for _, rating := range []int{0, -1, 6} {
		_, err = s.AddReview("p1", rating, "nice")
		c.Assert(err, qt.ErrorIs, catalog.ErrInvalidRating)
	}

	_, err = s.AddReview("ghost", 4, "nice")
	c.Assert(err, qt.ErrorIs, catalog.ErrProductNotFound)
}
