package service_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/cartusagri/storefront/internal/service"
)

func newService(t *testing.T, home string) *service.Service {
	t.Helper()
	svc, err := service.New(home)
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestNew_SeedsAndWires(t *testing.T) {
	c := qt.New(t)
	svc := newService(t, t.TempDir())

	products, err := svc.Catalog.All()
	c.Assert(err, qt.IsNil)
	c.Assert(products, qt.HasLen, 12)
	c.Assert(svc.Blog.Posts(), qt.HasLen, 3)
	c.Assert(svc.Session.IsAuthenticated(), qt.IsFalse)
	c.Assert(svc.Cart.Count(), qt.Equals, 0)
}

func TestStateSurvivesReopen(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()

	svc := newService(t, home)
	_, err := svc.Session.Login("user@example.com", "user123")
	c.Assert(err, qt.IsNil)
	p, err := svc.Catalog.ByID("p1")
	c.Assert(err, qt.IsNil)
	c.Assert(svc.Cart.Add(*p, 2), qt.IsNil)
	_, err = svc.Chat.Send("do you deliver on Sundays?", "")
	c.Assert(err, qt.IsNil)
	c.Assert(svc.Close(), qt.IsNil)

	again := newService(t, home)
	c.Assert(again.Session.IsAuthenticated(), qt.IsTrue)
	c.Assert(again.Cart.Count(), qt.Equals, 2)
	c.Assert(again.Chat.MessagesWith(""), qt.HasLen, 1)

	// Seeding did not run twice.
	products, err := again.Catalog.All()
	c.Assert(err, qt.IsNil)
	c.Assert(products, qt.HasLen, 12)
}

func TestStats(t *testing.T) {
	c := qt.New(t)
	svc := newService(t, t.TempDir())

	_, err := svc.Session.Login("user@example.com", "user123")
	c.Assert(err, qt.IsNil)
	_, err = svc.Chat.Send("hello", "")
	c.Assert(err, qt.IsNil)
	_, err = svc.Session.Login("admin@cartusagri.com", "admin123")
	c.Assert(err, qt.IsNil)

	report, err := svc.Stats(5)
	c.Assert(err, qt.IsNil)
	c.Assert(report.ProductCount, qt.Equals, 12)
	c.Assert(report.ReviewCount, qt.Equals, 6)
	c.Assert(report.PostCount, qt.Equals, 3)
	c.Assert(report.UnreadMessages, qt.Equals, 1)
	c.Assert(report.InventoryValue > 0, qt.IsTrue)

	c.Assert(report.TopSelling, qt.HasLen, 5)
	c.Assert(report.TopSelling[0].ID, qt.Equals, "p2")
	c.Assert(report.TopSelling[1].ID, qt.Equals, "p4")
}
