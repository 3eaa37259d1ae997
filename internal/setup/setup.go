// Package setup seeds a fresh store with the sample catalog, reviews and
// journal posts, so the storefront is browsable from the first run.
package setup

import (
	"fmt"
	"time"

	"github.com/cartusagri/storefront/internal/db"
	"github.com/cartusagri/storefront/internal/models"
)

const unsplashParams = "?auto=format&fit=crop&w=1000&q=80"

func unsplash(photoID string) string {
	return "https://images.unsplash.com/photo-" + photoID + unsplashParams
}

// SampleProducts returns the seed catalog.
func SampleProducts() []models.Product {
	return []models.Product{
		{
			ID:          "p1",
			Name:        "Whole Free-Range Chicken",
			Description: "Farm-fresh, free-range whole chicken raised on open pastures with natural feed, no antibiotics or hormones.",
			Price:       15.99,
			Image:       unsplash("1587486913049-53fc88980cfc"),
			Images: []string{
				unsplash("1587486913049-53fc88980cfc"),
				unsplash("1518492104633-130d6fed4a86"),
			},
			Category: "whole", Stock: 25, Rating: 4.8, ReviewCount: 124,
			IsOrganic: true, IsFreeRange: true, Featured: true, Sold: 780,
		},
		{
			ID:          "p2",
			Name:        "Chicken Breast Fillets",
			Description: "Premium skinless chicken breast fillets, perfect for grilling or baking. Lean, high-protein option.",
			Price:       12.99, OldPrice: 14.99,
			Image:  unsplash("1604503468506-a8da13d82791"),
			Images: []string{unsplash("1604503468506-a8da13d82791")},
			Category: "parts", Stock: 48, Rating: 4.6, ReviewCount: 89,
			IsOrganic: true, IsFreeRange: true, Featured: true, Sold: 1200,
		},
		{
			ID:          "p3",
			Name:        "Chicken Thighs",
			Description: "Juicy, flavorful chicken thighs with skin-on. Perfect for roasting, grilling, or slow cooking.",
			Price:       8.99,
			Image:       unsplash("1588168333986-5078d3ae3976"),
			Images:      []string{unsplash("1588168333986-5078d3ae3976")},
			Category:    "parts", Stock: 36, Rating: 4.7, ReviewCount: 67,
			IsOrganic: true, IsFreeRange: true, Sold: 950,
		},
		{
			ID:          "p4",
			Name:        "Chicken Wings",
			Description: "Fresh chicken wings, perfect for baking, frying, or grilling. Great for parties and game days.",
			Price:       7.99,
			Image:       unsplash("1527477396000-e27163b481c2"),
			Images:      []string{unsplash("1527477396000-e27163b481c2")},
			Category:    "parts", Stock: 52, Rating: 4.5, ReviewCount: 78,
			IsFreeRange: true, Featured: true, Sold: 1050,
		},
		{
			ID:          "p5",
			Name:        "Chicken Drumsticks",
			Description: "Tender and flavorful chicken drumsticks, perfect for baking, grilling, or frying.",
			Price:       6.99,
			Image:       unsplash("1626082927389-6cd097cdc6ec"),
			Images:      []string{unsplash("1626082927389-6cd097cdc6ec")},
			Category:    "parts", Stock: 40, Rating: 4.4, ReviewCount: 56,
			IsFreeRange: true, Sold: 820,
		},
		{
			ID:          "p6",
			Name:        "Organic Chicken Liver",
			Description: "Fresh organic chicken liver, rich in iron and nutrients. Perfect for traditional recipes.",
			Price:       4.99,
			Image:       unsplash("1602470521006-dfc86da9be6f"),
			Images:      []string{unsplash("1602470521006-dfc86da9be6f")},
			Category:    "organs", Stock: 20, Rating: 4.2, ReviewCount: 34,
			IsOrganic: true, IsFreeRange: true, Sold: 340,
		},
		{
			ID:          "p7",
			Name:        "Premium Chicken Sausages",
			Description: "Handcrafted chicken sausages with premium herbs and spices. No fillers or artificial ingredients.",
			Price:       9.99,
			Image:       unsplash("1604503468605-19cf3cdacb21"),
			Images:      []string{unsplash("1604503468605-19cf3cdacb21")},
			Category:    "processed", Stock: 30, Rating: 4.8, ReviewCount: 42,
			IsOrganic: true, IsFreeRange: true, Featured: true, Sold: 560,
		},
		{
			ID:          "p8",
			Name:        "Marinated Chicken Kebabs",
			Description: "Ready-to-grill chicken kebabs marinated in our special herb blend. Perfect for BBQs.",
			Price:       11.99, OldPrice: 13.99,
			Image:  unsplash("1555939594-58d7cb561ad1"),
			Images: []string{unsplash("1555939594-58d7cb561ad1")},
			Category: "processed", Stock: 25, Rating: 4.7, ReviewCount: 38,
			IsFreeRange: true, Sold: 480,
		},
		{
			ID:          "p9",
			Name:        "Organic Ground Chicken",
			Description: "Finely ground premium chicken meat, perfect for burgers, meatballs, or any recipe requiring ground meat.",
			Price:       8.49,
			Image:       unsplash("1615937657715-bc7b4b7962c1"),
			Images:      []string{unsplash("1615937657715-bc7b4b7962c1")},
			Category:    "processed", Stock: 45, Rating: 4.6, ReviewCount: 52,
			IsOrganic: true, IsFreeRange: true, Featured: true, Sold: 890,
		},
		{
			ID:          "p10",
			Name:        "Chicken Soup Bones",
			Description: "Perfect bones for making rich, flavorful homemade chicken broth or stock. Packed with nutrients.",
			Price:       3.99,
			Image:       unsplash("1551649556-2cc408a7c7f2"),
			Images:      []string{unsplash("1551649556-2cc408a7c7f2")},
			Category:    "parts", Stock: 60, Rating: 4.3, ReviewCount: 28,
			IsOrganic: true, IsFreeRange: true, Sold: 420,
		},
		{
			ID:          "p11",
			Name:        "Premium Chicken Tenderloin",
			Description: "Ultra-tender chicken tenderloin strips, perfect for quick and healthy meals. Minimal preparation required.",
			Price:       10.99,
			Image:       unsplash("1598515214211-89d3c73ae83b"),
			Images:      []string{unsplash("1598515214211-89d3c73ae83b")},
			Category:    "parts", Stock: 35, Rating: 4.9, ReviewCount: 64,
			IsOrganic: true, IsFreeRange: true, Featured: true, Sold: 910,
		},
		{
			ID:          "p12",
			Name:        "Chicken Feet",
			Description: "Traditional ingredient for soups and broths. Rich in collagen and nutrients for joint health.",
			Price:       2.99,
			Image:       unsplash("1609252880722-cfa0dd6a849c"),
			Images:      []string{unsplash("1609252880722-cfa0dd6a849c")},
			Category:    "parts", Stock: 30, Rating: 4.1, ReviewCount: 19,
			IsOrganic: true, IsFreeRange: true, Sold: 240,
		},
	}
}

// SampleReviews returns the seed reviews. Every product id referenced here
// must exist in SampleProducts.
func SampleReviews() []models.Review {
	return []models.Review{
		{
			ID: "r1", UserID: "u1", ProductID: "p1",
			UserName:   "John Smith",
			UserAvatar: "https://randomuser.me/api/portraits/men/1.jpg",
			Rating:     4,
			Comment:    "The whole chicken was fresh and delicious. Definitely will buy again!",
			CreatedAt:  time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID: "r2", UserID: "u2", ProductID: "p2",
			UserName:   "Emma Johnson",
			UserAvatar: "https://randomuser.me/api/portraits/women/2.jpg",
			Rating:     5,
			Comment:    "These chicken breasts are the best I've ever had. So tender and flavorful!",
			CreatedAt:  time.Date(2023, 5, 14, 14, 20, 0, 0, time.UTC),
		},
		{
			ID: "r3", UserID: "u3", ProductID: "p3",
			UserName:   "Michael Brown",
			UserAvatar: "https://randomuser.me/api/portraits/men/3.jpg",
			Rating:     2,
			Comment:    "The thighs were smaller than expected and a bit dry.",
			CreatedAt:  time.Date(2023, 5, 13, 9, 45, 0, 0, time.UTC),
		},
		{
			ID: "r4", UserID: "u4", ProductID: "p4",
			UserName:   "Sophia Davis",
			UserAvatar: "https://randomuser.me/api/portraits/women/4.jpg",
			Rating:     5,
			Comment:    "Perfect wings for our BBQ! Everyone loved them.",
			CreatedAt:  time.Date(2023, 5, 12, 18, 15, 0, 0, time.UTC),
		},
		{
			ID: "r5", UserID: "u5", ProductID: "p5",
			UserName:   "Olivia Wilson",
			UserAvatar: "https://randomuser.me/api/portraits/women/5.jpg",
			Rating:     4,
			Comment:    "Good drumsticks, but packaging could be improved.",
			CreatedAt:  time.Date(2023, 5, 11, 12, 10, 0, 0, time.UTC),
		},
		{
			ID: "r6", UserID: "u6", ProductID: "p6",
			UserName:   "William Taylor",
			UserAvatar: "https://randomuser.me/api/portraits/men/6.jpg",
			Rating:     1,
			Comment:    "Not fresh at all. Very disappointed with the quality.",
			CreatedAt:  time.Date(2023, 5, 10, 15, 30, 0, 0, time.UTC),
		},
	}
}

// SamplePosts returns the seed journal posts, newest first.
func SamplePosts() []models.Blog {
	maria := models.User{
		ID: "3", Name: "Maria Johnson", Email: "maria@example.com",
		Role: models.RoleUser, Avatar: "https://i.pravatar.cc/150?img=5",
	}
	robert := models.User{
		ID: "5", Name: "Robert Chen", Email: "robert@cartusagri.com",
		Role: models.RoleAdmin, Avatar: "https://i.pravatar.cc/150?img=12",
	}

	return []models.Blog{
		{
			ID:    "3",
			Title: "Seasonal Recipes: Making the Most of Your Chicken",
			Content: "As the seasons change, so do the fresh ingredients available to complement your chicken dishes. " +
				"Spring brings tender vegetables like asparagus, peas, and early herbs that pair beautifully with lighter preparations. " +
				"Summer is perfect for grilling: marinate chicken pieces in olive oil, garlic, and fresh herbs before they hit the coals. " +
				"As autumn arrives, slow-cooked stews with root vegetables and warming spices make comforting meals for cooler evenings. " +
				"Winter calls for a classic coq au vin or chicken pot pie, and the bones are worth saving for a nourishing broth. " +
				"By following the rhythm of the seasons you enjoy your chicken at its best while supporting local agriculture.",
			Excerpt:   "Explore how to adapt your chicken recipes to each season, making the most of local, seasonal ingredients for delicious and sustainable meals.",
			Author:    maria,
			CreatedAt: time.Date(2023, 12, 7, 15, 20, 0, 0, time.UTC),
			ImageURL:  unsplash("1598103442097-8b74394b95c6"),
			Tags:      []string{"recipes", "seasonal cooking", "farm to table", "sustainability"},
			Likes:     31,
			Comments: []models.Comment{
				{
					ID:      "102",
					Content: "I tried the autumn chicken stew recipe and it was amazing! The whole family loved it.",
					Author: models.User{
						ID: "6", Name: "Sarah Miller", Email: "sarah@example.com", Role: models.RoleUser,
					},
					CreatedAt: time.Date(2023, 12, 10, 9, 15, 0, 0, time.UTC),
				},
				{
					ID:      "103",
					Content: "Do you have any recommendations for using chicken in cold summer dishes? It's too hot to cook where I live!",
					Author: models.User{
						ID: "7", Name: "Jason Patel", Email: "jason@example.com", Role: models.RoleUser,
					},
					CreatedAt: time.Date(2023, 12, 12, 11, 30, 0, 0, time.UTC),
				},
			},
		},
		{
			ID:    "2",
			Title: "The Benefits of Organic Chicken Feed",
			Content: "Switching to organic feed is one of the best decisions we've made on the farm. " +
				"Organic feed blends grains, seeds, and plant proteins grown without synthetic pesticides or genetically modified ingredients, " +
				"so fewer toxins accumulate in the birds and in the meat you eat. " +
				"The most noticeable benefit is improved immune function: our chickens get sick less often, which lets us keep the flock antibiotic-free. " +
				"Organic feed costs more upfront, but the birds convert it more efficiently and customers pay a premium for the result. " +
				"If you transition, do it gradually over a few weeks so the flock's digestion can adjust, and look for local sources first.",
			Excerpt:   "Discover why we chose organic feed for our chickens and the many benefits we've observed in their health and the quality of their meat.",
			Author:    robert,
			CreatedAt: time.Date(2023, 11, 3, 11, 45, 0, 0, time.UTC),
			ImageURL:  unsplash("1569096651661-820d0de8b4ab"),
			Tags:      []string{"organic", "nutrition", "sustainability", "chicken health"},
			Likes:     16,
			Comments:  []models.Comment{},
		},
		{
			ID:    "1",
			Title: "Raising Free-Range Chickens: A Complete Guide",
			Content: "Free-range farming is increasingly popular among small-scale farmers and homesteaders. " +
				"It improves the birds' quality of life and yields healthier, more flavorful meat. " +
				"Our chickens roam open pastures where they forage for insects, seeds, and plants; the natural diet and exercise produce leaner meat with better texture. " +
				"Predators are the main challenge. We rely on guardian animals, secure night housing, and strategic fencing to keep the flock safe. " +
				"Land management matters too: rotating the birds between pastures prevents overgrazing and reduces parasite buildup in the soil. " +
				"If you're considering the switch, start small and expand as you learn what works for your land.",
			Excerpt:   "Learn how raising free-range chickens leads to healthier birds and better quality meat, with practical tips from our farm.",
			Author:    maria,
			CreatedAt: time.Date(2023, 10, 15, 9, 30, 0, 0, time.UTC),
			ImageURL:  unsplash("1548550023-2bdb3c5beed7"),
			Tags:      []string{"free-range", "farming", "chicken care", "sustainability"},
			Likes:     24,
			Comments: []models.Comment{
				{
					ID:      "101",
					Content: "Great insights! I've been considering free-range for my small backyard flock. Do you have any tips for predator protection in a smaller space?",
					Author: models.User{
						ID: "4", Name: "Thomas Wright", Email: "thomas@example.com", Role: models.RoleUser,
					},
					CreatedAt: time.Date(2023, 10, 16, 14, 20, 0, 0, time.UTC),
				},
			},
		},
	}
}

// EnsureSeedData populates an empty store. It is idempotent: products and
// reviews seed only when the catalog is empty, posts only when none have
// been persisted yet.
func EnsureSeedData(d *db.DB) error {
	n, err := d.CountProducts()
	if err != nil {
		return fmt.Errorf("EnsureSeedData: %w", err)
	}
	if n == 0 {
		for _, p := range SampleProducts() {
			p := p
			if err := d.InsertProduct(&p); err != nil {
				return fmt.Errorf("EnsureSeedData: %w", err)
			}
		}
		for _, r := range SampleReviews() {
			r := r
			if err := d.InsertReview(&r); err != nil {
				return fmt.Errorf("EnsureSeedData: %w", err)
			}
		}
	}

	_, ok, err := d.LoadPosts()
	if err != nil {
		return fmt.Errorf("EnsureSeedData: %w", err)
	}
	if !ok {
		if err := d.SavePosts(SamplePosts()); err != nil {
			return fmt.Errorf("EnsureSeedData: %w", err)
		}
	}
	return nil
}
