package standin

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"discount24/internal/domain"
)

// DemoEmail and DemoPassword sign in as the first seeded vendor.
const (
	DemoEmail    = "demo@discount24.local"
	DemoPassword = "discount24"
)

func f64(v float64) *float64 { return &v }

func (s *Server) seed() error {
	vendors := []domain.Vendor{
		{
			ID: "1", Name: "Morning Brew", Description: "Specialty coffee and fresh pastries",
			Category: domain.CategoryCafe, Location: "Downtown", Rating: f64(4.6),
			Offers: "20% off before 9am", Contact: "555-0101",
			Coordinates: &domain.Coordinate{Latitude: 41.3111, Longitude: 69.2797},
		},
		{
			ID: "2", Name: "Golden Crust", Description: "Artisan breads baked daily",
			Category: domain.CategoryBakery, Location: "Old Town", Rating: f64(4.8),
			Offers: "Buy 2 loaves get 1 free", Contact: "555-0102",
			Coordinates: &domain.Coordinate{Latitude: 41.3260, Longitude: 69.2285},
		},
		{
			ID: "3", Name: "Fresh Market", Description: "Local produce and pantry staples",
			Category: domain.CategoryGrocery, Location: "41.2995,69.2401", Rating: f64(4.2),
			Offers: "15% off organic vegetables", Contact: "555-0103",
		},
		{
			ID: "4", Name: "Tech Corner", Description: "Phones, laptops and accessories",
			Category: domain.CategoryElectronics, Location: "Mall Level 2", Rating: f64(4.0),
			Offers: "Free case with every phone", Contact: "555-0104",
		},
	}
	menus := map[string][]domain.MenuItem{
		"1": {
			{ID: "101", Name: "Cappuccino", Description: "Double shot with steamed milk", Price: 4.5, Discount: f64(20), Category: "Drinks"},
			{ID: "102", Name: "Croissant", Description: "Butter croissant", Price: 3.25, Category: "Pastry"},
			{ID: "103", Name: "Tea", Description: "Loose leaf green tea", Price: 4, Discount: f64(25), Category: "Drinks"},
		},
		"2": {
			{ID: "201", Name: "Sourdough Loaf", Description: "48 hour ferment", Price: 8.99, Discount: f64(0), Category: "Bread"},
			{ID: "202", Name: "Rye Bread", Description: "Dark rye with caraway", Price: 12.99, Discount: f64(20), Category: "Bread"},
			{ID: "203", Name: "Cinnamon Roll", Description: "Cream cheese glaze", Price: 15.99, Discount: f64(15), Category: "Sweet"},
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), s.cost)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors = vendors
	s.menus = menus
	s.accounts[DemoEmail] = account{vendorID: "1", hash: hash}
	return nil
}
