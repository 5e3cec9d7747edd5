package tools

import "github.com/rahul/drishti/internal/dataset"

// testStore builds a small in-memory dataset shared by the tool tests.
// Rows are review-grain: the cable appears twice with different reviews.
func testStore() *dataset.Store {
	return dataset.New([]dataset.Product{
		{
			ProductID:       "B001",
			ProductName:     "boAt Type-C Cable",
			Category:        "Computers&Accessories|Cables|USBCables",
			SubCategory:     "USBCables",
			DiscountedPrice: 399,
			ActualPrice:     1099,
			DiscountPct:     64,
			Rating:          4.2,
			RatingCount:     24269,
			About:           "Fast charging type-c cable",
			ReviewTitle:     "Good product",
			ReviewContent:   "Good quality cable and fast charging. Worth the price.",
		},
		{
			ProductID:       "B001",
			ProductName:     "boAt Type-C Cable",
			Category:        "Computers&Accessories|Cables|USBCables",
			SubCategory:     "USBCables",
			DiscountedPrice: 399,
			ActualPrice:     1099,
			DiscountPct:     64,
			Rating:          4.2,
			RatingCount:     24269,
			About:           "Fast charging type-c cable",
			ReviewTitle:     "Stopped working",
			ReviewContent:   "The cable broke after two weeks. Very disappointed with the quality.",
		},
		{
			ProductID:       "B002",
			ProductName:     "Noise Buds Earbuds",
			Category:        "Electronics|Audio|Headphones",
			SubCategory:     "Headphones",
			DiscountedPrice: 1299,
			ActualPrice:     2999,
			DiscountPct:     57,
			Rating:          4.0,
			RatingCount:     5012,
			About:           "Wireless bluetooth earbuds",
			ReviewTitle:     "Battery issue",
			ReviewContent:   "Battery drains quickly and bluetooth keeps disconnecting. Bad experience.",
		},
		{
			ProductID:       "B003",
			ProductName:     "Samsung Crystal TV",
			Category:        "Electronics|HomeTheater|Televisions",
			SubCategory:     "Televisions",
			DiscountedPrice: 35000,
			ActualPrice:     50000,
			DiscountPct:     30,
			Rating:          4.5,
			RatingCount:     200,
			About:           "55 inch smart television",
			ReviewTitle:     "Excellent",
			ReviewContent:   "Excellent picture quality. Love this TV, easy to set up.",
		},
		{
			ProductID:       "B004",
			ProductName:     "Milton Steel Bottle",
			Category:        "Home&Kitchen|Bottles",
			SubCategory:     "Bottles",
			DiscountedPrice: 450,
			ActualPrice:     700,
			DiscountPct:     36,
			Rating:          3.8,
			RatingCount:     800,
			About:           "Insulated steel water bottle",
			ReviewTitle:     "Leaks",
			ReviewContent:   "The bottle leaks from the cap. Complete waste of money.",
		},
	})
}
