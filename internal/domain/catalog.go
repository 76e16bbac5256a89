package domain

// Volume is one size/price tier of a product.
type Volume struct {
	Label string `json:"volume"`
	Price int64  `json:"price"`
}

// Product is a menu drink. Immutable after catalog load.
type Product struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Volumes []Volume `json:"volumes"`
}

// Option is a milk or syrup variant. IDs are unique across categories.
type Option struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
}

const (
	CategoryMilk  = "milk"
	CategorySyrup = "syrups"
)

// CoffeeShop maps a pickup address to the admin chat that takes its orders.
type CoffeeShop struct {
	AdminID int64  `json:"admin_id"`
	Address string `json:"address"`
}
