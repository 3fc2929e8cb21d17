package models

import "time"

// Selling status tags a vendor can pin on a product card.
const (
	SellingStatusNone       = "none"
	SellingStatusBestSeller = "best_seller"
	SellingStatusNewArrival = "new_arrival"
)

// MaxProductImages caps the ordered image list on every product.
const MaxProductImages = 3

// FreePlanProductLimit is the active-product cap for free-plan vendors.
const FreePlanProductLimit = 10

// Product is the model for the 'products' table.
type Product struct {
	ID          int64   `json:"id" db:"id"`
	VendorID    int64   `json:"vendorId" db:"vendor_id"`
	StoreSlug   string  `json:"storeSlug" db:"store_slug"` // denormalized copy of the vendor slug
	Name        string  `json:"name" db:"name"`
	Price       float64 `json:"price" db:"price"` // GHS
	Stock       int     `json:"stock" db:"stock"` // advisory display data only
	Category    string  `json:"category" db:"category"` // denormalized label, not a foreign key
	Description string  `json:"description" db:"description"`

	// Ordered list, at most MaxProductImages entries.
	Images []string `json:"images"`

	SellingStatus string    `json:"sellingStatus" db:"selling_status"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
