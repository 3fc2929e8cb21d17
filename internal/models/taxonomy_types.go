package models

import "time"

// --- Domain Models ---

// Category is a per-vendor label. Products reference it by name only,
// so deleting a category leaves existing products untouched.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	VendorID  int64     `json:"vendorId" db:"vendor_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// DeliveryOption is a per-vendor delivery zone with its fee.
// The fee is shown at checkout but collected out-of-band by the courier.
type DeliveryOption struct {
	ID        int64     `json:"id" db:"id"`
	VendorID  int64     `json:"vendorId" db:"vendor_id"`
	Name      string    `json:"name" db:"name"`
	Fee       float64   `json:"fee" db:"fee"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// --- API Input Structs ---

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
}

type CreateDeliveryInput struct {
	Name string  `json:"name" binding:"required"`
	Fee  float64 `json:"fee" binding:"gte=0"`
}
