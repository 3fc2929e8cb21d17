package models

// CartLine is a product snapshot held in the shopper's client-local cart.
// It arrives as-is in the checkout request and is never re-validated
// against live stock or price.
type CartLine struct {
	ProductID int64    `json:"productId" binding:"required"`
	VendorID  int64    `json:"vendorId" binding:"required"`
	StoreSlug string   `json:"storeSlug"`
	Name      string   `json:"name" binding:"required"`
	Price     float64  `json:"price" binding:"gte=0"`
	Images    []string `json:"images"`
	Quantity  int      `json:"quantity" binding:"required,gt=0"`
}

// CustomerInfo is the buyer detail snapshot captured at checkout.
type CustomerInfo struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}
