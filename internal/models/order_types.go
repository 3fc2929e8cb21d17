package models

import "time"

// Order is the model for the 'orders' table.
// A multi-vendor checkout produces one Order per vendor; the sibling
// orders share a payment reference but no parent record.
type Order struct {
	ID          int64   `json:"id" db:"id"`
	VendorID    int64   `json:"vendorId" db:"vendor_id"`
	StoreSlug   string  `json:"storeSlug" db:"store_slug"`
	Status      string  `json:"status" db:"status"`
	TotalAmount float64 `json:"totalAmount" db:"total_amount"` // sum of price*quantity, delivery fee excluded

	// Customer snapshot taken at checkout.
	CustomerName    string `json:"customerName" db:"customer_name"`
	CustomerEmail   string `json:"customerEmail" db:"customer_email"`
	CustomerPhone   string `json:"customerPhone" db:"customer_phone"`
	CustomerAddress string `json:"customerAddress" db:"customer_address"`

	PaymentRef string    `json:"paymentRef" db:"payment_ref"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderItem is the model for the 'order_items' table.
// Fields are a denormalized snapshot of the product at order time;
// there is no live reference back to the products table.
type OrderItem struct {
	ID        int64   `json:"id" db:"id"`
	OrderID   int64   `json:"orderId" db:"order_id"`
	ProductID int64   `json:"productId" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"` // price at the time of purchase
	Quantity  int     `json:"quantity" db:"quantity"`
	Image     string  `json:"image" db:"image"`
}
