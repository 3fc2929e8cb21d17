package handlers

import (
	"database/sql"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sellquiccom/sellquicks-sub000/internal/checkout"
	"github.com/sellquiccom/sellquicks-sub000/internal/events"
	"github.com/sellquiccom/sellquicks-sub000/internal/models"
	"github.com/sellquiccom/sellquicks-sub000/internal/orders"
)

//
// --- Checkout (Public) ---
//

// CheckoutInput is the buyer's full checkout payload: the customer
// snapshot plus the client-local cart. Cart lines are trusted as-is; stock
// is advisory and never validated or decremented here.
type CheckoutInput struct {
	// "dive" makes the validator descend into each line; without it the
	// per-line tags on CartLine never run.
	Customer models.CustomerInfo `json:"customer" binding:"required"`
	Lines    []models.CartLine   `json:"lines" binding:"required,dive"`

	// Shown on the thank-you page; never folded into committed totals.
	DeliveryFee float64 `json:"deliveryFee" binding:"gte=0"`
}

// PlacedOrder is one vendor's order out of a checkout.
type PlacedOrder struct {
	OrderID     int64   `json:"orderId"`
	VendorID    int64   `json:"vendorId"`
	StoreSlug   string  `json:"storeSlug"`
	TotalAmount float64 `json:"totalAmount"`
}

// Checkout is the handler for POST /v1/checkout.
// Cart lines are partitioned by vendor id, and one order per vendor is
// committed in a single transaction: either every sibling order exists
// afterwards or none does. Orders start in awaiting_payment and share one
// payment reference so the buyer pays each vendor against the same code.
func (h *Handlers) Checkout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 1. --- Partition the Cart ---
	groups, err := checkout.PartitionByVendor(input.Lines)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		return
	}

	paymentRef, err := checkout.NewPaymentRef()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate payment reference"})
		return
	}

	// 2. --- Commit All Orders Atomically ---
	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback() // Safety net

	now := time.Now()
	orderQuery := `
		INSERT INTO orders (vendor_id, store_slug, status, total_amount,
			customer_name, customer_email, customer_phone, customer_address,
			payment_ref, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	itemQuery := `
		INSERT INTO order_items (order_id, product_id, name, price, quantity, image)
		VALUES (?, ?, ?, ?, ?, ?)`

	var placed []PlacedOrder
	var created []models.Order
	for _, group := range groups {
		result, err := tx.Exec(orderQuery, group.VendorID, group.StoreSlug, orders.StatusAwaitingPayment,
			group.TotalAmount, input.Customer.Name, input.Customer.Email, input.Customer.Phone,
			input.Customer.Address, paymentRef, now, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		orderID, err := result.LastInsertId()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new order ID"})
			return
		}

		// Snapshot every line into order_items.
		for _, line := range group.Lines {
			image := ""
			if len(line.Images) > 0 {
				image = line.Images[0]
			}
			if _, err := tx.Exec(itemQuery, orderID, line.ProductID, line.Name, line.Price, line.Quantity, image); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order item"})
				return
			}
		}

		placed = append(placed, PlacedOrder{
			OrderID:     orderID,
			VendorID:    group.VendorID,
			StoreSlug:   group.StoreSlug,
			TotalAmount: group.TotalAmount,
		})
		created = append(created, models.Order{
			ID:          orderID,
			VendorID:    group.VendorID,
			StoreSlug:   group.StoreSlug,
			Status:      orders.StatusAwaitingPayment,
			TotalAmount: group.TotalAmount,
			CustomerName: input.Customer.Name,
			CustomerEmail: input.Customer.Email,
			PaymentRef:  paymentRef,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit checkout"})
		return
	}

	// 3. --- Notify Live Dashboards (after commit) ---
	for _, o := range created {
		h.Hub.Publish(events.OrderEvent{Type: "created", Order: o})
	}

	// 4. --- Success: the client clears its cart and redirects ---
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Order placed. Complete payment with the reference below.",
		"paymentRef":  paymentRef,
		"orders":      placed,
		"deliveryFee": input.DeliveryFee, // display only, not part of any total
	})
}

//
// --- Public Tracking & Manual Payment ---
//

// TrackOrder is the handler for GET /v1/orders/track?ref=...&vendor=...
// Lookup requires no authentication: the reference code plus vendor id is
// the buyer's claim ticket.
func (h *Handlers) TrackOrder(c *gin.Context) {
	paymentRef := c.Query("ref")
	vendorID := c.Query("vendor")
	if paymentRef == "" || vendorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ref and vendor are required"})
		return
	}

	o, err := h.fetchOrderByRef(paymentRef, vendorID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	items, err := h.fetchOrderItems(o.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":    o,
		"items":    items,
		"timeline": statusTimeline(o.Status),
	})
}

// ConfirmPaymentInput identifies the orders the buyer paid for.
type ConfirmPaymentInput struct {
	PaymentRef string `json:"paymentRef" binding:"required"`
	VendorID   int64  `json:"vendorId" binding:"required"`
}

// ConfirmPayment is the handler for POST /v1/orders/confirm-payment.
// This is the manual mobile-money flow: the buyer reports having sent the
// money, which is the only path from awaiting_payment to pending.
func (h *Handlers) ConfirmPayment(c *gin.Context) {
	var input ConfirmPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	// Lock the row so a double-submit cannot race the transition.
	var orderID int64
	var status string
	err = tx.QueryRow("SELECT id, status FROM orders WHERE payment_ref = ? AND vendor_id = ? FOR UPDATE",
		input.PaymentRef, input.VendorID).Scan(&orderID, &status)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	if err := orders.CanTransition(orders.ActorBuyer, status, orders.StatusPending); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if _, err := tx.Exec("UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		orders.StatusPending, time.Now(), orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	h.publishStatusChange(orderID)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Payment reported. The vendor will confirm shortly.",
		"newStatus": orders.StatusPending,
	})
}

//
// --- Vendor Order Handlers ---
//

// GetMyOrders is the handler for GET /v1/vendor/orders.
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)

	list, err := h.fetchVendorOrders(vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// GetOrderDetails is the handler for GET /v1/vendor/orders/:id.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)
	orderID := c.Param("id")

	var o models.Order
	query := `
		SELECT id, vendor_id, store_slug, status, total_amount,
		       customer_name, customer_email, customer_phone, customer_address,
		       payment_ref, created_at, updated_at
		FROM orders
		WHERE id = ? AND vendor_id = ?`
	err := h.DB.QueryRow(query, orderID, vendorID).Scan(
		&o.ID, &o.VendorID, &o.StoreSlug, &o.Status, &o.TotalAmount,
		&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress,
		&o.PaymentRef, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	items, err := h.fetchOrderItems(o.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": o, "items": items})
}

// UpdateOrderStatusInput carries the requested next status.
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus is the handler for PATCH /v1/vendor/orders/:id/status.
// The vendor may only advance pending -> confirmed -> fulfilled, one step
// at a time; anything else is rejected with 409.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)
	orderID := c.Param("id")

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.transitionOrder(c, orders.ActorVendor, "id = ? AND vendor_id = ?", []interface{}{orderID, vendorID}, input.Status)
}

// transitionOrder applies one status transition under a row lock, shared
// by the vendor and admin handlers.
func (h *Handlers) transitionOrder(c *gin.Context, actor, where string, whereArgs []interface{}, newStatus string) {
	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	var orderID int64
	var current string
	err = tx.QueryRow("SELECT id, status FROM orders WHERE "+where+" FOR UPDATE", whereArgs...).Scan(&orderID, &current)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	if err := orders.CanTransition(actor, current, newStatus); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if _, err := tx.Exec("UPDATE orders SET status = ?, updated_at = ? WHERE id = ?", newStatus, time.Now(), orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	h.publishStatusChange(orderID)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Order status updated",
		"newStatus": newStatus,
	})
}

//
// --- Live Order Feed (SSE) ---
//

// StreamOrders is the handler for GET /v1/vendor/orders/stream.
// Each connection holds one hub subscription, released when the client
// disconnects so listeners never leak.
func (h *Handlers) StreamOrders(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)

	feed, cancel := h.Hub.Subscribe(vendorID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-feed:
			if !ok {
				return false
			}
			c.SSEvent("order", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// StreamAllOrders is the handler for GET /v1/admin/orders/stream.
func (h *Handlers) StreamAllOrders(c *gin.Context) {
	feed, cancel := h.Hub.Subscribe(events.PlatformWide)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-feed:
			if !ok {
				return false
			}
			c.SSEvent("order", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

//
// --- Helpers ---
//

// statusTimeline maps a status onto the fixed four-step progression for
// the tracking view.
func statusTimeline(current string) []gin.H {
	steps := []string{orders.StatusAwaitingPayment, orders.StatusPending, orders.StatusConfirmed, orders.StatusFulfilled}

	// An unrecognized status marks no step done rather than defaulting
	// to the first one.
	reached := -1
	if orders.IsValidStatus(current) {
		for i, s := range steps {
			if s == current {
				reached = i
				break
			}
		}
	}

	timeline := make([]gin.H, 0, len(steps))
	for i, s := range steps {
		timeline = append(timeline, gin.H{
			"status": s,
			"done":   i <= reached,
		})
	}
	return timeline
}

func (h *Handlers) fetchOrderByRef(paymentRef, vendorID string) (*models.Order, error) {
	var o models.Order
	query := `
		SELECT id, vendor_id, store_slug, status, total_amount,
		       customer_name, customer_email, customer_phone, customer_address,
		       payment_ref, created_at, updated_at
		FROM orders
		WHERE payment_ref = ? AND vendor_id = ?`
	err := h.DB.QueryRow(query, paymentRef, vendorID).Scan(
		&o.ID, &o.VendorID, &o.StoreSlug, &o.Status, &o.TotalAmount,
		&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress,
		&o.PaymentRef, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (h *Handlers) fetchOrderItems(orderID int64) ([]models.OrderItem, error) {
	rows, err := h.DB.Query(
		"SELECT id, order_id, product_id, name, price, quantity, image FROM order_items WHERE order_id = ?", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity, &item.Image); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h *Handlers) fetchVendorOrders(vendorID int64) ([]models.Order, error) {
	query := `
		SELECT id, vendor_id, store_slug, status, total_amount,
		       customer_name, customer_email, customer_phone, customer_address,
		       payment_ref, created_at, updated_at
		FROM orders
		WHERE vendor_id = ?
		ORDER BY created_at DESC`
	rows, err := h.DB.Query(query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	list := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.VendorID, &o.StoreSlug, &o.Status, &o.TotalAmount,
			&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress,
			&o.PaymentRef, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// publishStatusChange reloads an order and pushes it onto the live feed.
// Feed delivery failing must never fail the request, so errors just log.
func (h *Handlers) publishStatusChange(orderID int64) {
	var o models.Order
	query := `
		SELECT id, vendor_id, store_slug, status, total_amount,
		       customer_name, customer_email, customer_phone, customer_address,
		       payment_ref, created_at, updated_at
		FROM orders WHERE id = ?`
	err := h.DB.QueryRow(query, orderID).Scan(
		&o.ID, &o.VendorID, &o.StoreSlug, &o.Status, &o.TotalAmount,
		&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress,
		&o.PaymentRef, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		log.Printf("Warning: failed to reload order %d for the live feed: %v", orderID, err)
		return
	}
	h.Hub.Publish(events.OrderEvent{Type: "status_changed", Order: o})
}
