package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellquiccom/sellquicks-sub000/internal/orders"
)

// postCheckout runs the Checkout handler against a JSON body. Binding
// failures reject the request before any dependency is touched, so an
// empty Handlers struct is enough here.
func postCheckout(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &Handlers{}
	router := gin.New()
	router.POST("/v1/checkout", h.Checkout)

	req := httptest.NewRequest(http.MethodPost, "/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutRejectsMalformedLines(t *testing.T) {
	customer := `"customer":{"name":"Ama","email":"ama@x.com","phone":"0241234567","address":"Accra"}`

	tests := []struct {
		name string
		line string
	}{
		{"negative price and quantity", `{"productId":1,"vendorId":2,"name":"Wig","price":-100,"quantity":-2}`},
		{"zero quantity", `{"productId":1,"vendorId":2,"name":"Wig","price":50,"quantity":0}`},
		{"missing product id", `{"vendorId":2,"name":"Wig","price":50,"quantity":1}`},
		{"missing vendor id", `{"productId":1,"name":"Wig","price":50,"quantity":1}`},
		{"empty name", `{"productId":1,"vendorId":2,"name":"","price":50,"quantity":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postCheckout(t, `{`+customer+`,"lines":[`+tt.line+`]}`)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestCheckoutRejectsMissingCustomer(t *testing.T) {
	w := postCheckout(t, `{"lines":[{"productId":1,"vendorId":2,"name":"Wig","price":50,"quantity":1}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestStatusTimeline(t *testing.T) {
	timeline := statusTimeline(orders.StatusConfirmed)
	require.Len(t, timeline, 4)

	assert.Equal(t, orders.StatusAwaitingPayment, timeline[0]["status"])
	assert.Equal(t, orders.StatusFulfilled, timeline[3]["status"])

	assert.True(t, timeline[0]["done"].(bool))
	assert.True(t, timeline[1]["done"].(bool))
	assert.True(t, timeline[2]["done"].(bool))
	assert.False(t, timeline[3]["done"].(bool))
}

func TestStatusTimelineFreshOrder(t *testing.T) {
	timeline := statusTimeline(orders.StatusAwaitingPayment)
	require.Len(t, timeline, 4)

	assert.True(t, timeline[0]["done"].(bool))
	for _, step := range timeline[1:] {
		assert.False(t, step["done"].(bool))
	}
}

func TestStatusTimelineUnknownStatus(t *testing.T) {
	timeline := statusTimeline("shipped")
	require.Len(t, timeline, 4)

	for _, step := range timeline {
		assert.False(t, step["done"].(bool))
	}
}
