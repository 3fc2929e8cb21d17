package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	assert.Equal(t, StatusPending, NextStatus(StatusAwaitingPayment))
	assert.Equal(t, StatusConfirmed, NextStatus(StatusPending))
	assert.Equal(t, StatusFulfilled, NextStatus(StatusConfirmed))
	assert.Equal(t, "", NextStatus(StatusFulfilled))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		actor string
		from  string
		to    string
		ok    bool
	}{
		{"buyer confirms payment", ActorBuyer, StatusAwaitingPayment, StatusPending, true},
		{"buyer cannot confirm order", ActorBuyer, StatusPending, StatusConfirmed, false},
		{"buyer cannot fulfil", ActorBuyer, StatusConfirmed, StatusFulfilled, false},
		{"vendor confirms order", ActorVendor, StatusPending, StatusConfirmed, true},
		{"vendor fulfils order", ActorVendor, StatusConfirmed, StatusFulfilled, true},
		{"vendor cannot confirm payment", ActorVendor, StatusAwaitingPayment, StatusPending, false},
		{"admin confirms order", ActorAdmin, StatusPending, StatusConfirmed, true},
		{"admin cannot confirm payment", ActorAdmin, StatusAwaitingPayment, StatusPending, false},
		{"no skipping states", ActorVendor, StatusPending, StatusFulfilled, false},
		{"no moving backwards", ActorVendor, StatusConfirmed, StatusPending, false},
		{"no leaving fulfilled", ActorAdmin, StatusFulfilled, StatusPending, false},
		{"unknown from status", ActorVendor, "shipped", StatusConfirmed, false},
		{"unknown to status", ActorVendor, StatusPending, "shipped", false},
		{"unknown actor", "courier", StatusPending, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.actor, tt.from, tt.to)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusAwaitingPayment, StatusPending, StatusConfirmed, StatusFulfilled} {
		require.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("on-hold"))
	assert.False(t, IsValidStatus(""))
}
