package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellquiccom/sellquicks-sub000/internal/models"
)

func TestPartitionByVendorTwoVendors(t *testing.T) {
	// cart = [{vendorA, X, 100 x2}, {vendorB, Y, 50 x1}]
	lines := []models.CartLine{
		{ProductID: 1, VendorID: 7, StoreSlug: "ama-wigs", Name: "Product X", Price: 100, Quantity: 2},
		{ProductID: 2, VendorID: 3, StoreSlug: "kofi-shoes", Name: "Product Y", Price: 50, Quantity: 1},
	}

	groups, err := PartitionByVendor(lines)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Ordered by vendor id.
	assert.Equal(t, int64(3), groups[0].VendorID)
	assert.Equal(t, "kofi-shoes", groups[0].StoreSlug)
	assert.Equal(t, 50.0, groups[0].TotalAmount)
	require.Len(t, groups[0].Lines, 1)

	assert.Equal(t, int64(7), groups[1].VendorID)
	assert.Equal(t, "ama-wigs", groups[1].StoreSlug)
	assert.Equal(t, 200.0, groups[1].TotalAmount)
	require.Len(t, groups[1].Lines, 1)
}

func TestPartitionByVendorMergesSameVendor(t *testing.T) {
	lines := []models.CartLine{
		{ProductID: 1, VendorID: 5, Price: 20, Quantity: 3},
		{ProductID: 2, VendorID: 5, Price: 10.50, Quantity: 2},
	}

	groups, err := PartitionByVendor(lines)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(5), groups[0].VendorID)
	assert.Len(t, groups[0].Lines, 2)
	assert.InDelta(t, 81.0, groups[0].TotalAmount, 0.001)
}

func TestPartitionByVendorGroupsByIDNotSlug(t *testing.T) {
	// Same slug on both lines but different vendor ids: the id wins.
	lines := []models.CartLine{
		{ProductID: 1, VendorID: 1, StoreSlug: "shared", Price: 10, Quantity: 1},
		{ProductID: 2, VendorID: 2, StoreSlug: "shared", Price: 10, Quantity: 1},
	}

	groups, err := PartitionByVendor(lines)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestPartitionByVendorEmptyCart(t *testing.T) {
	_, err := PartitionByVendor(nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = PartitionByVendor([]models.CartLine{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestNewPaymentRefFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		ref, err := NewPaymentRef()
		require.NoError(t, err)
		require.Len(t, ref, refBlockSize*2+1)

		parts := strings.Split(ref, "-")
		require.Len(t, parts, 2, ref)
		for _, part := range parts {
			require.Len(t, part, refBlockSize)
			for _, ch := range part {
				assert.Contains(t, refAlphabet, string(ch))
			}
		}
		seen[ref] = true
	}
	// Not a strict guarantee, but 200 draws from 24^6 should not all collide.
	assert.Greater(t, len(seen), 190)
}
