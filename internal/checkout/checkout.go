// Package checkout holds the pure half of order placement: partitioning a
// client-local cart into per-vendor groups and generating payment reference
// codes. The database half (the transactional commit) lives in the handlers.
package checkout

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sort"

	"github.com/sellquiccom/sellquicks-sub000/internal/models"
)

// ErrEmptyCart is returned when a checkout is attempted with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// VendorGroup is one vendor's slice of a checkout: the lines belonging to
// that vendor and their committed total. A multi-vendor cart yields one
// group (and later one order) per vendor.
type VendorGroup struct {
	VendorID    int64
	StoreSlug   string
	Lines       []models.CartLine
	TotalAmount float64
}

// PartitionByVendor groups cart lines by the vendor id carried on each line
// (not by store slug) and computes each group's total as the sum of
// price*quantity. Delivery fees are never part of the total; they are
// collected out-of-band. Groups come back ordered by vendor id so a given
// cart always partitions the same way.
func PartitionByVendor(lines []models.CartLine) ([]VendorGroup, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	byVendor := make(map[int64]*VendorGroup)
	for _, line := range lines {
		g, ok := byVendor[line.VendorID]
		if !ok {
			g = &VendorGroup{VendorID: line.VendorID, StoreSlug: line.StoreSlug}
			byVendor[line.VendorID] = g
		}
		g.Lines = append(g.Lines, line)
		g.TotalAmount += line.Price * float64(line.Quantity)
	}

	groups := make([]VendorGroup, 0, len(byVendor))
	for _, g := range byVendor {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].VendorID < groups[j].VendorID })
	return groups, nil
}

// Payment reference format: two blocks of three letters from a fixed
// alphabet joined by a single dash, e.g. "KXT-MQB". The alphabet drops
// easily-confused letters since buyers retype the code into momo prompts.
const (
	refAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	refBlockSize = 3
)

// NewPaymentRef generates a human-readable payment reference code.
func NewPaymentRef() (string, error) {
	buf := make([]byte, refBlockSize*2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate payment reference: %w", err)
	}
	for i := range buf {
		buf[i] = refAlphabet[int(buf[i])%len(refAlphabet)]
	}
	return string(buf[:refBlockSize]) + "-" + string(buf[refBlockSize:]), nil
}
