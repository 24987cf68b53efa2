package internal

import (
	"sync"

	"github.com/DrGermanius/Storefront/internal/model"
)

// Ledger accumulates revenue recognised from delivered orders.
// It is only mutated through ApplyEffect.
type Ledger struct {
	mu       sync.RWMutex
	total    int64
	byVendor map[int64]int64
	accrued  map[int64]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{
		byVendor: make(map[int64]int64),
		accrued:  make(map[int64]struct{}),
	}
}

// ApplyEffect ignores every kind except AccrueRevenue. An order is counted at most once.
func (l *Ledger) ApplyEffect(e model.Effect) bool {
	if e.Kind != model.EffectAccrueRevenue {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accrued[e.OrderID]; ok {
		return false
	}
	l.accrued[e.OrderID] = struct{}{}
	l.total += e.Amount
	l.byVendor[e.VendorID] += e.Amount
	return true
}

func (l *Ledger) TotalRevenue() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

func (l *Ledger) VendorRevenue(vendorID int64) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.byVendor[vendorID]
}
