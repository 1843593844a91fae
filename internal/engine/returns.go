package engine

import (
	"github.com/google/uuid"

	"github.com/boddenberg/firefly-engine-go/internal/domain"
)

// Per-stock return-rate configuration. The table is keyed by the stock's
// stable id so arbitrary catalogs work; display names never decide rates.

// ReturnRange bounds the uniform annual return draw for one stock.
type ReturnRange struct {
	Min float64
	Max float64
}

// ReturnTable maps stock ids to their configured draw range, with a
// default range for stocks that have no bespoke entry.
type ReturnTable struct {
	def    ReturnRange
	ranges map[uuid.UUID]ReturnRange
}

// NewReturnTable creates a table where every stock draws from def unless
// overridden with Set.
func NewReturnTable(def ReturnRange) *ReturnTable {
	return &ReturnTable{
		def:    def,
		ranges: make(map[uuid.UUID]ReturnRange),
	}
}

// Set overrides the draw range for one stock.
func (t *ReturnTable) Set(id uuid.UUID, r ReturnRange) {
	t.ranges[id] = r
}

// RangeFor returns the configured range for a stock, falling back to the
// table default.
func (t *ReturnTable) RangeFor(id uuid.UUID) ReturnRange {
	if r, ok := t.ranges[id]; ok {
		return r
	}
	return t.def
}

// DefaultReturnTable builds the seed-catalog table for an account:
// the stable dividend stock draws from a narrow non-negative range, the
// volatile growth stock from a wide range that can go negative, and
// everything else from the moderate default def.
func DefaultReturnTable(account *domain.Account, def ReturnRange) *ReturnTable {
	table := NewReturnTable(def)
	for _, s := range account.Stocks {
		switch s.Ticker {
		case domain.TickerPrickler:
			table.Set(s.ID, ReturnRange{Min: 0.00, Max: 0.08})
		case domain.TickerPinemoore:
			table.Set(s.ID, ReturnRange{Min: -0.05, Max: 0.15})
		}
	}
	return table
}
