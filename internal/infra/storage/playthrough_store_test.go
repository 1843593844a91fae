package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/boddenberg/firefly-engine-go/internal/domain"
	"github.com/boddenberg/firefly-engine-go/internal/infra/observability"
	"github.com/boddenberg/firefly-engine-go/internal/infra/storage"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedRand() float64 { return 0.5 }

func newStore(t *testing.T) *storage.PlaythroughStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "firefly.db")
	store, err := storage.NewPlaythroughStore(dbPath, time.Minute, observability.NewMetrics(), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return store
}

func newPlaythrough(year int, date time.Time) *domain.Playthrough {
	account := domain.NewStartingAccount(dec("10000"), dec("0.05"), fixedRand)
	series := make([]domain.EarningsSnapshot, 0, year)
	for y := 1; y <= year; y++ {
		series = append(series, domain.EarningsSnapshot{
			Year:     y,
			NetWorth: dec("10000").Add(decimal.NewFromInt(int64(y * 100))),
		})
	}
	return &domain.Playthrough{
		ID:               uuid.New(),
		Year:             year,
		NetWorth:         account.NetWorth(),
		Date:             date,
		Account:          *account,
		EarningsOverTime: series,
	}
}

func TestStore_SaveAndList(t *testing.T) {
	store := newStore(t)
	p := newPlaythrough(5, time.Now().UTC())

	if err := store.Save(p); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 playthrough, got %d", len(got))
	}
	if got[0].ID != p.ID {
		t.Errorf("expected id %s, got %s", p.ID, got[0].ID)
	}
}

func TestStore_RoundTripFidelity(t *testing.T) {
	store := newStore(t)
	p := newPlaythrough(3, time.Now().UTC())

	if err := store.Save(p); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	loaded := got[0]

	if loaded.Year != p.Year {
		t.Errorf("year: expected %d, got %d", p.Year, loaded.Year)
	}
	if !loaded.NetWorth.Equal(p.NetWorth) {
		t.Errorf("net worth: expected %s, got %s", p.NetWorth, loaded.NetWorth)
	}
	if !loaded.Date.Equal(p.Date) {
		t.Errorf("date: expected %v, got %v", p.Date, loaded.Date)
	}
	if !loaded.Account.CashBalance.Equal(p.Account.CashBalance) {
		t.Errorf("cash: expected %s, got %s", p.Account.CashBalance, loaded.Account.CashBalance)
	}
	if len(loaded.Account.Stocks) != len(p.Account.Stocks) {
		t.Fatalf("stocks: expected %d, got %d", len(p.Account.Stocks), len(loaded.Account.Stocks))
	}
	for i := range p.Account.Stocks {
		want, got := p.Account.Stocks[i], loaded.Account.Stocks[i]
		if got.ID != want.ID || !got.Price.Equal(want.Price) {
			t.Errorf("stock %s did not round-trip: %+v vs %+v", want.Ticker, want, got)
		}
		if (want.DividendYield == nil) != (got.DividendYield == nil) {
			t.Errorf("stock %s dividend yield presence changed", want.Ticker)
		}
	}
	if len(loaded.EarningsOverTime) != len(p.EarningsOverTime) {
		t.Fatalf("series: expected %d points, got %d", len(p.EarningsOverTime), len(loaded.EarningsOverTime))
	}
	for i := range p.EarningsOverTime {
		if loaded.EarningsOverTime[i].Year != p.EarningsOverTime[i].Year ||
			!loaded.EarningsOverTime[i].NetWorth.Equal(p.EarningsOverTime[i].NetWorth) {
			t.Errorf("series point %d did not round-trip", i)
		}
	}
}

func TestStore_ReplaceByID(t *testing.T) {
	store := newStore(t)
	p := newPlaythrough(5, time.Now().UTC())

	if err := store.Save(p); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	p.Year = 7
	p.NetWorth = dec("12345.67")
	if err := store.Save(p); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected replace, not duplicate: got %d entries", len(got))
	}
	if got[0].Year != 7 {
		t.Errorf("expected updated year 7, got %d", got[0].Year)
	}
}

func TestStore_RetentionEvictsOldest(t *testing.T) {
	store := newStore(t)
	base := time.Now().UTC().Add(-24 * time.Hour)

	ids := make([]uuid.UUID, 0, storage.MaxPlaythroughs+2)
	for i := 0; i < storage.MaxPlaythroughs+2; i++ {
		p := newPlaythrough(i+1, base.Add(time.Duration(i)*time.Minute))
		ids = append(ids, p.ID)
		if err := store.Save(p); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	got, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != storage.MaxPlaythroughs {
		t.Fatalf("expected %d retained, got %d", storage.MaxPlaythroughs, len(got))
	}
	// The two oldest saves are gone; the rest remain in order.
	retained := make(map[uuid.UUID]bool, len(got))
	for _, p := range got {
		retained[p.ID] = true
	}
	if retained[ids[0]] || retained[ids[1]] {
		t.Error("expected the oldest playthroughs to be evicted")
	}
	if !retained[ids[2]] || !retained[ids[len(ids)-1]] {
		t.Error("expected newer playthroughs to be retained")
	}
}

func TestStore_Delete(t *testing.T) {
	store := newStore(t)
	p := newPlaythrough(5, time.Now().UTC())

	if err := store.Save(p); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Delete(p.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(got))
	}

	// Deleting an unknown id is a no-op.
	if err := store.Delete(uuid.New()); err != nil {
		t.Errorf("deleting unknown id returned error: %v", err)
	}
}

func TestStore_ListIsChronological(t *testing.T) {
	store := newStore(t)
	base := time.Now().UTC()

	// Save out of order; List returns oldest first.
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		if err := store.Save(newPlaythrough(1, base.Add(offset))); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	got, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.Before(got[i-1].Date) {
			t.Fatal("expected chronological order")
		}
	}
}
