// Package engine implements the growth-projection engine: a year-by-year
// randomized advance of savings interest, stock prices, dividends and
// investment compounding, recording a net-worth time series along the way.
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/boddenberg/firefly-engine-go/internal/domain"
)

// DefaultYearLimit is the hard ceiling on total simulated years.
const DefaultYearLimit = 100

// Result summarizes one completed Advance call.
type Result struct {
	// YearsSimulated echoes the requested duration.
	YearsSimulated float64
	// NetWorth is the account's net worth after the advance.
	NetWorth decimal.Decimal
	// Complete is true once the year ceiling has been reached exactly.
	// It is a milestone, not an error: the caller can offer to persist
	// a playthrough.
	Complete bool
}

// Simulator owns a session's simulation state: the account, the running
// year counter and the earnings time series. It is not safe for concurrent
// use; one logical actor drives it.
type Simulator struct {
	account     *domain.Account
	table       *ReturnTable
	rnd         Rand
	logger      *zap.Logger
	yearLimit   float64
	currentYear float64
	earnings    []domain.EarningsSnapshot
}

// NewSimulator wires a simulator around an account. The table decides each
// stock's return-rate range; rnd supplies the draws.
func NewSimulator(account *domain.Account, table *ReturnTable, rnd Rand, logger *zap.Logger) *Simulator {
	return &Simulator{
		account:   account,
		table:     table,
		rnd:       rnd,
		logger:    logger,
		yearLimit: DefaultYearLimit,
	}
}

// SetYearLimit overrides the simulation ceiling. Non-positive values are
// ignored.
func (s *Simulator) SetYearLimit(limit float64) {
	if limit > 0 {
		s.yearLimit = limit
	}
}

// Account exposes the live account for ledger operations and rendering.
func (s *Simulator) Account() *domain.Account { return s.account }

// CurrentYear returns the running year counter.
func (s *Simulator) CurrentYear() float64 { return s.currentYear }

// Earnings returns a copy of the recorded (year, net worth) series.
func (s *Simulator) Earnings() []domain.EarningsSnapshot {
	out := make([]domain.EarningsSnapshot, len(s.earnings))
	copy(out, s.earnings)
	return out
}

// Advance simulates years of growth. Whole years run as full steps; any
// fractional remainder runs once more with effects scaled linearly by the
// fraction. All validation happens before any mutation: on error the
// account and series are untouched.
func (s *Simulator) Advance(years float64) (*Result, error) {
	if years <= 0 {
		return nil, &domain.ErrValidation{Field: "years", Message: "must be positive"}
	}
	if s.currentYear+years > s.yearLimit {
		return nil, &domain.ErrSimulationLimit{
			CurrentYear: s.currentYear,
			Requested:   years,
			Limit:       s.yearLimit,
		}
	}

	whole := int(years)
	for i := 0; i < whole; i++ {
		s.step(decimal.NewFromInt(1))
		s.currentYear++
		s.record()
	}
	if frac := years - float64(whole); frac > 0 {
		s.step(decimal.NewFromFloat(frac))
		s.currentYear += frac
		s.record()
	}

	result := &Result{
		YearsSimulated: years,
		NetWorth:       s.account.NetWorth(),
		Complete:       s.currentYear >= s.yearLimit,
	}

	s.logger.Info("simulation advanced",
		zap.Float64("years", years),
		zap.Float64("current_year", s.currentYear),
		zap.String("net_worth", result.NetWorth.StringFixed(2)),
		zap.Bool("complete", result.Complete),
	)
	return result, nil
}

// step applies one simulation step scaled by factor (1 for a whole year,
// the fractional remainder otherwise).
func (s *Simulator) step(factor decimal.Decimal) {
	// Savings interest.
	for i := range s.account.SavingsAccounts {
		sa := &s.account.SavingsAccounts[i]
		interest := sa.Balance.Mul(sa.InterestRate).Mul(factor)
		sa.Balance = sa.Balance.Add(interest)
	}

	// Stocks: fresh independent draw per stock per step.
	for i := range s.account.Stocks {
		stock := &s.account.Stocks[i]
		r := s.table.RangeFor(stock.ID)
		rate := decimal.NewFromFloat(r.Min + s.rnd.Float64()*(r.Max-r.Min))

		// Dividend is proportional to the dollar value held, independent
		// of price, and is computed before this step's compounding.
		if stock.DividendYield != nil {
			dividend := stock.DividendYield.Mul(s.account.InvestedIn(stock.ID)).Mul(factor)
			s.account.CashBalance = s.account.CashBalance.Add(dividend)
		}

		stock.Price = stock.Price.Add(stock.Price.Mul(rate).Mul(factor))

		// Every purchase event in this stock compounds at the same rate
		// as the price draw for this step.
		for j := range s.account.Investments {
			inv := &s.account.Investments[j]
			if inv.StockID == stock.ID {
				inv.Amount = inv.Amount.Add(inv.Amount.Mul(rate).Mul(factor))
			}
		}
	}
}

// record appends one snapshot for the step just taken. The year label is
// the truncated running counter, matching how years are displayed.
func (s *Simulator) record() {
	s.earnings = append(s.earnings, domain.EarningsSnapshot{
		Year:     int(s.currentYear),
		NetWorth: s.account.NetWorth(),
	})
}

// Reset replaces the session wholesale with a fresh starting account and
// clears the year counter and earnings series.
func (s *Simulator) Reset(account *domain.Account, table *ReturnTable) {
	s.account = account
	s.table = table
	s.currentYear = 0
	s.earnings = nil
	s.logger.Info("session reset")
}

// Snapshot captures the session as a playthrough ready for persistence.
// Each call mints a new id, so saving twice records two playthroughs.
// The account is deep-copied: later simulation never rewrites a taken
// snapshot.
func (s *Simulator) Snapshot(now time.Time) *domain.Playthrough {
	return &domain.Playthrough{
		ID:               uuid.New(),
		Year:             int(s.currentYear),
		NetWorth:         s.account.NetWorth(),
		Date:             now,
		Account:          *s.account.Clone(),
		EarningsOverTime: s.Earnings(),
	}
}

// Restore replaces the live session with a persisted playthrough. The
// playthrough's account is deep-copied so the session never writes back
// into it (it may sit in a cached saves list).
func (s *Simulator) Restore(p *domain.Playthrough) {
	s.account = p.Account.Clone()
	s.currentYear = float64(p.Year)
	s.earnings = make([]domain.EarningsSnapshot, len(p.EarningsOverTime))
	copy(s.earnings, p.EarningsOverTime)
	s.logger.Info("playthrough restored",
		zap.String("playthrough_id", p.ID.String()),
		zap.Int("year", p.Year),
	)
}
