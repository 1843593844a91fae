// Package domain defines the core business entities for the Firefly engine.
// These models are independent of the UI layer and represent the canonical
// data structures used throughout the simulation core.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ============================================================
// Risk levels
// ============================================================

// RiskLevel classifies how volatile a stock is expected to be.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ============================================================
// Savings
// ============================================================

// SavingsAccount is an interest-bearing account owned by the player.
// InterestRate is the annual rate as a decimal fraction (0.05 = 5%).
type SavingsAccount struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Balance      decimal.Decimal `json:"balance"`
}

// ============================================================
// Stocks / Investments
// ============================================================

// Stock is a catalog entry whose price drifts during simulation.
// DividendYield is nil for stocks that pay no dividend.
type Stock struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Ticker        string           `json:"ticker"`
	Price         decimal.Decimal  `json:"price"`
	RiskLevel     RiskLevel        `json:"risk_level"`
	DividendYield *decimal.Decimal `json:"dividend_yield,omitempty"`
}

// Investment is one purchase event: a dollar-denominated claim on a stock.
// Amount is the dollar value held, not a share count; shares are derived
// as Amount / Stock.Price at display time.
type Investment struct {
	ID      uuid.UUID       `json:"id"`
	StockID uuid.UUID       `json:"stock_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// ============================================================
// Account
// ============================================================

// Account is the player's full financial state. It is exclusively owned by
// the active session and mutated in place by ledger and engine operations.
type Account struct {
	CashBalance     decimal.Decimal  `json:"cash_balance"`
	SavingsAccounts []SavingsAccount `json:"savings_accounts"`
	Stocks          []Stock          `json:"stocks"`
	Investments     []Investment     `json:"investments"`
	Achievements    []Achievement    `json:"achievements"`
}

// ============================================================
// Earnings time series
// ============================================================

// EarningsSnapshot is one recorded (year, net worth) point. The engine
// appends one per simulated step; order is chronological.
type EarningsSnapshot struct {
	Year     int             `json:"year"`
	NetWorth decimal.Decimal `json:"net_worth"`
}

// ============================================================
// Playthrough (persisted save)
// ============================================================

// Playthrough is a full persisted save: the account, its earnings series and
// enough metadata to list and resume it later.
type Playthrough struct {
	ID               uuid.UUID          `json:"id"`
	Year             int                `json:"year"`
	NetWorth         decimal.Decimal    `json:"net_worth"`
	Date             time.Time          `json:"date"`
	Account          Account            `json:"account"`
	EarningsOverTime []EarningsSnapshot `json:"earnings_over_time"`
}
