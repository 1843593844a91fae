package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seed catalog for a fresh session. Starting prices are drawn once per
// session from a per-stock range so no two playthroughs open identically.

// Ticker constants for the seed catalog. The engine's return-rate table is
// keyed by stock id at runtime; tickers are only used to build it.
const (
	TickerCyberMosaic = "CMSY"
	TickerPrickler    = "PHGS"
	TickerPinemoore   = "PIMF"
)

// DefaultSavingsName is the savings product every fresh account starts with.
const DefaultSavingsName = "High Yield Savings"

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// startingPrice draws a price uniformly from [min, max] using randFloat,
// rounded to cents.
func startingPrice(randFloat func() float64, min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(min + randFloat()*(max-min)).Round(2)
}

// NewStartingAccount builds the fixed starting state: startingCash in cash,
// one empty savings account at savingsRate, the three-stock seed catalog
// and no investments. randFloat supplies the price draws.
func NewStartingAccount(startingCash, savingsRate decimal.Decimal, randFloat func() float64) *Account {
	return &Account{
		CashBalance: startingCash,
		SavingsAccounts: []SavingsAccount{
			{
				ID:           uuid.New(),
				Name:         DefaultSavingsName,
				InterestRate: savingsRate,
				Balance:      decimal.Zero,
			},
		},
		Stocks: []Stock{
			{
				ID:        uuid.New(),
				Name:      "CyberMosaic Systems",
				Ticker:    TickerCyberMosaic,
				Price:     startingPrice(randFloat, 100, 150),
				RiskLevel: RiskHigh,
			},
			{
				ID:            uuid.New(),
				Name:          "Prickler Holdings",
				Ticker:        TickerPrickler,
				Price:         startingPrice(randFloat, 210, 265),
				RiskLevel:     RiskMedium,
				DividendYield: decPtr(0.03),
			},
			{
				ID:            uuid.New(),
				Name:          "Pinemoore Finance",
				Ticker:        TickerPinemoore,
				Price:         startingPrice(randFloat, 50, 100),
				RiskLevel:     RiskMedium,
				DividendYield: decPtr(0.01),
			},
		},
		Investments:  nil,
		Achievements: StartingAchievements(),
	}
}
