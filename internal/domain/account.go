package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ============================================================
// Derived values
// ============================================================

// NetWorth is cash plus all savings balances plus all investment amounts.
// Always recomputed, never stored.
func (a *Account) NetWorth() decimal.Decimal {
	total := a.CashBalance
	for _, sa := range a.SavingsAccounts {
		total = total.Add(sa.Balance)
	}
	for _, inv := range a.Investments {
		total = total.Add(inv.Amount)
	}
	return total
}

// InvestedIn returns the total dollar amount currently invested in the
// given stock across all purchase events.
func (a *Account) InvestedIn(stockID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range a.Investments {
		if inv.StockID == stockID {
			total = total.Add(inv.Amount)
		}
	}
	return total
}

// Clone returns a copy of the account with its own slice backing, so
// mutations on either side never leak into the other. The decimal fields
// are value types; the dividend and unlock-date pointers are shared but
// only ever replaced, never written through.
func (a *Account) Clone() *Account {
	out := *a
	out.SavingsAccounts = append([]SavingsAccount(nil), a.SavingsAccounts...)
	out.Stocks = append([]Stock(nil), a.Stocks...)
	out.Investments = append([]Investment(nil), a.Investments...)
	out.Achievements = append([]Achievement(nil), a.Achievements...)
	return &out
}

// StockByID looks up a catalog stock by its stable id.
func (a *Account) StockByID(id uuid.UUID) (*Stock, bool) {
	for i := range a.Stocks {
		if a.Stocks[i].ID == id {
			return &a.Stocks[i], true
		}
	}
	return nil, false
}

// StockByName finds the first stock whose name contains the query,
// case-insensitive. Used by the chat layer for "buy 500 of prickler".
func (a *Account) StockByName(query string) (*Stock, bool) {
	q := strings.ToLower(query)
	for i := range a.Stocks {
		if strings.Contains(strings.ToLower(a.Stocks[i].Name), q) {
			return &a.Stocks[i], true
		}
	}
	return nil, false
}

func (a *Account) savingsByName(name string) (*SavingsAccount, bool) {
	for i := range a.SavingsAccounts {
		if strings.EqualFold(a.SavingsAccounts[i].Name, name) {
			return &a.SavingsAccounts[i], true
		}
	}
	return nil, false
}

// ============================================================
// Ledger operations
// ============================================================
// Every operation validates fully before mutating, so a returned error
// guarantees the account is unchanged.

// Deposit moves amount from cash into the named savings account.
func (a *Account) Deposit(amount decimal.Decimal, accountName string) error {
	if amount.Sign() <= 0 {
		return &ErrValidation{Field: "amount", Message: "must be positive"}
	}
	sa, ok := a.savingsByName(accountName)
	if !ok {
		return &ErrAccountNotFound{Name: accountName}
	}
	if a.CashBalance.Cmp(amount) < 0 {
		return &ErrInsufficientFunds{Available: a.CashBalance, Required: amount}
	}
	a.CashBalance = a.CashBalance.Sub(amount)
	sa.Balance = sa.Balance.Add(amount)
	return nil
}

// Withdraw moves amount from the named savings account back into cash.
func (a *Account) Withdraw(amount decimal.Decimal, accountName string) error {
	if amount.Sign() <= 0 {
		return &ErrValidation{Field: "amount", Message: "must be positive"}
	}
	sa, ok := a.savingsByName(accountName)
	if !ok {
		return &ErrAccountNotFound{Name: accountName}
	}
	if sa.Balance.Cmp(amount) < 0 {
		return &ErrInsufficientFunds{Available: sa.Balance, Required: amount}
	}
	sa.Balance = sa.Balance.Sub(amount)
	a.CashBalance = a.CashBalance.Add(amount)
	return nil
}

// PurchaseStock spends amount of cash on the given stock, recording one
// new Investment purchase event.
func (a *Account) PurchaseStock(stockID uuid.UUID, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return &ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if _, ok := a.StockByID(stockID); !ok {
		return &ErrStockNotFound{Query: stockID.String()}
	}
	if a.CashBalance.Cmp(amount) < 0 {
		return &ErrInsufficientFunds{Available: a.CashBalance, Required: amount}
	}
	a.CashBalance = a.CashBalance.Sub(amount)
	a.Investments = append(a.Investments, Investment{
		ID:      uuid.New(),
		StockID: stockID,
		Amount:  amount,
	})
	return nil
}

// SellStock liquidates amount of the holdings in the given stock back to
// cash. The amount is deducted from purchase events in insertion order;
// events drained to zero are removed.
func (a *Account) SellStock(stockID uuid.UUID, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return &ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if _, ok := a.StockByID(stockID); !ok {
		return &ErrStockNotFound{Query: stockID.String()}
	}
	held := a.InvestedIn(stockID)
	if held.Cmp(amount) < 0 {
		return &ErrInsufficientFunds{Available: held, Required: amount}
	}
	remaining := amount
	kept := a.Investments[:0]
	for _, inv := range a.Investments {
		if inv.StockID == stockID && remaining.Sign() > 0 {
			take := decimal.Min(inv.Amount, remaining)
			inv.Amount = inv.Amount.Sub(take)
			remaining = remaining.Sub(take)
		}
		if inv.Amount.Sign() > 0 {
			kept = append(kept, inv)
		}
	}
	a.Investments = kept
	a.CashBalance = a.CashBalance.Add(amount)
	return nil
}
