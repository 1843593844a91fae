package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/boddenberg/firefly-engine-go/internal/domain"
)

// textChart renders the earnings series as a terminal bar chart. It stands
// in for the app's image-rendering chart collaborator.
type textChart struct {
	width int
}

func newTextChart() *textChart { return &textChart{width: 40} }

// Render draws one bar per snapshot, scaled to the series maximum.
func (c *textChart) Render(series []domain.EarningsSnapshot, account *domain.Account) (string, error) {
	if len(series) == 0 {
		return "No earnings recorded yet. Try 'simulate 5' first.", nil
	}

	max := decimal.Zero
	for _, p := range series {
		if p.NetWorth.Cmp(max) > 0 {
			max = p.NetWorth
		}
	}

	var b strings.Builder
	b.WriteString("Net worth over time\n")
	for _, p := range series {
		bar := 0
		if max.Sign() > 0 {
			ratio, _ := p.NetWorth.Div(max).Float64()
			bar = int(ratio * float64(c.width))
		}
		b.WriteString(fmt.Sprintf("year %3d | %-*s $%s\n",
			p.Year, c.width, strings.Repeat("#", bar), p.NetWorth.StringFixed(2)))
	}
	b.WriteString(fmt.Sprintf("current net worth: $%s\n", account.NetWorth().StringFixed(2)))
	return b.String(), nil
}
