// Package port defines the interfaces for the collaborators the chat and
// session layers depend on. Concrete implementations live in infra (the
// sqlite playthrough store) and in the composition shell (chart rendering),
// so the core depends on contracts, not implementations.
package port

import (
	"github.com/google/uuid"

	"github.com/boddenberg/firefly-engine-go/internal/domain"
)

// PlaythroughStore persists full saves of a session.
//
// Contract expected by the core: replace-by-id on Save, newest-10 retention
// (oldest evicted first on overflow), and exact round-trip of the account
// and earnings series.
type PlaythroughStore interface {
	Save(p *domain.Playthrough) error
	List() ([]domain.Playthrough, error)
	Delete(id uuid.UUID) error
}

// ChartRenderer turns the earnings series into something displayable.
// The interpreter only raises the graph-requested signal; how the chart is
// drawn is entirely the UI layer's concern.
type ChartRenderer interface {
	Render(series []domain.EarningsSnapshot, account *domain.Account) (string, error)
}
