// Package domain defines the types exchanged between the chat interpreter
// and its caller. The interpreter consumes free-form text and produces a
// Reply; it never returns an error, every branch degrades to text.
package domain

import "github.com/shopspring/decimal"

// ============================================================
// Transactions pending confirmation
// ============================================================

// TransactionType distinguishes the two money-moving chat commands.
type TransactionType string

const (
	TransactionDeposit  TransactionType = "deposit"
	TransactionWithdraw TransactionType = "withdraw"
)

// PendingTransaction is the single-slot confirmation state held between
// proposing and applying a deposit or withdrawal. AccountName is captured
// when the slot is filled so confirmation applies to the right account.
type PendingTransaction struct {
	Type        TransactionType
	Amount      decimal.Decimal
	AccountName string
}

// ============================================================
// Replies
// ============================================================

// Reply is what the interpreter hands back to the UI layer for each input.
type Reply struct {
	// Text is the message to show the user.
	Text string
	// GraphRequested signals that the UI layer should render the earnings
	// chart. Rendering itself is the chart collaborator's job.
	GraphRequested bool
	// SimulationComplete signals the year-100 milestone so the caller can
	// offer to persist a playthrough.
	SimulationComplete bool
}

// ============================================================
// Intents
// ============================================================

// Intent labels name the resolution branch an input matched. They feed
// logging and the per-intent command counter.
const (
	IntentConcept      = "concept"
	IntentBalance      = "balance"
	IntentStocks       = "stocks"
	IntentSavings      = "savings"
	IntentTransaction  = "transaction"
	IntentGreeting     = "greeting"
	IntentGraph        = "graph"
	IntentFallback     = "fallback"
	IntentConfirmation = "confirmation"
)

// Intents lists every intent label. Anything aggregating per-intent
// counters ranges over this instead of re-listing the constants.
var Intents = []string{
	IntentConcept,
	IntentBalance,
	IntentStocks,
	IntentSavings,
	IntentTransaction,
	IntentGreeting,
	IntentGraph,
	IntentFallback,
	IntentConfirmation,
}
