// Package service implements the chat command interpreter.
//
// Resolution is an ordered list of (match, handle) rules evaluated in a
// fixed priority order; the first rule whose predicate accepts the input
// wins. A single-slot pending transaction turns the interpreter into a
// two-state machine: Idle, and AwaitingConfirmation for a proposed deposit
// or withdrawal.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	chatdomain "github.com/boddenberg/firefly-engine-go/internal/chat/domain"
	"github.com/boddenberg/firefly-engine-go/internal/domain"
	"github.com/boddenberg/firefly-engine-go/internal/engine"
	"github.com/boddenberg/firefly-engine-go/internal/infra/observability"
)

// Word lists for the exact-match branches. The misspellings are
// intentional, taken from real user messages.
var (
	greetingWords    = []string{"hello", "hi", "hey", "helo", "hii", "yo", "wsg"}
	affirmativeWords = []string{"yes", "yea", "yuh", "yep", "yeah", "ye"}
	graphWords       = []string{"graph", "chart", "graf", "chartz", "grap"}

	greetingReplies = []string{
		"Hello! How can I assist you today?",
		"Hi there! What can I do for you?",
		"Hey! How can I help you?",
		"Hi! How can I assist with your finances today?",
	}
)

const helpText = `I'm not sure what you mean. You can:
- Check your balance
- Deposit or withdraw money
- Buy stocks
- Simulate growth
- Learn about financial concepts

Just ask naturally and I'll help you out!`

// rule is one (predicate, handler) pair in the priority list.
type rule struct {
	intent string
	match  func(input string) bool
	handle func(input string) chatdomain.Reply
}

// Interpreter resolves free-form text into intents and drives the
// simulator and ledger accordingly.
type Interpreter struct {
	sim     *engine.Simulator
	pending *chatdomain.PendingTransaction
	rules   []rule
	rnd     engine.Rand
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewInterpreter wires the interpreter and registers the rule list in
// priority order. The order is load-bearing: "what is my balance for this
// stock" must hit the balance branch, never the catalog branch.
func NewInterpreter(sim *engine.Simulator, rnd engine.Rand, logger *zap.Logger, metrics *observability.Metrics) *Interpreter {
	i := &Interpreter{
		sim:     sim,
		rnd:     rnd,
		logger:  logger,
		metrics: metrics,
	}
	i.rules = []rule{
		{intent: chatdomain.IntentConcept, match: matchConcept, handle: i.handleConcept},
		{intent: chatdomain.IntentBalance, match: containsAny("balance", "worth", "money"), handle: i.handleBalance},
		{intent: chatdomain.IntentStocks, match: containsAny("stock", "invest"), handle: i.handleStocks},
		{intent: chatdomain.IntentSavings, match: containsAny("savings", "interest"), handle: i.handleSavings},
		{intent: chatdomain.IntentTransaction, match: containsAny("deposit", "withdraw", "simulate", "buy"), handle: i.handleTransaction},
		{intent: chatdomain.IntentGreeting, match: equalsAny(greetingWords), handle: i.handleGreeting},
		{intent: chatdomain.IntentGraph, match: containsAny(graphWords...), handle: i.handleGraph},
		{intent: chatdomain.IntentFallback, match: func(string) bool { return true }, handle: i.handleFallback},
	}
	return i
}

// Pending exposes the confirmation slot, mainly for tests and the UI layer.
func (i *Interpreter) Pending() *chatdomain.PendingTransaction { return i.pending }

// Interpret resolves one chat input to a reply, mutating the account only
// through the deposit, withdraw, buy and simulate paths.
func (i *Interpreter) Interpret(input string) chatdomain.Reply {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return chatdomain.Reply{Text: helpText}
	}

	if i.pending != nil {
		i.metrics.IncrCommand(chatdomain.IntentConfirmation)
		return i.resolveConfirmation(lower)
	}

	for _, r := range i.rules {
		if !r.match(lower) {
			continue
		}
		i.logger.Debug("chat input resolved",
			zap.String("intent", r.intent),
			zap.Int("input_length", len(input)),
		)
		i.metrics.IncrCommand(r.intent)
		return r.handle(lower)
	}
	// The fallback rule matches everything; we never get here.
	return chatdomain.Reply{Text: helpText}
}

// ============================================================
// Confirmation state
// ============================================================

// resolveConfirmation consumes input while a transaction awaits a yes/no.
// Anything that is neither affirmative nor "no" re-prompts and leaves the
// slot intact.
func (i *Interpreter) resolveConfirmation(lower string) chatdomain.Reply {
	p := i.pending
	account := i.sim.Account()

	switch {
	case wordIn(lower, affirmativeWords):
		i.pending = nil
		var err error
		if p.Type == chatdomain.TransactionDeposit {
			err = account.Deposit(p.Amount, p.AccountName)
		} else {
			err = account.Withdraw(p.Amount, p.AccountName)
		}
		if err != nil {
			return chatdomain.Reply{Text: transactionErrorText(err, p)}
		}
		account.CheckAchievements(time.Now())
		verb := "Deposited"
		preposition := "into"
		if p.Type == chatdomain.TransactionWithdraw {
			verb = "Withdrew"
			preposition = "from"
		}
		return chatdomain.Reply{Text: fmt.Sprintf(
			"%s %s %s %s. Your cash balance is now %s. Your net account value is %s.",
			verb, formatBalance(p.Amount), preposition, p.AccountName,
			formatBalance(account.CashBalance), formatBalance(account.NetWorth()),
		)}

	case lower == "no":
		i.pending = nil
		noun := "Deposit"
		if p.Type == chatdomain.TransactionWithdraw {
			noun = "Withdrawal"
		}
		return chatdomain.Reply{Text: fmt.Sprintf(
			"%s canceled. Your balance remains %s.",
			noun, formatBalance(account.CashBalance),
		)}

	default:
		return chatdomain.Reply{Text: fmt.Sprintf(
			"Please answer yes or no: %s %s %s %s?",
			strings.ToLower(string(p.Type)), formatBalance(p.Amount),
			transactionPreposition(p.Type), p.AccountName,
		)}
	}
}

func transactionPreposition(t chatdomain.TransactionType) string {
	if t == chatdomain.TransactionWithdraw {
		return "from"
	}
	return "into"
}

func transactionErrorText(err error, p *chatdomain.PendingTransaction) string {
	var insufficient *domain.ErrInsufficientFunds
	if errors.As(err, &insufficient) {
		return fmt.Sprintf("Insufficient funds. You have %s available.",
			formatBalance(insufficient.Available))
	}
	var notFound *domain.ErrAccountNotFound
	if errors.As(err, &notFound) {
		return fmt.Sprintf("I couldn't find an account named %s.", notFound.Name)
	}
	return fmt.Sprintf("I couldn't complete that %s. Please try again.", p.Type)
}

// ============================================================
// Idle-state handlers, in priority order
// ============================================================

func matchConcept(input string) bool {
	for _, c := range conceptGlossary {
		if strings.Contains(input, c.keyword) {
			return true
		}
	}
	return false
}

func (i *Interpreter) handleConcept(input string) chatdomain.Reply {
	for _, c := range conceptGlossary {
		if strings.Contains(input, c.keyword) {
			return chatdomain.Reply{Text: c.explanation}
		}
	}
	return chatdomain.Reply{Text: helpText}
}

func (i *Interpreter) handleBalance(string) chatdomain.Reply {
	account := i.sim.Account()
	return chatdomain.Reply{Text: fmt.Sprintf(
		"Your cash balance is %s.\nYour net account value is %s.",
		formatBalance(account.CashBalance), formatBalance(account.NetWorth()),
	)}
}

func (i *Interpreter) handleStocks(string) chatdomain.Reply {
	var b strings.Builder
	b.WriteString("Here are the available stocks:\n")
	for _, s := range i.sim.Account().Stocks {
		b.WriteString(fmt.Sprintf("- %s (%s): %s risk", s.Name, s.Ticker, s.RiskLevel))
		if s.DividendYield != nil {
			b.WriteString(fmt.Sprintf(", %s%% dividend", percent(*s.DividendYield)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nYou can say 'buy [amount] of [stock name]' to purchase stocks.")
	return chatdomain.Reply{Text: b.String()}
}

func (i *Interpreter) handleSavings(string) chatdomain.Reply {
	account := i.sim.Account()
	if len(account.SavingsAccounts) == 0 {
		return chatdomain.Reply{Text: "You don't have a savings account yet."}
	}
	sa := account.SavingsAccounts[0]
	return chatdomain.Reply{Text: fmt.Sprintf(
		"Your %s offers a %s%% annual interest rate. It's a great way to grow your money safely.\n\n"+
			"Would you like to deposit money into your %s? Just say 'deposit [amount]'.",
		sa.Name, percent(sa.InterestRate), sa.Name,
	)}
}

// handleTransaction covers the amount-bearing commands: deposit, withdraw,
// simulate and buy. The first token parseable as a number anywhere in the
// input is the amount.
func (i *Interpreter) handleTransaction(input string) chatdomain.Reply {
	amount, ok := extractAmount(input)
	if !ok {
		i.logger.Debug("transaction rejected",
			zap.Error(&domain.ErrUnparseableInput{Input: input}))
		return chatdomain.Reply{Text: "Please include an amount, e.g. 'deposit 500'."}
	}

	switch {
	case strings.Contains(input, "deposit"):
		return i.proposeTransaction(chatdomain.TransactionDeposit, amount)
	case strings.Contains(input, "withdraw"):
		return i.proposeTransaction(chatdomain.TransactionWithdraw, amount)
	case strings.Contains(input, "simulate"):
		return i.handleSimulate(amount)
	case strings.Contains(input, "buy"):
		return i.handleBuy(input, amount)
	}
	return chatdomain.Reply{Text: helpText}
}

// proposeTransaction fills the confirmation slot, capturing the target
// account name now so the confirm step never depends on a hard-coded name.
func (i *Interpreter) proposeTransaction(t chatdomain.TransactionType, amount decimal.Decimal) chatdomain.Reply {
	if amount.Sign() <= 0 {
		return chatdomain.Reply{Text: fmt.Sprintf(
			"Please give a positive amount, e.g. '%s 500'.", t)}
	}
	account := i.sim.Account()
	if len(account.SavingsAccounts) == 0 {
		return chatdomain.Reply{Text: "You don't have a savings account to use."}
	}
	name := account.SavingsAccounts[0].Name
	i.pending = &chatdomain.PendingTransaction{Type: t, Amount: amount, AccountName: name}

	verb := "deposit"
	preposition := "into"
	if t == chatdomain.TransactionWithdraw {
		verb = "withdraw"
		preposition = "from"
	}
	return chatdomain.Reply{Text: fmt.Sprintf(
		"You would like to %s %s %s your %s, correct? (yes/no)",
		verb, formatBalance(amount), preposition, name,
	)}
}

func (i *Interpreter) handleSimulate(amount decimal.Decimal) chatdomain.Reply {
	years, _ := amount.Float64()
	start := time.Now()
	result, err := i.sim.Advance(years)
	if err != nil {
		var limit *domain.ErrSimulationLimit
		if errors.As(err, &limit) {
			return chatdomain.Reply{Text: fmt.Sprintf(
				"You cannot simulate more than %.0f years in total.", limit.Limit)}
		}
		return chatdomain.Reply{Text: "Please give a positive number of years to simulate."}
	}
	i.metrics.ObserveSimulation(years, time.Since(start))

	text := fmt.Sprintf("Simulated %g years. Your new net account value is %s.",
		years, formatBalance(result.NetWorth))
	if result.Complete {
		text += " You've reached year 100! This playthrough is complete."
	}
	return chatdomain.Reply{Text: text, SimulationComplete: result.Complete}
}

func (i *Interpreter) handleBuy(input string, amount decimal.Decimal) chatdomain.Reply {
	account := i.sim.Account()
	name, ok := extractStockName(input)
	if !ok {
		return chatdomain.Reply{Text: "Tell me which stock, e.g. 'buy 500 of Prickler Holdings'."}
	}
	stock, ok := account.StockByName(name)
	if !ok {
		return chatdomain.Reply{Text: fmt.Sprintf(
			"I couldn't find a stock matching '%s'. Available stocks are %s.",
			name, tickerList(account.Stocks))}
	}
	if err := account.PurchaseStock(stock.ID, amount); err != nil {
		var insufficient *domain.ErrInsufficientFunds
		if errors.As(err, &insufficient) {
			return chatdomain.Reply{Text: fmt.Sprintf(
				"Insufficient funds. You have %s available.",
				formatBalance(insufficient.Available))}
		}
		return chatdomain.Reply{Text: "I couldn't complete that purchase. Please try again."}
	}
	account.CheckAchievements(time.Now())
	return chatdomain.Reply{Text: fmt.Sprintf(
		"Successfully purchased %s of %s.\nYour new cash balance is %s.",
		formatBalance(amount), stock.Name, formatBalance(account.CashBalance),
	)}
}

func (i *Interpreter) handleGreeting(string) chatdomain.Reply {
	idx := int(i.rnd.Float64() * float64(len(greetingReplies)))
	if idx >= len(greetingReplies) {
		idx = len(greetingReplies) - 1
	}
	return chatdomain.Reply{Text: greetingReplies[idx]}
}

func (i *Interpreter) handleGraph(string) chatdomain.Reply {
	return chatdomain.Reply{
		Text:           "Generating your earnings graph...",
		GraphRequested: true,
	}
}

func (i *Interpreter) handleFallback(string) chatdomain.Reply {
	return chatdomain.Reply{Text: helpText}
}

// ============================================================
// Text helpers
// ============================================================

func containsAny(words ...string) func(string) bool {
	return func(input string) bool {
		for _, w := range words {
			if strings.Contains(input, w) {
				return true
			}
		}
		return false
	}
}

func equalsAny(words []string) func(string) bool {
	return func(input string) bool { return wordIn(input, words) }
}

func wordIn(input string, words []string) bool {
	for _, w := range words {
		if input == w {
			return true
		}
	}
	return false
}

// extractAmount returns the first whitespace-separated token that parses
// as a number. First match wins, even if it is not semantically "the"
// amount in the sentence.
func extractAmount(input string) (decimal.Decimal, bool) {
	for _, word := range strings.Fields(input) {
		word = strings.TrimPrefix(word, "$")
		if d, err := decimal.NewFromString(word); err == nil {
			return d, true
		}
	}
	return decimal.Zero, false
}

// extractStockName returns the word following "of" or "stock".
func extractStockName(input string) (string, bool) {
	words := strings.Fields(input)
	for idx, w := range words {
		if (w == "of" || w == "stock") && idx+1 < len(words) {
			return words[idx+1], true
		}
	}
	return "", false
}

func tickerList(stocks []domain.Stock) string {
	tickers := make([]string, len(stocks))
	for i, s := range stocks {
		tickers[i] = s.Ticker
	}
	return strings.Join(tickers, ", ")
}

func formatBalance(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String()
}
