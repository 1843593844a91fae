// Command firefly is a local chat shell around the Firefly engine. It plays
// the role of the UI layer: it feeds user lines to the command interpreter,
// prints replies, renders the earnings chart when requested and persists a
// playthrough when a run reaches year 100. The quiz, session reset and
// saved-playthrough screens are exposed as shell commands.
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/boddenberg/firefly-engine-go/internal/chat/port"
	chatservice "github.com/boddenberg/firefly-engine-go/internal/chat/service"
	"github.com/boddenberg/firefly-engine-go/internal/config"
	"github.com/boddenberg/firefly-engine-go/internal/domain"
	"github.com/boddenberg/firefly-engine-go/internal/engine"
	"github.com/boddenberg/firefly-engine-go/internal/infra/observability"
	"github.com/boddenberg/firefly-engine-go/internal/infra/storage"
	"github.com/boddenberg/firefly-engine-go/internal/quiz"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("log_level", cfg.LogLevel),
		zap.String("db_path", cfg.DBPath),
		zap.String("starting_cash", cfg.StartingCash.StringFixed(2)),
		zap.String("savings_rate", cfg.SavingsRate.String()),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Persistence ---
	sqliteStore, err := storage.NewPlaythroughStore(cfg.DBPath, cfg.CacheTTL, metrics, logger)
	if err != nil {
		logger.Fatal("failed to open playthrough store", zap.Error(err))
	}
	var saves port.PlaythroughStore = sqliteStore

	// --- Session ---
	rnd := engine.SystemRand()
	newSession := func() (*domain.Account, *engine.ReturnTable) {
		account := domain.NewStartingAccount(cfg.StartingCash, cfg.SavingsRate, rnd.Float64)
		table := engine.DefaultReturnTable(account, engine.ReturnRange{
			Min: cfg.DefaultReturnMin,
			Max: cfg.DefaultReturnMax,
		})
		return account, table
	}
	account, table := newSession()
	sim := engine.NewSimulator(account, table, rnd, logger)
	sim.SetYearLimit(cfg.YearLimit)
	interpreter := chatservice.NewInterpreter(sim, rnd, logger, metrics)

	var chart port.ChartRenderer = newTextChart()

	// --- Chat loop ---
	fmt.Println("How can I assist you today? (ctrl-d to quit)")
	fmt.Println("Shell commands: quiz, reset, saves, load <n>, delete <n>")
	scanner := bufio.NewScanner(os.Stdin)
	sh := &shell{
		sim:        sim,
		saves:      saves,
		scores:     quiz.NewScoreStore(),
		bank:       defaultQuizBank(),
		newSession: newSession,
		in:         scanner,
		out:        os.Stdout,
		logger:     logger,
	}
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		if sh.handle(scanner.Text()) {
			continue
		}

		reply := interpreter.Interpret(scanner.Text())
		fmt.Println(reply.Text)

		if reply.GraphRequested {
			rendered, err := chart.Render(sim.Earnings(), sim.Account())
			if err != nil {
				logger.Error("chart rendering failed", zap.Error(err))
			} else {
				fmt.Println(rendered)
			}
		}

		if reply.SimulationComplete {
			p := sim.Snapshot(time.Now())
			if err := saves.Save(p); err != nil {
				logger.Error("failed to save playthrough", zap.Error(err))
			} else {
				fmt.Printf("Playthrough saved (year %d, net worth $%s).\n",
					p.Year, p.NetWorth.StringFixed(2))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("stdin read failed", zap.Error(err))
	}

	stats := metrics.Snapshot()
	logger.Info("session finished",
		zap.Float64("commands", stats.TotalCommands),
		zap.Float64("simulated_years", stats.SimulatedYears),
		zap.Float64("cache_hit_rate", stats.CacheHitRate),
		zap.Float64("playthroughs_saved", stats.PlaythroughSave),
	)
}
