package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/lifeplan/internal/cli"
	"github.com/alexanderramin/lifeplan/internal/db"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/alexanderramin/lifeplan/internal/llm"
	"github.com/alexanderramin/lifeplan/internal/repository"
	"github.com/alexanderramin/lifeplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.lifeplan/lifeplan.db
	dbPath := os.Getenv("LIFEPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".lifeplan", "lifeplan.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	eventRepo := repository.NewSQLiteEventRepo(database)
	goalRepo := repository.NewSQLiteGoalRepo(database)
	subGoalRepo := repository.NewSQLiteSubGoalRepo(database)
	snapshotRepo := repository.NewSQLiteBalanceSnapshotRepo(database)
	messageRepo := repository.NewSQLiteChatMessageRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Without a model the planner runs every task on its fallbacks.
	llmCfg := llm.LoadConfig()
	var client llm.LLMClient
	plannerOpts := []intelligence.PlannerOption{}
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
			plannerOpts = append(plannerOpts, intelligence.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
		}
		client = llm.NewOllamaClient(llmCfg, observer)
	}
	planner := intelligence.NewPlanner(client, plannerOpts...)

	var observers []service.UseCaseObserver
	if on, _ := strconv.ParseBool(os.Getenv("LIFEPLAN_LOG_USECASES")); on {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Events:       service.NewEventService(eventRepo, observers...),
		Balance:      service.NewBalanceService(eventRepo, snapshotRepo, goalRepo, planner, observers...),
		Goals:        service.NewGoalService(goalRepo, subGoalRepo, eventRepo, uow, planner, observers...),
		Schedule:     service.NewScheduleService(eventRepo, goalRepo, uow, planner, observers...),
		Chat:         service.NewChatService(messageRepo, goalRepo, eventRepo, uow, planner, observers...),
		ModelEnabled: llmCfg.Enabled,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
