package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/wanderplan/internal/cli"
	"github.com/alexanderramin/wanderplan/internal/config"
	"github.com/alexanderramin/wanderplan/internal/db"
	"github.com/alexanderramin/wanderplan/internal/llm"
	"github.com/alexanderramin/wanderplan/internal/planner"
	"github.com/alexanderramin/wanderplan/internal/repository"
	"github.com/alexanderramin/wanderplan/internal/service"
	"github.com/alexanderramin/wanderplan/internal/workflow"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Diagnostics go to WANDERPLAN_LOG_FILE so they never tear the TUI.
	var logWriter io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logWriter = f
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	tripRepo := repository.NewSQLiteTripRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Trips:         service.NewTripService(tripRepo, uow, service.NewLogUseCaseObserver(logWriter)),
		GeneratorName: string(cfg.Generator),
		Timeout:       cfg.GenerationTimeout,
		Observer:      workflow.NoopObserver{},
	}
	if logWriter != nil {
		app.Observer = workflow.NewLogObserver(logWriter)
	}

	switch cfg.Generator {
	case config.GeneratorLLM:
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls && logWriter != nil {
			observer = llm.NewLogObserver(logWriter)
		}
		app.Generator = planner.NewLLMGenerator(llm.NewOllamaClient(cfg.LLM, observer))
	default:
		app.Generator = planner.NewSampleGenerator(cfg.SampleLatency)
	}

	switch cfg.StageMode {
	case config.StageMilestone:
		app.StageSource = func() workflow.StageSource { return workflow.NewMilestoneStages() }
	default:
		dwell := cfg.StageDwell
		app.StageSource = func() workflow.StageSource { return workflow.DwellStages{Dwell: dwell} }
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
