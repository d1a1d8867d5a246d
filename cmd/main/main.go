package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corona-observer/src/config"
	"corona-observer/src/logger"
	"corona-observer/src/models"
	"corona-observer/src/report"
	"corona-observer/src/ui"
	"corona-observer/src/utils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "", "path to config file (empty uses built-in defaults)")
	printMode := flag.Bool("print", false, "print the sorted table to stdout and exit")
	sortFlag := flag.String("sort", "", "initial sort: confirmed, deaths or recovered")
	limit := flag.Int("limit", 0, "rows printed by -print (0 prints all)")
	saveConfig := flag.String("save-config", "", "write the effective config (file, .env and environment merged) to this path and exit")
	flag.Parse()

	// Optional .env, before the config reads its overrides
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Error loading .env: %v\n", err)
		os.Exit(1)
	}

	// Load config from YAML file
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *saveConfig != "" {
		if err := conf.Save(*saveConfig); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", *saveConfig)
		return
	}

	metric := conf.DefaultSort()
	if *sortFlag != "" {
		if metric, err = models.ParseMetric(*sortFlag); err != nil {
			fmt.Printf("Error: -sort: %v\n", err)
			os.Exit(1)
		}
	}

	// Setup logger
	logCloser, err := logger.Configure(conf.MConfig)
	if err != nil {
		fmt.Printf("Error configuring logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	appLogger := logger.NewLogger(conf.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup Components
	app, err := setupApplication(conf.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to set up: %v", err)
	}
	defer app.Close()

	// Initial Data Load, before the terminal is taken over
	appLogger.Info("Fetching initial data...")
	ds, err := app.Loader.Load(ctx)
	if err != nil {
		appLogger.Critical("Failed to load data: %v", err)
	}

	if *printMode {
		if err := report.Write(os.Stdout, app.Analyzer, ds, metric, *limit); err != nil {
			appLogger.Critical("Failed to print report: %v", err)
		}
		return
	}

	// Start Servers
	servers := startServers(conf.MConfig, app, appLogger)
	servers.UpdateDataset(ds)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		servers.Shutdown(shutdownCtx)
	}()

	model := ui.NewModel(ds, app.Analyzer, metric, conf.DataSource.HomeURL, appLogger.Named("UI"))
	program := tea.NewProgram(model, tea.WithAltScreen())

	// Periodic refresh
	scheduler := utils.NewRefreshScheduler(utils.RefreshInterval(conf.DataSource.UpdateIntervalSeconds), appLogger.Named("Scheduler"))
	go scheduler.Run(ctx, func(ctx context.Context) error {
		ds, err := app.Loader.Load(ctx)
		if err != nil {
			program.Send(ui.RefreshErrMsg{Err: err})
			return err
		}
		program.Send(ui.DatasetMsg{Dataset: ds})
		servers.UpdateDataset(ds)
		return nil
	})

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		appLogger.Error("UI stopped: %v", err)
	}
	stop()
	appLogger.Info("Shutdown complete.")
}
