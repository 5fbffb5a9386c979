// Package cli provides the command-line interface for the trade log.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/xtraders/tradelog/internal/config"
	"github.com/xtraders/tradelog/internal/daily"
	"github.com/xtraders/tradelog/internal/errors"
	"github.com/xtraders/tradelog/internal/ingest"
	"github.com/xtraders/tradelog/internal/ledger"
	"github.com/xtraders/tradelog/internal/logging"
	"github.com/xtraders/tradelog/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-03-01"
)

// App holds the application dependencies. They are built once the root
// command's flags are parsed.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   store.KVStore
	Ledger  *ledger.Manager
	Archive *store.ReportArchive
	Reader  *ingest.Reader
	Parser  *daily.Parser
}

// Execute runs the CLI with os.Args and releases the store afterwards,
// whether or not the command succeeded.
func Execute(ctx context.Context, logger zerolog.Logger) error {
	app := &App{Logger: logger}
	err := NewRootCmd(app).ExecuteContext(ctx)
	if closeErr := app.Close(); err == nil {
		err = closeErr
	}
	return err
}

// NewRootCmd creates the root command for the CLI. app.Logger is used
// until the configured logger is available.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xtraders",
		Short: "XTraders trade log - performance analytics for robot trading",
		Long: `XTraders imports broker and platform exports of automated trading robots,
computes performance metrics and keeps a per-day ledger of robot results.

Use 'xtraders examples' to see common workflows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/xtraders)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newDailyCmd(app))
	rootCmd.AddCommand(newLedgerCmd(app))
	rootCmd.AddCommand(newCalendarCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newExamplesCmd())

	return rootCmd
}

// init loads configuration, builds the logger and opens the store.
func (app *App) init(cmd *cobra.Command) error {
	configDir, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	app.Config = cfg

	noColor, _ := cmd.Flags().GetBool("no-color")
	if !cfg.UI.ColorEnabled && !noColor {
		_ = cmd.Flags().Set("no-color", "true")
		noColor = true
	}

	logCfg := logging.LogConfig{
		Level:      cfg.Logging.Level,
		Console:    cfg.Logging.Console,
		NoColor:    noColor,
		File:       cfg.Logging.File,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
	}
	app.Logger = logging.NewLoggerWithConfig(logCfg)
	cmd.SetContext(logging.WithLogger(cmd.Context(), app.Logger))

	kv, err := app.openStore()
	if err != nil {
		return err
	}
	app.Store = kv
	app.Ledger = ledger.NewManager(store.NewHistoricalStore(app.Store, app.Logger), app.Logger)
	app.Archive = store.NewReportArchive(app.Store, app.Logger)
	app.Reader = ingest.NewReader(app.Logger, cfg.Ingest.MaxConcurrentReads)
	app.Parser = daily.NewParser(app.Logger)
	return nil
}

// openStore opens the configured store. Only the ":memory:" path selects
// the in-memory store; a SQLite path that cannot be opened fails the command.
func (app *App) openStore() (store.KVStore, error) {
	if app.Config.InMemory() {
		return store.NewMemoryStore(), nil
	}
	sqliteStore, err := store.NewSQLiteStore(app.Config.Storage.Path)
	if err != nil {
		app.Logger.Error().Err(err).Str("path", app.Config.Storage.Path).Msg("Failed to open store")
		return nil, errors.Wrapf(errors.ErrDatabaseError, "opening %s: %v", app.Config.Storage.Path, err)
	}
	app.Logger.Debug().Str("path", app.Config.Storage.Path).Msg("SQLite store initialized")
	return sqliteStore, nil
}

// Close releases the store.
func (app *App) Close() error {
	if app.Store == nil {
		return nil
	}
	err := app.Store.Close()
	app.Store = nil
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("XTraders trade log v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			path := config.FilePath(app.Config.Dir)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": path})
			} else {
				output.Println(path)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Storage")
	output.Printf("  Path:             %s\n", cfg.Storage.Path)
	output.Println()

	output.Bold("Ingest")
	output.Printf("  Concurrent reads: %d\n", cfg.Ingest.MaxConcurrentReads)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:            %s\n", cfg.Logging.Level)
	output.Printf("  Console:          %v\n", cfg.Logging.Console)
	output.Printf("  File:             %v (%s)\n", cfg.Logging.File, cfg.Logging.FilePath)
	output.Printf("  Rotation:         %d MB, %d backups, %d days\n",
		cfg.Logging.MaxSize, cfg.Logging.MaxBackups, cfg.Logging.MaxAge)
	output.Println()

	output.Bold("UI")
	output.Printf("  Colors:           %v\n", cfg.UI.ColorEnabled)
}
