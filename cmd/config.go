package cmd

import (
	"github.com/fatih/color"
	"github.com/getlawrence/hooklog/internal/config"
	"github.com/getlawrence/hooklog/internal/logger"
	"github.com/getlawrence/hooklog/internal/ui"
	"github.com/spf13/cobra"
)

// AppConfig holds all the shared configuration and dependencies
type AppConfig struct {
	Config *config.Config
	Logger logger.Logger
	// JSON is set when logs are structured; interactive UI is disabled then
	JSON bool
}

// NewAppConfig creates a new configuration instance
func NewAppConfig(cfg *config.Config, log logger.Logger) *AppConfig {
	return &AppConfig{
		Config: cfg,
		Logger: log,
	}
}

// Interactive reports whether spinners and other terminal UI may be used
func (a *AppConfig) Interactive() bool {
	return !a.JSON && logger.IsInteractive()
}

func appConfig(cmd *cobra.Command) *AppConfig {
	if app, ok := cmd.Context().Value(ConfigKey).(*AppConfig); ok {
		return app
	}
	return NewAppConfig(nil, nil)
}

// setupAppConfig loads the config file and builds the logger selected by the global flags
func setupAppConfig(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)

	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logJSON, _ := cmd.Flags().GetBool("log-json")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	app.Config = cfg
	app.JSON = logJSON

	switch {
	case logJSON:
		zl, err := logger.NewZapLogger(verbose)
		if err != nil {
			return err
		}
		app.Logger = zl
	case logger.IsInteractive():
		app.Logger = logger.NewUILogger(verbose)
	default:
		app.Logger = logger.NewStdoutLogger(verbose)
	}

	ui.SetOutput(cmd.OutOrStdout())
	if !cfg.Output.Color {
		color.NoColor = true
	}
	return nil
}

func teardownAppConfig(cmd *cobra.Command, args []string) error {
	if zl, ok := appConfig(cmd).Logger.(*logger.ZapLogger); ok {
		// stdout cannot always be synced; the entries are already written
		_ = zl.Sync()
	}
	return nil
}
