package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

type contextKey string

// Context key for configuration
const ConfigKey contextKey = "config"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hooklog",
	Short: "Inject useEffect logging hooks into annotated React components",
	Long: `hooklog is a build-time source transform for React projects.

Annotate a component or custom hook with a leading comment:

  // @log(count, user)
  function Counter() { ... }

and hooklog inserts a useEffect call that logs those variables whenever
they change, adding the react import when needed. The transform is
disabled when NODE_ENV is "production".`,
	Version:            Version,
	SilenceUsage:       true,
	PersistentPreRunE:  setupAppConfig,
	PersistentPostRunE: teardownAppConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	config := NewAppConfig(nil, nil) // Config and logger are filled in per command
	ctx := context.WithValue(context.Background(), ConfigKey, config)
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default .hooklog.yaml in the working or home directory)")
	rootCmd.PersistentFlags().Bool("log-json", false, "write structured JSON logs instead of terminal output")
}
