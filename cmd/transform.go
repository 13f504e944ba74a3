package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/getlawrence/hooklog/internal/codegen"
	"github.com/getlawrence/hooklog/internal/codegen/types"
	"github.com/getlawrence/hooklog/internal/config"
	"github.com/getlawrence/hooklog/internal/detector"
	"github.com/getlawrence/hooklog/internal/logger"
	"github.com/getlawrence/hooklog/internal/ui"
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform [paths...]",
	Short: "Inject logging hooks into annotated components and hooks",
	Long: `Transform parses every JavaScript and TypeScript file under the given
paths (default: current directory) and injects a useEffect logging hook
into each component or custom hook annotated with // @log(a, b).

By default the transformed tree is mirrored into the output directory
and the sources are left untouched. Use --write to rewrite files in place.

Example usage:
  hooklog transform src                 # Write transformed files to ./dist
  hooklog transform src --write         # Rewrite sources, keeping .backup copies
  hooklog transform src --dry-run --diff`,
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringP("out-dir", "o", "", "Output directory for transformed files (default from config: dist)")
	transformCmd.Flags().BoolP("write", "w", false, "Rewrite source files in place")
	transformCmd.Flags().Bool("dry-run", false, "Transform without writing any file")
	transformCmd.Flags().Bool("print", false, "Print the regenerated source of every modified file")
	transformCmd.Flags().Bool("diff", false, "Print a unified diff of every modified file")
	transformCmd.Flags().BoolP("detailed", "d", false, "List every injection in the summary")
	addModeFlags(transformCmd)
}

// addModeFlags registers the flags that decide whether the transform is active
func addModeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("production", false, "Force production mode: copy sources unchanged")
	cmd.Flags().StringSlice("env-file", nil, "Dotenv files read before checking the production variable (default from config: .env)")
}

func runTransform(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app := appConfig(cmd)

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	inPlace, _ := cmd.Flags().GetBool("write")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	printSource, _ := cmd.Flags().GetBool("print")
	diff, _ := cmd.Flags().GetBool("diff")
	detailed, _ := cmd.Flags().GetBool("detailed")

	if inPlace && outDir != "" {
		return fmt.Errorf("--write and --out-dir are mutually exclusive")
	}

	production, err := resolveProduction(cmd, app.Config)
	if err != nil {
		return err
	}
	if production {
		app.Logger.Logf("🏭 %s is production: sources are passed through unchanged\n", app.Config.Transform.ProductionEnvVar)
	} else {
		warnMissingReact(app.Logger, paths)
	}

	gen, err := codegen.NewGenerator(app.Config, codegen.Options{
		Production: production,
		Logger:     app.Logger,
		Out:        cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize generator: %w", err)
	}

	req := types.GenerationRequest{
		Paths:           paths,
		OutputDirectory: outDir,
		InPlace:         inPlace,
		DryRun:          dryRun,
		Print:           printSource,
		Diff:            diff,
	}

	var result *types.RunResult
	run := func() error {
		var err error
		result, err = gen.Generate(ctx, req)
		return err
	}

	// The spinner owns the terminal, so printed sources and diffs run without it
	if app.Interactive() && !printSource && !diff {
		err = ui.RunSpinner(ctx, "Injecting logging hooks...", run)
	} else {
		err = run()
	}
	if err != nil {
		return err
	}

	if zl, ok := app.Logger.(*logger.ZapLogger); ok {
		logResult(zl, result)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderSummary(result, detailed))
	}

	if failed := len(result.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d files could not be transformed", failed, len(result.Files))
	}
	return nil
}

// resolveProduction applies --production and --env-file on top of the config
func resolveProduction(cmd *cobra.Command, cfg *config.Config) (bool, error) {
	if forced, _ := cmd.Flags().GetBool("production"); forced {
		return true, nil
	}
	if cmd.Flags().Changed("env-file") {
		envFiles, _ := cmd.Flags().GetStringSlice("env-file")
		cfg.Transform.EnvFiles = envFiles
	}
	return cfg.ResolveProduction()
}

// warnMissingReact warns when the project does not declare react, since the
// injected import would not resolve.
func warnMissingReact(log logger.Logger, paths []string) {
	dir := paths[0]
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if filepath.Ext(dir) != "" {
		dir = filepath.Dir(dir)
	}

	dep, found, err := detector.FindReactDependency(dir)
	switch {
	case err != nil:
		log.Debugf("could not check package.json: %v\n", err)
	case found:
		log.Debugf("react %s declared in %s of %s\n", dep.Version, dep.Section, dep.PackageFile)
	case dep.PackageFile != "":
		log.Logf("⚠️  %s does not declare react; injected imports will not resolve\n", dep.PackageFile)
	}
}

func logResult(log *logger.ZapLogger, result *types.RunResult) {
	for _, f := range result.Files {
		fileLog := log.With("path", f.Path)
		switch {
		case f.Err != nil:
			fileLog.With("error", f.Err.Error()).Log("transform failed")
		case f.Modified:
			fileLog.With("hooks", len(f.Injections), "import", string(f.Import), "output", f.OutputPath).Log("transformed")
		default:
			fileLog.Debugf("unchanged")
		}
	}
	log.With(
		"files", len(result.Files),
		"modified", len(result.Modified()),
		"hooks", result.Injections(),
		"duration", result.Duration.String(),
	).Log("transform complete")
}
