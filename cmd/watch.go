package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/getlawrence/hooklog/internal/codegen"
	"github.com/getlawrence/hooklog/internal/codegen/types"
	"github.com/getlawrence/hooklog/internal/logger"
	"github.com/getlawrence/hooklog/internal/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Transform on every change",
	Long: `Watch runs an initial transform into the output directory and then
re-runs it whenever a JavaScript or TypeScript file under the given paths
changes. Unchanged files are served from an in-memory cache.

Watch never rewrites sources in place: the injected hook would be
injected again on the next change.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("out-dir", "o", "", "Output directory for transformed files (default from config: dist)")
	addModeFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	app := appConfig(cmd)

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
		paths[i] = abs
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = app.Config.Output.Dir
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}
	// outputs written under a watched root must not trigger another run
	app.Config.Files.Exclude = append(app.Config.Files.Exclude, absOut)

	production, err := resolveProduction(cmd, app.Config)
	if err != nil {
		return err
	}
	warnMissingReact(app.Logger, paths)

	gen, err := codegen.NewGenerator(app.Config, codegen.Options{
		Production: production,
		Logger:     app.Logger,
		Out:        cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize generator: %w", err)
	}
	req := types.GenerationRequest{Paths: paths, OutputDirectory: absOut}

	var runMu sync.Mutex
	transform := func(changed []string) error {
		runMu.Lock()
		defer runMu.Unlock()
		for _, p := range changed {
			app.Logger.Debugf("changed: %s\n", p)
		}
		spin := logger.StartSpinner(app.Logger, fmt.Sprintf("Transforming %s", describeChanges(changed)))
		result, err := gen.Generate(ctx, req)
		if err != nil {
			spin.Fail()
			return err
		}
		reportWatchRun(app, spin, result)
		return nil
	}

	if err := transform(nil); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(app.Config, app.Logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Watch(paths, transform); err != nil {
		return err
	}
	app.Logger.Logf("👀 Watching %d directories, writing to %s. Press Ctrl+C to stop.\n", len(fw.GetWatchedPaths()), absOut)

	<-ctx.Done()
	app.Logger.Log("Stopping watcher")
	return nil
}

func describeChanges(changed []string) string {
	switch len(changed) {
	case 0:
		return "project"
	case 1:
		return filepath.Base(changed[0])
	default:
		return fmt.Sprintf("%d changed files", len(changed))
	}
}

func reportWatchRun(app *AppConfig, spin logger.Spinner, result *types.RunResult) {
	cached := 0
	for _, f := range result.Files {
		if f.Cached {
			cached++
		}
	}
	line := fmt.Sprintf("%d files (%d cached), %d hooks injected in %d files [%s]",
		len(result.Files), cached, result.Injections(), len(result.Modified()), result.Duration.Round(time.Millisecond))

	if _, ok := app.Logger.(*logger.UILogger); ok {
		spin.Update(line)
		spin.Stop()
	} else {
		spin.Stop()
		app.Logger.Logf("✓ %s\n", line)
	}
	for _, f := range result.Failed() {
		app.Logger.Logf("⚠️  %s: %v\n", f.Path, f.Err)
	}
}
