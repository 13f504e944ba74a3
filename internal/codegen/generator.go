package codegen

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/getlawrence/hooklog/internal/codegen/injector"
	"github.com/getlawrence/hooklog/internal/codegen/types"
	"github.com/getlawrence/hooklog/internal/config"
	"github.com/getlawrence/hooklog/internal/detector"
	"github.com/getlawrence/hooklog/internal/jsast"
	"github.com/getlawrence/hooklog/internal/logger"
	"github.com/getlawrence/hooklog/internal/ui"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedFile is returned for files that are not JavaScript or TypeScript
var ErrUnsupportedFile = errors.New("unsupported file type")

const cacheSize = 1024

// Options configures a Generator
type Options struct {
	// Production turns every transform into a pass-through copy
	Production bool
	Logger     logger.Logger
	// Out receives printed sources and diffs; defaults to stdout
	Out io.Writer
}

type cacheEntry struct {
	output []byte
	result types.FileResult
}

// Generator runs the hook injector over a set of source files
type Generator struct {
	cfg      *config.Config
	injector *injector.CodeInjector
	log      logger.Logger
	cache    *lru.Cache[string, cacheEntry]

	outMu sync.Mutex
	out   io.Writer
}

// NewGenerator creates a new generator
func NewGenerator(cfg *config.Config, opts Options) (*Generator, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	cache, err := lru.New[string, cacheEntry](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create transform cache: %w", err)
	}

	return &Generator{
		cfg:      cfg,
		injector: injector.NewCodeInjector(injector.Options{Production: opts.Production, Logger: log}),
		log:      log,
		cache:    cache,
		out:      out,
	}, nil
}

// Production reports whether the generator passes sources through unchanged
func (g *Generator) Production() bool { return g.injector.Production() }

// Generate transforms every source file under req.Paths. Failures of single
// files are recorded in their FileResult; only discovery errors and
// cancellation abort the run.
func (g *Generator) Generate(ctx context.Context, req types.GenerationRequest) (*types.RunResult, error) {
	start := time.Now()
	if len(req.Paths) == 0 {
		return nil, errors.New("no paths to transform")
	}

	sources, err := detector.CollectSources(req.Paths, g.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to collect sources: %w", err)
	}

	outDir := req.OutputDirectory
	if outDir == "" {
		outDir = g.cfg.Output.Dir
	}
	if !req.InPlace {
		sources = excludeOutputDir(sources, outDir)
	}
	g.log.Debugf("transforming %d files\n", len(sources))

	results := make([]*types.FileResult, len(sources))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.Workers, 1))
	for i, src := range sources {
		i, src := i, src
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = g.transformSource(ctx, src, outDir, req)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &types.RunResult{Files: results, Duration: time.Since(start)}, nil
}

// TransformFile transforms one source unit in memory. The returned bytes are
// shared with the cache and must not be modified.
func (g *Generator) TransformFile(ctx context.Context, path string, content []byte) ([]byte, *types.FileResult, error) {
	key := cacheKey(g.Production(), path, content)
	if entry, ok := g.cache.Get(key); ok {
		result := entry.result
		result.Cached = true
		return entry.output, &result, nil
	}

	dialect, ok := jsast.DialectForFile(path, content)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFile)
	}

	file, err := jsast.Parse(ctx, path, content, dialect)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	result := g.injector.Inject(file)
	output := file.Bytes()
	g.cache.Add(key, cacheEntry{output: output, result: *result})
	return output, result, nil
}

func (g *Generator) transformSource(ctx context.Context, src detector.Source, outDir string, req types.GenerationRequest) *types.FileResult {
	content, err := os.ReadFile(src.Path)
	if err != nil {
		return &types.FileResult{Path: src.Path, Err: fmt.Errorf("failed to read %s: %w", src.Path, err)}
	}

	output, result, err := g.TransformFile(ctx, src.Path, content)
	if err != nil {
		g.log.Debugf("skipping %s: %v\n", src.Path, err)
		return &types.FileResult{Path: src.Path, Err: err}
	}

	if req.InPlace {
		result.OutputPath = src.Path
	} else {
		result.OutputPath = filepath.Join(outDir, src.Rel())
	}

	if result.Modified {
		if req.Print {
			g.emit(fmt.Sprintf("// %s\n%s", src.Path, output))
		}
		if req.Diff {
			g.emit(ui.RenderDiff(src.Rel(), content, output, g.cfg.Output.Color))
		}
	}

	if req.DryRun {
		return result
	}
	if err := g.writeOutput(content, output, result, req.InPlace); err != nil {
		result.Err = err
	}
	return result
}

// writeOutput mirrors every source into the output directory. In place, only
// modified files are rewritten.
func (g *Generator) writeOutput(original, output []byte, result *types.FileResult, inPlace bool) error {
	if inPlace {
		if !result.Modified {
			return nil
		}
		if g.cfg.Output.Backup {
			backup := result.Path + ".backup"
			if err := os.WriteFile(backup, original, 0644); err != nil {
				return fmt.Errorf("failed to write backup %s: %w", backup, err)
			}
		}
	} else {
		// leave identical outputs alone so watchers see no event
		if existing, err := os.ReadFile(result.OutputPath); err == nil && bytes.Equal(existing, output) {
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(result.OutputPath), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(result.OutputPath, output, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", result.OutputPath, err)
	}
	result.Written = true
	return nil
}

func (g *Generator) emit(text string) {
	if text == "" {
		return
	}
	g.outMu.Lock()
	defer g.outMu.Unlock()
	fmt.Fprint(g.out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(g.out)
	}
}

// excludeOutputDir drops sources that live under outDir so a rerun never
// transforms its own output.
func excludeOutputDir(sources []detector.Source, outDir string) []detector.Source {
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return sources
	}
	kept := sources[:0]
	for _, src := range sources {
		abs, err := filepath.Abs(src.Path)
		if err == nil {
			if rel, err := filepath.Rel(absOut, abs); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				continue
			}
		}
		kept = append(kept, src)
	}
	return kept
}

func cacheKey(production bool, path string, content []byte) string {
	sum := sha256.Sum256(content)
	mode := "dev"
	if production {
		mode = "production"
	}
	return mode + "\x00" + path + "\x00" + hex.EncodeToString(sum[:])
}
