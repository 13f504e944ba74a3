package codegen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/getlawrence/hooklog/internal/codegen/types"
	"github.com/getlawrence/hooklog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const counterSrc = "// @log(count)\nfunction Counter() { const count = 1; return count; }\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestGenerator(t *testing.T, opts Options) (*Generator, *config.Config) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Output.Color = false
	g, err := NewGenerator(cfg, opts)
	require.NoError(t, err)
	return g, cfg
}

func TestGenerate_WritesMirroredOutput(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(root, "src", "Counter.jsx"), counterSrc)
	writeFile(t, filepath.Join(root, "src", "util.js"), "export const add = (a, b) => a + b;\n")
	writeFile(t, filepath.Join(root, "src", "broken.js"), "function ( {\n")

	g, _ := newTestGenerator(t, Options{})
	result, err := g.Generate(context.Background(), types.GenerationRequest{
		Paths:           []string{root},
		OutputDirectory: outDir,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, 1, result.Injections())
	require.Len(t, result.Modified(), 1)
	require.Len(t, result.Failed(), 1)
	assert.Equal(t, filepath.Join(root, "src", "broken.js"), result.Failed()[0].Path)

	out, err := os.ReadFile(filepath.Join(outDir, "src", "Counter.jsx"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "import { useEffect } from \"react\";\n"))
	assert.Contains(t, string(out), "}, [count]);")

	// unmodified files are mirrored verbatim
	util, err := os.ReadFile(filepath.Join(outDir, "src", "util.js"))
	require.NoError(t, err)
	assert.Equal(t, "export const add = (a, b) => a + b;\n", string(util))

	// sources are never touched
	orig, err := os.ReadFile(filepath.Join(root, "src", "Counter.jsx"))
	require.NoError(t, err)
	assert.Equal(t, counterSrc, string(orig))
}

func TestGenerate_InPlaceWithBackup(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Counter.jsx")
	writeFile(t, path, counterSrc)
	writeFile(t, filepath.Join(root, "plain.js"), "run();\n")

	g, _ := newTestGenerator(t, Options{})
	result, err := g.Generate(context.Background(), types.GenerationRequest{Paths: []string{root}, InPlace: true})
	require.NoError(t, err)
	require.Len(t, result.Modified(), 1)
	assert.True(t, result.Modified()[0].Written)

	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), "useEffect(() => {")

	backup, err := os.ReadFile(path + ".backup")
	require.NoError(t, err)
	assert.Equal(t, counterSrc, string(backup))

	_, err = os.Stat(filepath.Join(root, "plain.js.backup"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerate_DryRunPrintAndDiff(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(root, "dist")
	writeFile(t, filepath.Join(root, "Counter.jsx"), counterSrc)

	var buf bytes.Buffer
	g, _ := newTestGenerator(t, Options{Out: &buf})
	result, err := g.Generate(context.Background(), types.GenerationRequest{
		Paths:           []string{root},
		OutputDirectory: outDir,
		DryRun:          true,
		Print:           true,
		Diff:            true,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.False(t, result.Files[0].Written)

	_, err = os.Stat(outDir)
	assert.True(t, os.IsNotExist(err), "dry run must not create the output directory")

	printed := buf.String()
	assert.Contains(t, printed, "// "+filepath.Join(root, "Counter.jsx"))
	assert.Contains(t, printed, "+import { useEffect } from \"react\";")
	assert.Contains(t, printed, "--- a/Counter.jsx")
}

func TestGenerate_SkipsOutputDirectory(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(root, "generated")
	writeFile(t, filepath.Join(root, "Counter.jsx"), counterSrc)

	g, _ := newTestGenerator(t, Options{})
	req := types.GenerationRequest{Paths: []string{root}, OutputDirectory: outDir}

	first, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, first.Files, 1)

	second, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, second.Files, 1, "output of the first run must not be picked up")
	assert.True(t, second.Files[0].Cached)
	assert.Equal(t, 1, second.Injections())
}

func TestGenerate_Production(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(root, "Counter.jsx"), counterSrc)

	g, _ := newTestGenerator(t, Options{Production: true})
	require.True(t, g.Production())
	result, err := g.Generate(context.Background(), types.GenerationRequest{Paths: []string{root}, OutputDirectory: outDir})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Injections())

	out, err := os.ReadFile(filepath.Join(outDir, "Counter.jsx"))
	require.NoError(t, err)
	assert.Equal(t, counterSrc, string(out))
}

func TestGenerate_Errors(t *testing.T) {
	g, _ := newTestGenerator(t, Options{})

	_, err := g.Generate(context.Background(), types.GenerationRequest{})
	assert.Error(t, err)

	_, err = g.Generate(context.Background(), types.GenerationRequest{Paths: []string{filepath.Join(t.TempDir(), "missing")}})
	assert.Error(t, err)
}

func TestTransformFile_Cache(t *testing.T) {
	g, _ := newTestGenerator(t, Options{})
	ctx := context.Background()

	out1, r1, err := g.TransformFile(ctx, "Counter.jsx", []byte(counterSrc))
	require.NoError(t, err)
	assert.False(t, r1.Cached)

	out2, r2, err := g.TransformFile(ctx, "Counter.jsx", []byte(counterSrc))
	require.NoError(t, err)
	assert.True(t, r2.Cached)
	assert.Equal(t, out1, out2)
	assert.Equal(t, r1.Injections, r2.Injections)

	_, r3, err := g.TransformFile(ctx, "Counter.jsx", []byte(counterSrc+"\n"))
	require.NoError(t, err)
	assert.False(t, r3.Cached)
}

func TestTransformFile_Unsupported(t *testing.T) {
	g, _ := newTestGenerator(t, Options{})
	_, _, err := g.TransformFile(context.Background(), "styles.css", []byte("a { color: red; }"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}
