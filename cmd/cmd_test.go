package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/getlawrence/hooklog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command in-process. Cobra keeps flag values
// between runs, so tests pass every flag they depend on explicitly.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NODE_ENV", "")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	ctx := context.WithValue(context.Background(), ConfigKey, NewAppConfig(nil, nil))
	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func TestInitWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".hooklog.yaml")

	out, err := executeCommand(t, "init", "--file", path, "--force=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, err = executeCommand(t, "init", "--file", path, "--force=false")
	assert.ErrorContains(t, err, "already exists")

	_, err = executeCommand(t, "init", "--file", path, "--force")
	assert.NoError(t, err)
}

func TestTransformDryRunPrint(t *testing.T) {
	dir := t.TempDir()
	src := "// @log(count)\nfunction Counter() { const count = 1; return count; }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Counter.jsx"), []byte(src), 0644))

	out, err := executeCommand(t, "transform", dir, "--dry-run", "--print", "--diff=false", "--write=false", "--out-dir", "", "--production=false")
	require.NoError(t, err)
	assert.Contains(t, out, "import { useEffect } from \"react\";")
	assert.Contains(t, out, "}, [count]);")
	assert.Contains(t, out, "Hooks injected: 1")

	_, err = os.Stat(filepath.Join(dir, "dist"))
	assert.True(t, os.IsNotExist(err))
}

func TestTransformProductionFlag(t *testing.T) {
	dir := t.TempDir()
	src := "// @log(count)\nfunction Counter() { const count = 1; return count; }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Counter.jsx"), []byte(src), 0644))

	out, err := executeCommand(t, "transform", dir, "--dry-run", "--print=false", "--diff=false", "--write=false", "--out-dir", "", "--production")
	require.NoError(t, err)
	assert.Contains(t, out, "Hooks injected: 0")
}

func TestTransformRejectsWriteWithOutDir(t *testing.T) {
	_, err := executeCommand(t, "transform", t.TempDir(), "--write", "--out-dir", "out", "--production=false")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestResolveProductionEnvFile(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	require.NoError(t, os.Unsetenv("NODE_ENV"))
	t.Cleanup(func() { os.Unsetenv("NODE_ENV") })

	envFile := filepath.Join(t.TempDir(), "prod.env")
	require.NoError(t, os.WriteFile(envFile, []byte("NODE_ENV=production\n"), 0644))

	cmd := transformCmd
	require.NoError(t, cmd.Flags().Set("production", "false"))
	require.NoError(t, cmd.Flags().Set("env-file", envFile))

	cfg := config.DefaultConfig()
	production, err := resolveProduction(cmd, cfg)
	require.NoError(t, err)
	assert.True(t, production)
	assert.Equal(t, []string{envFile}, cfg.Transform.EnvFiles)
}
