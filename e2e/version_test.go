package e2e

import (
	"fmt"
	"strings"
	"testing"
)

func TestVersionFlagOutputsInjectedVersion(t *testing.T) {
	t.Parallel()

	injectedVersion := "e2e-smoke"
	ldflags := fmt.Sprintf("-X github.com/getlawrence/hooklog/cmd.Version=%s", injectedVersion)
	repoRoot, binaryPath := buildCLIBinary(t, ldflags)

	for _, args := range [][]string{{"--version"}, {"version"}} {
		out, err := runCLI(t, binaryPath, repoRoot, nil, args...)
		if err != nil {
			t.Fatalf("running %v failed: %v\n%s", args, err, out)
		}
		if !strings.Contains(out, injectedVersion) {
			t.Fatalf("expected %v output to contain %q, got: %q", args, injectedVersion, out)
		}
	}
}
