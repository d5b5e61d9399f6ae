package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the skill_agent binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "skill_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// command builds a CLI invocation isolated from any database, cache or model
// configured in the developer's environment.
func command(binaryPath string, args ...string) *exec.Cmd {
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "DATABASE_URL=", "REDIS_ADDR=", "GEMINI_API_KEY=")
	return cmd
}
