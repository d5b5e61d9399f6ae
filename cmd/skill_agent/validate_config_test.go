package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	valid := writeTempFile(t, "config.yaml", `top_k: 5
sources:
  - name: nightly
    kind: file
    path: postings.json
`)
	badKind := writeTempFile(t, "bad.yaml", `sources:
  - name: feed
    kind: ftp
`)
	badTaxonomy := writeTempFile(t, "taxonomy.yaml", "version: broken\nskills: []\nstop_words: 7\n")

	tests := []struct {
		name        string
		args        []string
		wantError   bool
		outContains string
	}{
		{"Embedded defaults", []string{"validate-config"}, false, "2026.10-default"},
		{"Valid config", []string{"validate-config", "--config", valid}, false, "Config OK"},
		{"Unknown source kind", []string{"validate-config", "--config", badKind}, true, "unknown kind"},
		{"Missing file", []string{"validate-config", "--config", "/nonexistent/config.yaml"}, true, "failed to read config file"},
		{"Malformed taxonomy", []string{"validate-config", "--taxonomy", badTaxonomy}, true, "taxonomy.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := command(binaryPath, tt.args...).CombinedOutput()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err, "command failed: %s", string(output))
			}
			assert.Contains(t, string(output), tt.outContains)
		})
	}
}
