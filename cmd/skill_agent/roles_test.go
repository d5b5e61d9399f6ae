package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

func TestRolesCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := command(binaryPath, "roles").CombinedOutput()
	require.NoError(t, err, "command failed: %s", string(output))
	assert.Contains(t, string(output), "Data Scientist")

	output, err = command(binaryPath, "roles", "data scientist", "--json").Output()
	require.NoError(t, err)

	var role types.RoleProfile
	require.NoError(t, json.Unmarshal(output, &role))
	assert.Equal(t, "Data Scientist", role.Name)
	assert.Contains(t, role.RequiredSkills, "Python")

	output, err = command(binaryPath, "roles", "Astronaut").CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown role")
}

func TestRolesCommand_CustomFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := writeTempFile(t, "roles.yaml", `roles:
  - name: Platform Engineer
    required_skills: [Go, Kubernetes]
`)

	output, err := command(binaryPath, "roles", "--roles", path).CombinedOutput()
	require.NoError(t, err, "command failed: %s", string(output))
	assert.Equal(t, "Platform Engineer\n", string(output))
}
