package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	var f presetFlags
	fs := pflag.NewFlagSet("draft", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadRequest_FlagDefaults(t *testing.T) {
	req, err := loadRequest("", newFlagSet(t))
	require.NoError(t, err)

	assert.Equal(t, 2, *req.NumPlayers)
	assert.Equal(t, 5, *req.NumCrewNeeded)
	assert.Empty(t, req.RequiredRoleIDs)
	assert.False(t, req.DraftLeader)
}

func TestLoadRequest_PresetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	preset := `num_players: 3
num_crew_needed: 4
required_role_ids: [2, 2, 7]
target_source_ids: [1, 3]
draft_leader: true
player_names: [Mal, Inara]
`
	require.NoError(t, os.WriteFile(path, []byte(preset), 0o600))

	req, err := loadRequest(path, newFlagSet(t, "--ship"))
	require.NoError(t, err)

	assert.Equal(t, 3, *req.NumPlayers)
	assert.Equal(t, 4, *req.NumCrewNeeded)
	assert.Equal(t, []int{2, 2, 7}, req.RequiredRoleIDs)
	assert.Equal(t, []int{1, 3}, req.TargetSourceIDs)
	assert.True(t, req.DraftLeader)
	assert.True(t, req.DraftShip)
	assert.Equal(t, []string{"Mal", "Inara"}, req.PlayerNames)
}

func TestLoadRequest_FlagOverridesPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"num_players": 4}`), 0o600))

	req, err := loadRequest(path, newFlagSet(t, "--num-players", "2"))
	require.NoError(t, err)
	assert.Equal(t, 2, *req.NumPlayers)
}

func TestLoadRequest_MissingPreset(t *testing.T) {
	_, err := loadRequest(filepath.Join(t.TempDir(), "nope.yaml"), newFlagSet(t))
	require.Error(t, err)
}
