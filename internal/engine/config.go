package engine

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

const (
	MaxPlayers        = 16
	MaxPicksPerPlayer = 50
	MaxRequiredRoles  = MaxPicksPerPlayer
)

// Config describes one draft run. It is validated and normalized once when
// the engine is built and never changes afterwards.
type Config struct {
	NumPlayers int
	// PicksPerPlayer excludes the optional leader and ship picks.
	PicksPerPlayer int
	// RequiredRoleIDs is ordered; a role listed twice must be filled twice.
	RequiredRoleIDs []int
	DraftLeader     bool
	DraftShip       bool
	PlayerNames     []string
	TargetSourceIDs []int
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var err error
	if c.NumPlayers < 1 || c.NumPlayers > MaxPlayers {
		err = multierr.Append(err, fmt.Errorf("num players must be between 1 and %d, got %d", MaxPlayers, c.NumPlayers))
	}
	if c.PicksPerPlayer < 1 || c.PicksPerPlayer > MaxPicksPerPlayer {
		err = multierr.Append(err, fmt.Errorf("picks per player must be between 1 and %d, got %d", MaxPicksPerPlayer, c.PicksPerPlayer))
	}
	if len(c.RequiredRoleIDs) > MaxRequiredRoles {
		err = multierr.Append(err, fmt.Errorf("at most %d required roles, got %d", MaxRequiredRoles, len(c.RequiredRoleIDs)))
	}
	for i, id := range c.RequiredRoleIDs {
		if id <= 0 {
			err = multierr.Append(err, fmt.Errorf("required role at position %d has invalid id %d", i, id))
		}
	}
	if c.NumPlayers >= 1 && c.NumPlayers <= MaxPlayers && len(c.PlayerNames) > c.NumPlayers {
		err = multierr.Append(err, fmt.Errorf("got %d player names for %d players", len(c.PlayerNames), c.NumPlayers))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Normalize returns a copy with owned slices and a name for every player.
// Missing or blank names become "Player N".
func (c Config) Normalize() Config {
	out := c
	out.RequiredRoleIDs = append([]int(nil), c.RequiredRoleIDs...)
	out.TargetSourceIDs = append([]int(nil), c.TargetSourceIDs...)
	out.PlayerNames = make([]string, c.NumPlayers)
	for i := range out.PlayerNames {
		name := ""
		if i < len(c.PlayerNames) {
			name = strings.TrimSpace(c.PlayerNames[i])
		}
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		out.PlayerNames[i] = name
	}
	return out
}
