package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/DoyleJ11/crew-draft-backend/internal/draft"
	"github.com/DoyleJ11/crew-draft-backend/internal/types"
)

// presetFlags mirror the preset keys. Flags set on the command line win
// over the preset file.
type presetFlags struct {
	numPlayers    int
	numCrewNeeded int
	requiredRoles []int
	sources       []int
	leader        bool
	ship          bool
	players       []string
}

func (f *presetFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.numPlayers, "num-players", draft.DefaultNumPlayers, "number of players")
	fs.IntVar(&f.numCrewNeeded, "num-crew-needed", draft.DefaultNumCrewNeeded, "crew picks per player, excluding leader and ship")
	fs.IntSliceVar(&f.requiredRoles, "required-roles", nil, "required role ids, repeat an id to require it twice")
	fs.IntSliceVar(&f.sources, "sources", nil, "source ids to draft from (default DEFAULT_SOURCE_IDS)")
	fs.BoolVar(&f.leader, "leader", false, "draft a leader for each player")
	fs.BoolVar(&f.ship, "ship", false, "draft a ship for each player")
	fs.StringSliceVar(&f.players, "players", nil, "player names")
}

var presetKeys = map[string]string{
	"num_players":       "num-players",
	"num_crew_needed":   "num-crew-needed",
	"required_role_ids": "required-roles",
	"target_source_ids": "sources",
	"draft_leader":      "leader",
	"draft_ship":        "ship",
	"player_names":      "players",
}

// loadRequest builds a draft request from an optional preset file and the
// command's flags.
func loadRequest(path string, fs *pflag.FlagSet) (types.DraftRequest, error) {
	v := viper.New()
	for key, flag := range presetKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return types.DraftRequest{}, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return types.DraftRequest{}, fmt.Errorf("read preset: %w", err)
		}
	}

	numPlayers := v.GetInt("num_players")
	numCrew := v.GetInt("num_crew_needed")
	return types.DraftRequest{
		NumPlayers:      &numPlayers,
		NumCrewNeeded:   &numCrew,
		RequiredRoleIDs: v.GetIntSlice("required_role_ids"),
		TargetSourceIDs: v.GetIntSlice("target_source_ids"),
		DraftLeader:     v.GetBool("draft_leader"),
		DraftShip:       v.GetBool("draft_ship"),
		PlayerNames:     v.GetStringSlice("player_names"),
	}, nil
}
