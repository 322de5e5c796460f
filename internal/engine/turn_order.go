package engine

// TurnStep is one slot of the pick table.
type TurnStep struct {
	Pick   int
	Round  int
	Player int
}

// Category is the kind of pick a player makes on a turn.
type Category string

const (
	CategoryShip         Category = "ship"
	CategoryLeader       Category = "leader"
	CategoryRequiredRole Category = "required_role"
	CategoryGeneral      Category = "general"
	CategoryFallback     Category = "fallback"
)

// CategoryOrder is the priority in which a turn is resolved. The fallback
// category only runs after the pick table is exhausted.
var CategoryOrder = []Category{
	CategoryShip,
	CategoryLeader,
	CategoryRequiredRole,
	CategoryGeneral,
}

// SnakeIndex maps a zero-based pick number to a player. Even rounds run
// 0..n-1, odd rounds run n-1..0.
func SnakeIndex(pick, numPlayers int) int {
	if numPlayers <= 0 {
		return 0
	}
	round := pick / numPlayers
	indexInRound := pick % numPlayers
	if round%2 == 0 {
		return indexInRound
	}
	return numPlayers - 1 - indexInRound
}

// TotalPicks is the length of the pick table, counting the optional leader
// and ship pick once per player.
func TotalPicks(cfg Config) int {
	perPlayer := cfg.PicksPerPlayer
	if cfg.DraftLeader {
		perPlayer++
	}
	if cfg.DraftShip {
		perPlayer++
	}
	return cfg.NumPlayers * perPlayer
}

// Schedule materializes the whole pick table.
func Schedule(cfg Config) []TurnStep {
	if cfg.NumPlayers <= 0 {
		return nil
	}
	total := TotalPicks(cfg)
	steps := make([]TurnStep, 0, total)
	for pick := 0; pick < total; pick++ {
		steps = append(steps, TurnStep{
			Pick:   pick,
			Round:  pick / cfg.NumPlayers,
			Player: SnakeIndex(pick, cfg.NumPlayers),
		})
	}
	return steps
}

// categoriesFor lists the categories worth attempting for player on this
// turn, in priority order. Ship and leader are dropped once the player has
// one or the pool is empty; required role is dropped once every required
// slot is filled. A listed category can still come up empty, in which case
// the engine falls through to the next one.
func categoriesFor(cfg Config, st *DraftState, player int) []Category {
	out := make([]Category, 0, len(CategoryOrder))
	for _, cat := range CategoryOrder {
		switch cat {
		case CategoryShip:
			if !cfg.DraftShip || st.shipDrafted[player] || st.pools.Len(PoolShip) == 0 {
				continue
			}
		case CategoryLeader:
			if !cfg.DraftLeader || st.leaderDrafted[player] || st.pools.Len(PoolLeader) == 0 {
				continue
			}
		case CategoryRequiredRole:
			if !st.hasUnfilledSlot(player) {
				continue
			}
		}
		out = append(out, cat)
	}
	return out
}
