package engine

import (
	"slices"

	"github.com/DoyleJ11/crew-draft-backend/internal/entity"
)

type PoolName string

const (
	PoolLeader       PoolName = "leader"
	PoolShip         PoolName = "ship"
	PoolRequiredRole PoolName = "required_role"
	PoolMain         PoolName = "main"
)

// PoolManager owns the candidate pools of one draft.
//
// A crew member is in at most one of leader/main. The required-role pool is
// the subset of main holding any required role and shrinks whenever main
// does. Ships are a separate id space and never interact with crew pools.
// No pool ever holds a duplicate id or an id already drafted.
type PoolManager struct {
	leaders  []*entity.Crew
	main     []*entity.Crew
	required []*entity.Crew
	ships    []*entity.Ship

	drafted entity.IDSet
}

// NewPoolManager partitions crew into leader and main pools, derives the
// required-role pool and shuffles the ship pool once. Repeated ids keep
// their first occurrence.
func NewPoolManager(crew []*entity.Crew, ships []*entity.Ship, requiredRoleIDs []int, sampler Sampler) *PoolManager {
	pm := &PoolManager{drafted: entity.IDSet{}}
	required := entity.NewIDSet(requiredRoleIDs...)

	seen := entity.IDSet{}
	for _, c := range crew {
		if c == nil || seen.Has(c.ID()) {
			continue
		}
		seen.Add(c.ID())

		if c.IsLeader() {
			pm.leaders = append(pm.leaders, c)
			continue
		}
		pm.main = append(pm.main, c)
		if c.SharesRole(required) {
			pm.required = append(pm.required, c)
		}
	}

	seenShips := entity.IDSet{}
	for _, s := range ships {
		if s == nil || seenShips.Has(s.ID()) {
			continue
		}
		seenShips.Add(s.ID())
		pm.ships = append(pm.ships, s)
	}
	pm.ships = shuffled(sampler, pm.ships)

	return pm
}

// ApplyExclusions removes the drafted crew member and everyone it excludes
// from the leader, main and required-role pools, and records it as drafted.
// Exclusions are trusted to be symmetric in the catalog; nothing is
// symmetrized here.
func (pm *PoolManager) ApplyExclusions(drafted *entity.Crew) {
	gone := drafted.Exclusions()
	gone.Add(drafted.ID())

	keep := func(c *entity.Crew) bool { return !gone.Has(c.ID()) }
	pm.leaders = filterCrew(pm.leaders, keep)
	pm.main = filterCrew(pm.main, keep)
	pm.required = filterCrew(pm.required, keep)

	pm.drafted.Add(drafted.ID())
}

// RemoveDrafted removes one entity from the named pool without touching
// exclusions. Removing from main also removes from the required-role pool.
func (pm *PoolManager) RemoveDrafted(d entity.Draftable, name PoolName) {
	id := d.ID()
	notID := func(c *entity.Crew) bool { return c.ID() != id }

	switch name {
	case PoolLeader:
		pm.leaders = filterCrew(pm.leaders, notID)
	case PoolMain:
		pm.main = filterCrew(pm.main, notID)
		pm.required = filterCrew(pm.required, notID)
	case PoolRequiredRole:
		pm.required = filterCrew(pm.required, notID)
	case PoolShip:
		pm.ships = slices.DeleteFunc(pm.ships, func(s *entity.Ship) bool { return s.ID() == id })
	}
}

// TakeShip pops the next ship off the pre-shuffled ship pool.
func (pm *PoolManager) TakeShip() (*entity.Ship, bool) {
	if len(pm.ships) == 0 {
		return nil, false
	}
	s := pm.ships[0]
	pm.RemoveDrafted(s, PoolShip)
	return s, true
}

func (pm *PoolManager) IsDrafted(crewID int) bool {
	return pm.drafted.Has(crewID)
}

// Len returns the number of candidates left in the named pool.
func (pm *PoolManager) Len(name PoolName) int {
	switch name {
	case PoolLeader:
		return len(pm.leaders)
	case PoolMain:
		return len(pm.main)
	case PoolRequiredRole:
		return len(pm.required)
	case PoolShip:
		return len(pm.ships)
	}
	return 0
}

// IDs returns the ids in the named pool, in pool order.
func (pm *PoolManager) IDs(name PoolName) []int {
	var out []int
	switch name {
	case PoolShip:
		for _, s := range pm.ships {
			out = append(out, s.ID())
		}
		return out
	case PoolLeader:
		return crewIDs(pm.leaders)
	case PoolMain:
		return crewIDs(pm.main)
	case PoolRequiredRole:
		return crewIDs(pm.required)
	}
	return out
}

// Contains reports whether any crew pool still holds the id.
func (pm *PoolManager) Contains(crewID int) bool {
	for _, pool := range [][]*entity.Crew{pm.leaders, pm.main, pm.required} {
		for _, c := range pool {
			if c.ID() == crewID {
				return true
			}
		}
	}
	return false
}

func crewIDs(pool []*entity.Crew) []int {
	out := make([]int, 0, len(pool))
	for _, c := range pool {
		out = append(out, c.ID())
	}
	return out
}
