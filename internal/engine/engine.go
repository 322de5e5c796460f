// Package engine implements the crew draft: pool partitioning, snake-order
// turns, exclusion propagation and required-role fulfillment with a
// fallback pass. A run is synchronous and self-contained; nothing survives
// between runs.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/DoyleJ11/crew-draft-backend/internal/entity"
)

var ErrInvalidConfig = errors.New("invalid draft configuration")
var ErrAlreadyRun = errors.New("draft already run")
var ErrNotComplete = errors.New("draft not complete")

type Phase string

const (
	PhaseInitialized Phase = "initialized"
	PhaseRunning     Phase = "running"
	PhaseFallback    Phase = "fallback"
	PhaseComplete    Phase = "complete"
)

type EventType string

const (
	EvtShipDrafted     EventType = "ShipDrafted"
	EvtLeaderDrafted   EventType = "LeaderDrafted"
	EvtCrewDrafted     EventType = "CrewDrafted"
	EvtPickSkipped     EventType = "PickSkipped"
	EvtFallbackDrafted EventType = "FallbackDrafted"
	EvtRoleUnfilled    EventType = "RoleUnfilled"
	EvtDraftCompleted  EventType = "DraftCompleted"
)

// Event records one change to the draft. Fallback and completion events
// carry Pick -1.
type Event struct {
	Type       EventType
	Pick       int
	Player     int
	Category   Category
	EntityID   int
	EntityName string
	RoleID     int
	Note       string
}

// Team is what one player has drafted so far. Members is in draft order and
// includes the leader.
type Team struct {
	PlayerName   string
	Members      []*entity.Crew
	Leader       *entity.Crew
	Ship         *entity.Ship
	FallbackNote string
}

// TeamResult is the final, read-only view of a team.
type TeamResult struct {
	PlayerName string
	// Members excludes the leader.
	Members      []*entity.Crew
	Leader       *entity.Crew
	Ship         *entity.Ship
	FallbackNote string
}

type Result struct {
	Teams []TeamResult
}

// DraftState is everything one run mutates.
type DraftState struct {
	pools         *PoolManager
	teams         []*Team
	leaderDrafted []bool
	shipDrafted   []bool
	// requiredFilled is indexed [player][slot], slot being the position in
	// Config.RequiredRoleIDs.
	requiredFilled [][]bool
	teamRoles      []entity.IDSet
	teamMembers    []entity.IDSet
}

func newDraftState(cfg Config, pools *PoolManager) *DraftState {
	st := &DraftState{
		pools:          pools,
		teams:          make([]*Team, cfg.NumPlayers),
		leaderDrafted:  make([]bool, cfg.NumPlayers),
		shipDrafted:    make([]bool, cfg.NumPlayers),
		requiredFilled: make([][]bool, cfg.NumPlayers),
		teamRoles:      make([]entity.IDSet, cfg.NumPlayers),
		teamMembers:    make([]entity.IDSet, cfg.NumPlayers),
	}
	for i := range cfg.NumPlayers {
		st.teams[i] = &Team{PlayerName: cfg.PlayerNames[i]}
		st.requiredFilled[i] = make([]bool, len(cfg.RequiredRoleIDs))
		st.teamRoles[i] = entity.IDSet{}
		st.teamMembers[i] = entity.IDSet{}
	}
	return st
}

func (st *DraftState) hasUnfilledSlot(player int) bool {
	for _, filled := range st.requiredFilled[player] {
		if !filled {
			return true
		}
	}
	return false
}

func (st *DraftState) addMember(player int, c *entity.Crew) {
	team := st.teams[player]
	team.Members = append(team.Members, c)
	st.teamMembers[player].Add(c.ID())
	for id := range c.RoleIDs() {
		st.teamRoles[player].Add(id)
	}
}

// Engine runs one draft. Build it with New, call Run once, then read Result.
type Engine struct {
	cfg       Config
	sampler   Sampler
	logger    *zap.Logger
	roleNames map[int]string

	phase  Phase
	state  *DraftState
	events []Event
}

type Option func(*Engine)

// WithSampler replaces the default runtime-seeded sampler.
func WithSampler(s Sampler) Option {
	return func(e *Engine) { e.sampler = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRoleNames supplies display names for fallback notes. Names found on
// crew records are used for any role missing here.
func WithRoleNames(names map[int]string) Option {
	return func(e *Engine) {
		for id, name := range names {
			if strings.TrimSpace(name) != "" {
				e.roleNames[id] = name
			}
		}
	}
}

// New validates cfg and builds the pools from a catalog snapshot. Crew and
// ships must already have source exclusions applied.
func New(cfg Config, crew []*entity.Crew, ships []*entity.Ship, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg.Normalize(),
		logger:    zap.NewNop(),
		roleNames: map[int]string{},
		phase:     PhaseInitialized,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sampler == nil {
		e.sampler = NewSampler()
	}
	for _, c := range crew {
		if c == nil {
			continue
		}
		for _, r := range c.Roles() {
			if _, ok := e.roleNames[r.ID]; !ok && r.Name != "" {
				e.roleNames[r.ID] = r.Name
			}
		}
	}

	if !e.cfg.DraftShip {
		ships = nil
	}
	pools := NewPoolManager(crew, ships, e.cfg.RequiredRoleIDs, e.sampler)
	e.state = newDraftState(e.cfg, pools)
	return e, nil
}

func (e *Engine) Phase() Phase { return e.phase }

func (e *Engine) Config() Config { return e.cfg }

// Run executes the whole pick table and the fallback pass.
func (e *Engine) Run() error {
	if e.phase != PhaseInitialized {
		return ErrAlreadyRun
	}
	e.phase = PhaseRunning

	total := TotalPicks(e.cfg)
	for pick := 0; pick < total; pick++ {
		player := SnakeIndex(pick, e.cfg.NumPlayers)
		if !e.draftTurn(pick, player) {
			e.logger.Debug("pick skipped, no eligible candidate",
				zap.Int("pick", pick),
				zap.Int("player", player),
			)
			e.record(Event{Type: EvtPickSkipped, Pick: pick, Player: player, Category: CategoryGeneral})
		}
	}

	e.phase = PhaseFallback
	e.fallbackPass()

	e.phase = PhaseComplete
	e.record(Event{Type: EvtDraftCompleted, Pick: -1, Player: -1})
	e.logger.Debug("draft complete",
		zap.Int("picks", total),
		zap.Int("drafted", e.state.pools.drafted.Len()),
	)
	return nil
}

func (e *Engine) draftTurn(pick, player int) bool {
	for _, cat := range categoriesFor(e.cfg, e.state, player) {
		var ok bool
		switch cat {
		case CategoryShip:
			ok = e.draftShip(pick, player)
		case CategoryLeader:
			ok = e.draftLeader(pick, player)
		case CategoryRequiredRole:
			ok = e.draftRequiredRole(pick, player)
		case CategoryGeneral:
			ok = e.draftGeneral(pick, player)
		}
		if ok {
			return true
		}
	}
	return false
}

func (e *Engine) draftShip(pick, player int) bool {
	ship, ok := e.state.pools.TakeShip()
	if !ok {
		return false
	}
	e.state.teams[player].Ship = ship
	e.state.shipDrafted[player] = true
	e.record(Event{
		Type:       EvtShipDrafted,
		Pick:       pick,
		Player:     player,
		Category:   CategoryShip,
		EntityID:   ship.ID(),
		EntityName: ship.Name(),
	})
	return true
}

func (e *Engine) draftLeader(pick, player int) bool {
	pools := e.state.pools
	if len(pools.leaders) == 0 {
		return false
	}
	leader := chooseOne(e.sampler, pools.leaders)

	e.state.addMember(player, leader)
	e.state.teams[player].Leader = leader
	e.state.leaderDrafted[player] = true
	pools.ApplyExclusions(leader)

	e.record(Event{
		Type:       EvtLeaderDrafted,
		Pick:       pick,
		Player:     player,
		Category:   CategoryLeader,
		EntityID:   leader.ID(),
		EntityName: leader.Name(),
	})
	return true
}

// draftRequiredRole fills the first unfilled required slot that has a
// candidate. Required-role picks ignore the shared-role rule but never take
// someone already on the player's team.
func (e *Engine) draftRequiredRole(pick, player int) bool {
	st := e.state
	for slot, roleID := range e.cfg.RequiredRoleIDs {
		if st.requiredFilled[player][slot] {
			continue
		}
		candidates := filterCrew(st.pools.required, func(c *entity.Crew) bool {
			return c.HasRole(roleID) &&
				!st.pools.IsDrafted(c.ID()) &&
				!st.teamMembers[player].Has(c.ID())
		})
		if len(candidates) == 0 {
			continue
		}
		picked := chooseOne(e.sampler, candidates)

		st.addMember(player, picked)
		st.requiredFilled[player][slot] = true
		st.pools.ApplyExclusions(picked)

		e.record(Event{
			Type:       EvtCrewDrafted,
			Pick:       pick,
			Player:     player,
			Category:   CategoryRequiredRole,
			EntityID:   picked.ID(),
			EntityName: picked.Name(),
			RoleID:     roleID,
		})
		return true
	}
	return false
}

// draftGeneral picks from the main pool among candidates sharing no role
// with anyone already on the team.
func (e *Engine) draftGeneral(pick, player int) bool {
	candidates := e.generalCandidates(player)
	if len(candidates) == 0 {
		return false
	}
	picked := chooseOne(e.sampler, candidates)

	e.state.addMember(player, picked)
	e.state.pools.ApplyExclusions(picked)

	e.record(Event{
		Type:       EvtCrewDrafted,
		Pick:       pick,
		Player:     player,
		Category:   CategoryGeneral,
		EntityID:   picked.ID(),
		EntityName: picked.Name(),
	})
	return true
}

func (e *Engine) generalCandidates(player int) []*entity.Crew {
	st := e.state
	return filterCrew(st.pools.main, func(c *entity.Crew) bool {
		return !st.pools.IsDrafted(c.ID()) &&
			!st.teamMembers[player].Has(c.ID()) &&
			!c.SharesRole(st.teamRoles[player])
	})
}

// fallbackPass makes one attempt per unfilled required slot, per player, to
// add a crew member that shares no role with the team. Slots that stay empty
// are reported by role name in the team's fallback note.
func (e *Engine) fallbackPass() {
	st := e.state
	for player, team := range st.teams {
		var unfilled []string
		for slot, roleID := range e.cfg.RequiredRoleIDs {
			if st.requiredFilled[player][slot] {
				continue
			}

			snapshot := filterCrew(st.pools.main, func(c *entity.Crew) bool {
				return !st.pools.IsDrafted(c.ID())
			})
			var found *entity.Crew
			for _, c := range shuffled(e.sampler, snapshot) {
				if !c.SharesRole(st.teamRoles[player]) {
					found = c
					break
				}
			}

			if found == nil {
				name := e.roleName(roleID)
				unfilled = append(unfilled, name)
				e.logger.Debug("required role left unfilled",
					zap.String("player", team.PlayerName),
					zap.Int("role_id", roleID),
				)
				e.record(Event{
					Type:     EvtRoleUnfilled,
					Pick:     -1,
					Player:   player,
					Category: CategoryFallback,
					RoleID:   roleID,
					Note:     name,
				})
				continue
			}

			st.addMember(player, found)
			st.pools.ApplyExclusions(found)
			st.requiredFilled[player][slot] = true
			e.record(Event{
				Type:       EvtFallbackDrafted,
				Pick:       -1,
				Player:     player,
				Category:   CategoryFallback,
				EntityID:   found.ID(),
				EntityName: found.Name(),
				RoleID:     roleID,
			})
		}
		team.FallbackNote = strings.Join(unfilled, ", ")
	}
}

func (e *Engine) roleName(roleID int) string {
	if name, ok := e.roleNames[roleID]; ok {
		return name
	}
	return fmt.Sprintf("Role ID %d", roleID)
}

func (e *Engine) record(evt Event) {
	e.events = append(e.events, evt)
}

// Events returns a copy of the event log.
func (e *Engine) Events() []Event {
	return append([]Event(nil), e.events...)
}

// Result returns the final teams. It is only available once Run has
// completed, and every call returns an independent copy.
func (e *Engine) Result() (Result, error) {
	if e.phase != PhaseComplete {
		return Result{}, fmt.Errorf("%w: phase %s", ErrNotComplete, e.phase)
	}

	res := Result{Teams: make([]TeamResult, 0, len(e.state.teams))}
	for _, team := range e.state.teams {
		tr := TeamResult{
			PlayerName:   team.PlayerName,
			Members:      make([]*entity.Crew, 0, len(team.Members)),
			Leader:       team.Leader,
			Ship:         team.Ship,
			FallbackNote: team.FallbackNote,
		}
		for _, m := range team.Members {
			if team.Leader != nil && m.ID() == team.Leader.ID() {
				continue
			}
			tr.Members = append(tr.Members, m)
		}
		res.Teams = append(res.Teams, tr)
	}
	return res, nil
}

// RoleFilled reports whether every required slot for roleID is filled for
// the player.
func (e *Engine) RoleFilled(player, roleID int) bool {
	for slot, id := range e.cfg.RequiredRoleIDs {
		if id == roleID && !e.state.requiredFilled[player][slot] {
			return false
		}
	}
	return true
}

// Pools exposes the pool manager for inspection.
func (e *Engine) Pools() *PoolManager { return e.state.pools }
