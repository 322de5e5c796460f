// Package entity holds the typed, immutable snapshots of catalog records that
// the draft engine works with.
package entity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRecord = errors.New("invalid catalog record")

type Kind string

const (
	KindCrew   Kind = "crew"
	KindLeader Kind = "leader"
	KindShip   Kind = "ship"
)

// Draftable is anything a player can end up owning after a draft.
type Draftable interface {
	ID() int
	Name() string
	Kind() Kind
	Exclusions() IDSet
}

// Crew is a crew member. Leaders are crew with the leader flag set; they are
// drafted from their own pool but otherwise behave like any crew member.
type Crew struct {
	id         int
	name       string
	sourceID   int
	leader     bool
	roles      []Role
	roleIDs    IDSet
	exclusions IDSet
	record     CrewRecord
}

// NewCrew validates a catalog record and builds the typed entity. Roles with
// a non-positive id are ignored; malformed exclusion entries were already
// dropped while decoding (see IDList.Dropped).
func NewCrew(rec CrewRecord) (*Crew, error) {
	if rec.ID <= 0 {
		return nil, fmt.Errorf("%w: crew id %d", ErrInvalidRecord, rec.ID)
	}

	c := &Crew{
		id:         int(rec.ID),
		name:       strings.TrimSpace(rec.Name),
		sourceID:   int(rec.SourceID),
		leader:     bool(rec.Leader),
		roleIDs:    IDSet{},
		exclusions: NewIDSet(rec.Exclusions.IDs...),
		record:     rec,
	}
	for _, r := range rec.Roles {
		if r.ID <= 0 || c.roleIDs.Has(r.ID) {
			continue
		}
		c.roleIDs.Add(r.ID)
		c.roles = append(c.roles, r)
	}
	return c, nil
}

func (c *Crew) ID() int        { return c.id }
func (c *Crew) Name() string   { return c.name }
func (c *Crew) SourceID() int  { return c.sourceID }
func (c *Crew) IsLeader() bool { return c.leader }

func (c *Crew) Kind() Kind {
	if c.leader {
		return KindLeader
	}
	return KindCrew
}

func (c *Crew) HasRole(roleID int) bool {
	return c.roleIDs.Has(roleID)
}

// RoleIDs returns a copy of the crew member's role ids.
func (c *Crew) RoleIDs() IDSet {
	return c.roleIDs.Clone()
}

// SharesRole reports whether any of the crew member's roles is in roles.
func (c *Crew) SharesRole(roles IDSet) bool {
	return c.roleIDs.Intersects(roles)
}

func (c *Crew) Roles() []Role {
	return append([]Role(nil), c.roles...)
}

// Exclusions returns a copy of the ids this crew member cannot share a
// draft with.
func (c *Crew) Exclusions() IDSet {
	return c.exclusions.Clone()
}

// Record returns the catalog record the entity was built from, for
// presentation fields the engine does not interpret.
func (c *Crew) Record() CrewRecord {
	return c.record
}

// Ship is a ship. Ships carry no roles or exclusions.
type Ship struct {
	id       int
	name     string
	sourceID int
	record   ShipRecord
}

func NewShip(rec ShipRecord) (*Ship, error) {
	if rec.ID <= 0 {
		return nil, fmt.Errorf("%w: ship id %d", ErrInvalidRecord, rec.ID)
	}
	return &Ship{
		id:       int(rec.ID),
		name:     strings.TrimSpace(rec.Name),
		sourceID: int(rec.SourceID),
		record:   rec,
	}, nil
}

func (s *Ship) ID() int            { return s.id }
func (s *Ship) Name() string       { return s.name }
func (s *Ship) SourceID() int      { return s.sourceID }
func (s *Ship) Kind() Kind         { return KindShip }
func (s *Ship) Exclusions() IDSet  { return IDSet{} }
func (s *Ship) Record() ShipRecord { return s.record }

// Source is a selectable catalog source.
type Source struct {
	ID         int
	Name       string
	Exclusions IDSet
}

func NewSource(rec SourceRecord) (*Source, error) {
	if rec.ID <= 0 {
		return nil, fmt.Errorf("%w: source id %d", ErrInvalidRecord, rec.ID)
	}
	return &Source{
		ID:         int(rec.ID),
		Name:       strings.TrimSpace(rec.Name),
		Exclusions: NewIDSet(rec.Exclusions.IDs...),
	}, nil
}

var (
	_ Draftable = (*Crew)(nil)
	_ Draftable = (*Ship)(nil)
)
