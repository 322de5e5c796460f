package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/crew-draft-backend/internal/engine"
	"github.com/DoyleJ11/crew-draft-backend/internal/entity"
)

func TestAssemble(t *testing.T) {
	leader, err := entity.NewCrew(entity.CrewRecord{ID: 1, Name: "Mal", Leader: true, PlanetName: "Shadow"})
	require.NoError(t, err)
	member, err := entity.NewCrew(entity.CrewRecord{ID: 2, Name: "Zoe", Roles: []entity.Role{{ID: 2, Name: "Soldier"}}})
	require.NoError(t, err)
	ship, err := entity.NewShip(entity.ShipRecord{ID: 7, Name: "Serenity", ImageURL: "s.png", ImageFullURL: "http://img/s.png"})
	require.NoError(t, err)

	resp := Assemble("ABC", engine.Result{Teams: []engine.TeamResult{
		{PlayerName: "P1", Leader: leader, Ship: ship, Members: []*entity.Crew{member}, FallbackNote: "Pilot"},
		{PlayerName: "P2"},
	}})

	assert.Equal(t, "ABC", resp.DraftID)
	require.Len(t, resp.Teams, 2)

	first := resp.Teams[0]
	require.NotNil(t, first.Leader)
	assert.Equal(t, "Shadow", first.Leader.PlanetName)
	assert.True(t, first.Leader.Leader)
	assert.Equal(t, "http://img/s.png", first.Ship.ImageURL)
	require.Len(t, first.Crew, 1)
	assert.Equal(t, "Soldier", first.Crew[0].Roles[0].Name)
	assert.Equal(t, "Pilot", first.FallbackNote)

	second := resp.Teams[1]
	assert.Nil(t, second.Leader)
	assert.Nil(t, second.Ship)
	assert.NotNil(t, second.Crew)
	assert.Empty(t, second.Crew)
}

func TestPickViews(t *testing.T) {
	events := []engine.Event{
		{Type: engine.EvtLeaderDrafted, Pick: 0, Player: 0, Category: engine.CategoryLeader, EntityID: 1, EntityName: "Mal"},
		{Type: engine.EvtRoleUnfilled, Pick: -1, Player: 1, Category: engine.CategoryFallback, RoleID: 3, Note: "Pilot"},
		{Type: engine.EvtDraftCompleted, Pick: -1, Player: -1},
	}

	views := PickViews(events, []string{"Mal's crew", "Badger's crew"})

	require.Len(t, views, 2)
	assert.Equal(t, "LeaderDrafted", views[0].Type)
	assert.Equal(t, "Mal's crew", views[0].PlayerName)
	assert.Equal(t, "Badger's crew", views[1].PlayerName)
	assert.Equal(t, "Pilot", views[1].Note)
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	assert.Len(t, code, codeLength)
	for _, r := range code {
		assert.Contains(t, codeCharset, string(r))
	}
}
