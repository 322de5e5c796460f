package draft

import (
	"github.com/DoyleJ11/crew-draft-backend/internal/engine"
	"github.com/DoyleJ11/crew-draft-backend/internal/entity"
	"github.com/DoyleJ11/crew-draft-backend/internal/types"
)

// Assemble turns an engine result into the response served to clients.
func Assemble(draftID string, res engine.Result) types.DraftResponse {
	out := types.DraftResponse{
		DraftID: draftID,
		Teams:   make([]types.TeamView, 0, len(res.Teams)),
	}
	for _, team := range res.Teams {
		tv := types.TeamView{
			PlayerName:   team.PlayerName,
			Crew:         make([]types.CrewView, 0, len(team.Members)),
			FallbackNote: team.FallbackNote,
		}
		if team.Leader != nil {
			v := crewView(team.Leader)
			tv.Leader = &v
		}
		if team.Ship != nil {
			v := shipView(team.Ship)
			tv.Ship = &v
		}
		for _, m := range team.Members {
			tv.Crew = append(tv.Crew, crewView(m))
		}
		out.Teams = append(out.Teams, tv)
	}
	return out
}

// PickViews converts the event log into stream entries. The completion
// event is left out; it is sent as its own message.
func PickViews(events []engine.Event, playerNames []string) []types.PickView {
	out := make([]types.PickView, 0, len(events))
	for _, evt := range events {
		if evt.Type == engine.EvtDraftCompleted {
			continue
		}
		pv := types.PickView{
			Type:       string(evt.Type),
			Pick:       evt.Pick,
			Player:     evt.Player,
			Category:   string(evt.Category),
			EntityID:   evt.EntityID,
			EntityName: evt.EntityName,
			RoleID:     evt.RoleID,
			Note:       evt.Note,
		}
		if evt.Player >= 0 && evt.Player < len(playerNames) {
			pv.PlayerName = playerNames[evt.Player]
		}
		out = append(out, pv)
	}
	return out
}

func crewView(c *entity.Crew) types.CrewView {
	rec := c.Record()
	v := types.CrewView{
		ID:         c.ID(),
		Name:       c.Name(),
		Roles:      make([]types.RoleView, 0),
		Leader:     c.IsLeader(),
		SourceID:   c.SourceID(),
		SourceName: rec.SourceName,
		PlanetName: rec.PlanetName,
		ImageURL:   rec.ImageURL,
	}
	for _, r := range c.Roles() {
		v.Roles = append(v.Roles, types.RoleView{ID: r.ID, Name: r.Name})
	}
	return v
}

func shipView(s *entity.Ship) types.ShipView {
	rec := s.Record()
	img := rec.ImageFullURL
	if img == "" {
		img = rec.ImageURL
	}
	return types.ShipView{
		ID:         s.ID(),
		Name:       s.Name(),
		SourceID:   s.SourceID(),
		SourceName: rec.SourceName,
		ImageURL:   img,
	}
}
