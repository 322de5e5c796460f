// Package types holds the JSON shapes exchanged with HTTP and websocket
// clients.
package types

// DraftRequest is the draft form. Pointer fields distinguish "absent" from
// zero so defaults can be applied.
type DraftRequest struct {
	NumPlayers      *int     `json:"num_players,omitempty"`
	NumCrewNeeded   *int     `json:"num_crew_needed,omitempty"`
	RequiredRoleIDs []int    `json:"required_role_ids,omitempty"`
	TargetSourceIDs []int    `json:"target_source_ids,omitempty"`
	DraftLeader     bool     `json:"draft_leader"`
	DraftShip       bool     `json:"draft_ship"`
	PlayerNames     []string `json:"player_names,omitempty"`
}

type RoleView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CrewView struct {
	ID         int        `json:"id"`
	Name       string     `json:"crew_name"`
	Roles      []RoleView `json:"roles"`
	Leader     bool       `json:"leader"`
	SourceID   int        `json:"source_id"`
	SourceName string     `json:"source_name,omitempty"`
	PlanetName string     `json:"planet_name,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
}

type ShipView struct {
	ID         int    `json:"id"`
	Name       string `json:"ship_name"`
	SourceID   int    `json:"source_id"`
	SourceName string `json:"source_name,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

type SourceView struct {
	ID         int    `json:"source_id"`
	Name       string `json:"source_name"`
	Exclusions []int  `json:"exclusions"`
}

// TeamView is one player's final team. Crew excludes the leader.
type TeamView struct {
	PlayerName   string     `json:"player_name"`
	Leader       *CrewView  `json:"leader"`
	Ship         *ShipView  `json:"ship"`
	Crew         []CrewView `json:"crew"`
	FallbackNote string     `json:"fallback_note,omitempty"`
}

type DraftResponse struct {
	DraftID string     `json:"draft_id"`
	Teams   []TeamView `json:"teams"`
}

// PickView is one entry of the websocket pick stream.
type PickView struct {
	Type       string `json:"event"`
	Pick       int    `json:"pick"`
	Player     int    `json:"player"`
	PlayerName string `json:"player_name,omitempty"`
	Category   string `json:"category,omitempty"`
	EntityID   int    `json:"entity_id,omitempty"`
	EntityName string `json:"entity_name,omitempty"`
	RoleID     int    `json:"role_id,omitempty"`
	Note       string `json:"note,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

const (
	MsgPick           = "Pick"
	MsgDraftCompleted = "DraftCompleted"
	MsgError          = "Error"
)

type ServerMessage struct {
	Type   string         `json:"type"` // "Pick" | "DraftCompleted" | "Error"
	Pick   *PickView      `json:"pick,omitempty"`
	Result *DraftResponse `json:"result,omitempty"`
	Error  *ErrorBody     `json:"error,omitempty"`
}
