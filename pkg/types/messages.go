package types

// Client -> Server (websocket /ws)
// DraftRequest (one message per connection):
//   num_players: number          // default 2
//   num_crew_needed: number      // default 5, excludes leader and ship
//   required_role_ids: number[]  // duplicates mean the role is needed twice
//   target_source_ids: number[]  // default from DEFAULT_SOURCE_IDS
//   draft_leader: boolean
//   draft_ship: boolean
//   player_names: string[]       // blank or missing names become "Player N"

// Server -> Client
// Pick (one per engine event, in draft order):
//   pick: { event, pick, player, player_name, category, entity_id, entity_name, role_id, note }
//   event: "ShipDrafted" | "LeaderDrafted" | "CrewDrafted" | "PickSkipped" |
//          "FallbackDrafted" | "RoleUnfilled"
//   pick is -1 for fallback events.
//
// DraftCompleted (last message, connection then closes):
//   result: { draft_id, teams: [{ player_name, leader, ship, crew[], fallback_note }] }
//
// Error (last message, connection then closes):
//   error: { code, message }
