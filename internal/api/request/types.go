package request

// PlayerRequest is the body for creating or editing a player.
// An empty color on create picks a random dark color.
type PlayerRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TeamSizeRequest is the body for PUT /roster/team-size
type TeamSizeRequest struct {
	TeamSize int `json:"team_size"`
}
