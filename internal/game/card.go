package game

// Card is one influence in a player's hand
type Card struct {
	Role     Role `json:"role"`
	Revealed bool `json:"revealed"`
}
