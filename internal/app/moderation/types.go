package moderation

// PlayerInfo is a read-only dump of a player record for the identity
// endpoint.
type PlayerInfo struct {
	Identity      string `json:"identity"`
	LastName      string `json:"last_name"`
	Mode          string `json:"mode"`
	Language      string `json:"language"`
	Reason        string `json:"reason"`
	Note          string `json:"note,omitempty"`
	CooldownSince int64  `json:"cooldown_since"`
	WasBanned     bool   `json:"was_banned"`
}
