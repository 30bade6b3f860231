package types

// CreateControllerKeyRequest is the admin body for issuing a new key.
type CreateControllerKeyRequest struct {
	ControllerName string `json:"controller_name"`
}

// ControllerKey is the wire form of a controller API key record. APIKey is
// populated on creation and when listing; the secret is what identifies the
// controller, so the admin surface is the only place it is ever returned.
type ControllerKey struct {
	ID             string `json:"id"`
	ControllerName string `json:"controller_name"`
	APIKey         string `json:"api_key"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
	RevokedAt      string `json:"revoked_at,omitempty"`
	LastSeenAt     string `json:"last_seen_at,omitempty"`
}

// AccessLogEntry is the wire form of one audit row.
type AccessLogEntry struct {
	ID           int64  `json:"id"`
	CardNumber   string `json:"card_number"`
	PINUsed      string `json:"pin_used"`
	DoorID       string `json:"door_id"`
	AccessType   string `json:"access_type"`
	ControllerID string `json:"controller_id"`
	Notes        string `json:"notes,omitempty"`
	Timestamp    string `json:"timestamp"`
}
