package types

// ValidateCardPINRequest is the body a door controller POSTs to
// /validate-cardpin before acting on a swipe.
type ValidateCardPINRequest struct {
	CardNumber string `json:"card_number"`
	PIN        string `json:"pin"`
}

// ValidateCardPINResponse carries the minimal identity tuple for an
// authorized credential. The PIN is never echoed back.
type ValidateCardPINResponse struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	CardNumber string `json:"card_number"`
}

// LogAccessRequest is the body a controller POSTs to /log-access to report
// a door interaction. access_type is the controller's own classification
// ("granted", "denied", a swipe-direction code) and is recorded as supplied.
type LogAccessRequest struct {
	CardNumber string `json:"card_number"`
	PIN        string `json:"pin"`
	DoorID     string `json:"door_id"`
	AccessType string `json:"access_type"`
	Notes      string `json:"notes,omitempty"`
}

type LogAccessResponse struct {
	Success bool `json:"success"`
}
