package models

// -----------------------------------------------------------------------------
// Server State Structure
// -----------------------------------------------------------------------------

const (
	PayloadInitial = "INITIAL"
	PayloadUpdate  = "UPDATE"
	PayloadCountry = "COUNTRY"
	PayloadError   = "ERROR"
)

// MLatestData is what the API serves and pushes to websocket clients.
type MLatestData struct {
	Type      string        `json:"type"`
	Summary   MSummary      `json:"summary"`
	Rows      []MCountryRow `json:"rows"`
	Timestamp int64         `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// Client messages
// -----------------------------------------------------------------------------

type MClientCommand struct {
	Command string `json:"command"`
	Country string `json:"country"`
}

type MCountryPayload struct {
	Type    string    `json:"type"`
	Country *MCountry `json:"country,omitempty"`
	Dates   []string  `json:"dates,omitempty"`
	Error   string    `json:"error,omitempty"`
}
