package domain

import "time"

// SpotNotification is pushed over the websocket feed whenever a spot
// changes hands, so occupancy boards stay live without polling.
type SpotNotification struct {
	EventID   string     `json:"event_id"`
	SpotID    string     `json:"spot_id"`
	Status    SpotStatus `json:"status"`
	Plate     string     `json:"plate,omitempty"`
	TicketNo  string     `json:"ticket_no,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
