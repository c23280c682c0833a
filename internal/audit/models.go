package audit

import "time"

// Action is the kind of turnout change an entry records.
type Action string

const (
	// ActionCreate is the first count entered for a station.
	ActionCreate Action = "create"
	// ActionUpdate replaces an existing count.
	ActionUpdate Action = "update"
)

// Entry is an immutable fact about a turnout change. Entries are append-only
// and never mutated or deleted; they exist for traceability, not for
// reconstructing current state.
type Entry struct {
	ID            int64     `json:"id"`
	StationID     int64     `json:"station_id"`
	Action        Action    `json:"action"`
	PreviousValue *int      `json:"previous_value,omitempty"` // absent for create
	NewValue      int       `json:"new_value"`
	CreatedAt     time.Time `json:"created_at"`
}
