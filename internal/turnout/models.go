package turnout

import "time"

// Record is one observation of a station's voter count. Multiple records may
// exist historically per station; the current value is the one the resolver
// selects.
type Record struct {
	ID         int64      `json:"id"`
	StationID  int64      `json:"station_id"`
	VoterCount int        `json:"voter_count"`
	UpdatedBy  string     `json:"updated_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// EffectiveTime is the timestamp the resolver orders records by: the
// last-modified time when set, otherwise the creation time. An absent
// timestamp sorts as the earliest possible instant.
func (r *Record) EffectiveTime() time.Time {
	if r.UpdatedAt != nil {
		return *r.UpdatedAt
	}
	return r.CreatedAt
}

// Current is the resolved turnout for a station. UpdatedAt is nil for the
// synthesized zero default of a station that has never been counted.
type Current struct {
	StationID  int64      `json:"station_id"`
	VoterCount int        `json:"voter_count"`
	UpdatedBy  string     `json:"updated_by,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// Current converts a stored record into its resolved view.
func (r *Record) Current() Current {
	cur := Current{
		StationID:  r.StationID,
		VoterCount: r.VoterCount,
		UpdatedBy:  r.UpdatedBy,
	}
	if t := r.EffectiveTime(); !t.IsZero() {
		cp := t
		cur.UpdatedAt = &cp
	}
	return cur
}

// ZeroCurrent synthesizes the default value for a station with no records.
func ZeroCurrent(stationID int64) Current {
	return Current{StationID: stationID, VoterCount: 0}
}
