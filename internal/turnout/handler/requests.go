package handler

// UpdateTurnoutRequest is the PUT /stations/{id}/turnout body. VoterCount is
// a pointer so an absent field is distinguishable from an explicit zero;
// fractional values fail JSON decoding before validation runs.
type UpdateTurnoutRequest struct {
	VoterCount *int   `json:"voter_count"`
	UpdatedBy  string `json:"updated_by,omitempty"`
}
