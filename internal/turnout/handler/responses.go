package handler

// TotalResponse is the GET /turnouts/total body.
type TotalResponse struct {
	TotalVoters int64 `json:"total_voters"`
}
