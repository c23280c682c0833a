package staff

import "time"

// Member is a staff roster entry. The roster exists for record keeping and
// future tooling; no request path consults it for authorization.
type Member struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoleStaff is the default role for seeded members.
const RoleStaff = "staff"
