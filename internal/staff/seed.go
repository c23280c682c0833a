package staff

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SeedMember describes one roster entry to create at bootstrap.
type SeedMember struct {
	Name     string
	Username string
	Password string
	Role     string
}

// Seed creates the given members if the roster is empty. It is a no-op when
// any member already exists, so restarts do not duplicate the roster.
// Passwords are stored as bcrypt hashes only.
func Seed(ctx context.Context, store Store, members []SeedMember) (bool, error) {
	count, err := store.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("counting staff members: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, sm := range members {
		hash, err := bcrypt.GenerateFromPassword([]byte(sm.Password), bcrypt.DefaultCost)
		if err != nil {
			return false, fmt.Errorf("hashing password for %q: %w", sm.Username, err)
		}
		role := sm.Role
		if role == "" {
			role = RoleStaff
		}
		m := &Member{
			Name:         sm.Name,
			Username:     sm.Username,
			PasswordHash: string(hash),
			Role:         role,
		}
		if err := store.Create(ctx, m); err != nil {
			return false, fmt.Errorf("creating staff member %q: %w", sm.Username, err)
		}
	}
	return true, nil
}
