package users

// GuestName is the username of the ephemeral guest identity.
const GuestName = "guest"

// Identity is who a session acts as.
type Identity struct {
	Username string
	Role     Role
}

// Guest returns the ephemeral guest identity.
func Guest() Identity {
	return Identity{Username: GuestName, Role: RoleGuest}
}

// Persisted reports whether statistics for this identity are written to
// the repository. Guests and the zero Identity are never persisted.
func (id Identity) Persisted() bool {
	return id.Username != "" && id.Role != RoleGuest
}

// IsGuest reports whether id is the guest identity.
func (id Identity) IsGuest() bool {
	return id.Role == RoleGuest
}

// Identity returns the session identity of u.
func (u User) Identity() Identity {
	return Identity{Username: u.Username, Role: u.Role}
}
