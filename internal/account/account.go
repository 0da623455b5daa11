package account

// Role controls access to the administration surface.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account represents a registered user of the tracker.
type Account struct {
	ID       int64
	Email    string
	Password string
	Name     string
	Role     Role
}
