package models

// Role constants for User.Role. Admins are the staff recipients of
// order-creation notifications.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents an account in the system.
// It maps to the `users` table in SQLite.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Role     string `db:"role" json:"role"`
}

// IsAdmin reports whether the user belongs to staff.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
