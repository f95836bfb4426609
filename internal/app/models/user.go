package models

// User defines an application account based on the 'users' table.
// Password holds the bcrypt hash, never the plain text.
type User struct {
	ID       int64    `json:"id" db:"id"`
	Username string   `json:"username" db:"username"`
	Password string   `json:"-" db:"password"`
	Role     RoleType `json:"role" db:"role"`
}
