package model

// Role is the access level the server assigns to an account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
)

// User mirrors the server's user resource. The password never reaches
// the client; only the issued token does.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// IsStaff reports whether the user may enter the back office.
func (u User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// AuthSession is the client's copy of an authenticated session: the
// bearer token plus the user it belongs to.
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
