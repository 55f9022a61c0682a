package users

// Role is the role label the remote service reports for a user. Clients only
// use it to decide what to show; the service authorizes privileged calls.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// AdminUsername is the account the legacy pages treated as an administrator
// when the login response carried no role.
const AdminUsername = "admin"

// User is the logged-in account as returned by the login endpoint.
type User struct {
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Role     Role   `json:"role,omitempty" yaml:"role,omitempty"`
}

// IsAdmin reports whether the user's role is admin.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
