package user

// Role is the authorization level carried in the access token claims.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// CanResolveCorrections reports whether the role may approve or reject
// correction requests and read org-wide attendance data.
func CanResolveCorrections(r Role) bool {
	return r == RoleManager || r == RoleAdmin
}
