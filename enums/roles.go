package enums

type Role string

const (
	RoleStudent  Role = "student"
	RoleMentor   Role = "mentor"
	RoleAyudante Role = "ayudante"
	RoleAdmin    Role = "admin"
)

// Known reports whether r is one of the roles the dashboards render.
// The server may send others; they are kept as-is.
func (r Role) Known() bool {
	switch r {
	case RoleStudent, RoleMentor, RoleAyudante, RoleAdmin:
		return true
	}
	return false
}
