package farmacia

// Role is the user's role as encoded in the token's rol claim.
type Role string

const (
	// RoleUsuario is a regular staff account (i.e. view)
	RoleUsuario Role = "usuario"
	// RoleAdmin is an admin account (i.e. view, create, edit, delete, manage users)
	RoleAdmin Role = "admin"
)

// Resource names match the remote API collections they gate.
const (
	ResourceMedications = "medicamentos"
	ResourceOrders      = "ordencompras"
	ResourceUsers       = "usuarios"
)

// viewPolicy and mutatePolicy hold the minimum role per resource. The user
// directory is admin-only even for reads; everything else is readable by any
// authenticated account and mutable by admins. This gate is a UX convenience,
// the server enforces the real boundary.
var viewPolicy = map[string]Role{
	ResourceMedications: RoleUsuario,
	ResourceOrders:      RoleUsuario,
	ResourceUsers:       RoleAdmin,
}

var mutatePolicy = map[string]Role{
	ResourceMedications: RoleAdmin,
	ResourceOrders:      RoleAdmin,
	ResourceUsers:       RoleAdmin,
}

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUsuario, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin checks if this role is the admin role
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanView checks if this role can list a specific resource
func (r Role) CanView(resource string) bool {
	min, ok := viewPolicy[resource]
	if !ok {
		return false
	}
	return r.IsAtLeast(min)
}

// CanMutate checks if this role can create, edit, or delete a specific resource
func (r Role) CanMutate(resource string) bool {
	min, ok := mutatePolicy[resource]
	if !ok {
		return false
	}
	return r.IsAtLeast(min)
}

// IsAtLeast checks if this role meets the minimum required level
func (r Role) IsAtLeast(minRole Role) bool {
	roleHierarchy := map[Role]int{
		RoleUsuario: 0,
		RoleAdmin:   1,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []Role {
	return []Role{
		RoleUsuario,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
