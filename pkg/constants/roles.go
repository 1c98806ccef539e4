package constants

const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleTechnician = "technician"
	RoleEmployee   = "employee"
)

// DefaultRole назначается при самостоятельной регистрации.
const DefaultRole = RoleEmployee

var AllRoles = []string{RoleAdmin, RoleManager, RoleTechnician, RoleEmployee}

func IsValidRole(role string) bool {
	return contains(AllRoles, role)
}
