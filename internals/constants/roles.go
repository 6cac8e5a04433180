package constants

import "fmt"

const (
	RoleVolunteer   = "volunteer"
	RoleCoordinator = "coordinator"
	RoleAdmin       = "admin"
	RoleOwner       = "owner"
)

// Template pesan error role
const (
	ErrOnlyCoordinatorsCanAccess = "Hanya coordinator, admin, atau owner yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess       = "Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorCoordinator(feature string) string {
	return fmt.Sprintf(ErrOnlyCoordinatorsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleVolunteer,
		RoleCoordinator,
		RoleAdmin,
		RoleOwner,
	}

	CoordinatorAndAbove = []string{
		RoleCoordinator,
		RoleAdmin,
		RoleOwner,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
	}
)
