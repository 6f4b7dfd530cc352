package shared

// RestaurantRole is the role a user holds inside one restaurant
type RestaurantRole string

const (
	RoleOwner   RestaurantRole = "owner"
	RoleManager RestaurantRole = "manager"
	RoleStaff   RestaurantRole = "staff"
)

// Valid reports whether r is one of the roles the platform accepts.
func (r RestaurantRole) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleStaff:
		return true
	}
	return false
}

// FormFlag encodes a boolean the way the remote form handler expects it.
func FormFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
