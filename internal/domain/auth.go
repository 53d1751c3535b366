package domain

// Access levels assigned to users.
const (
	AccessPublic = "public"
	AccessAdmin  = "admin"
)

// ValidAccess reports whether access is a level the service hands out.
func ValidAccess(access string) bool {
	switch access {
	case AccessPublic, AccessAdmin:
		return true
	default:
		return false
	}
}
