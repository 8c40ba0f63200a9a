package models

// User roles
const (
	RoleAdmin  = "admin"  // Full access
	RoleEditor = "editor" // May edit the song catalogue
	RoleUser   = "user"   // Reads the catalogue, owns playlists
)

// CanEditCatalogue reports whether a role may create or change songs and songbooks
func CanEditCatalogue(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor:
		return true
	default:
		return false
	}
}
