package entity

// RoleName is the closed set of role identifiers.
type RoleName string

const (
	RoleUser  RoleName = "USER"
	RoleAdmin RoleName = "ADMIN"
)

// Role is reference data: looked up and assigned, never created by
// application logic. Many-to-many with User via user_roles.
type Role struct {
	ID   int64
	Name RoleName
}
