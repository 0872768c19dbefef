package domain

import "time"

// RoleCode is a stable role identifier carried in access tokens and checked
// by the authorization service.
type RoleCode string

const (
	RoleAdmin   RoleCode = "ADMIN"
	RoleManager RoleCode = "MANAGER"
	RoleViewer  RoleCode = "VIEWER"
)

// Role is a read-mostly entity. Roles are seeded via migrations and never
// mutated by this system's commands.
type Role struct {
	ID          RoleID
	Code        RoleCode
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
