package domain

type StaffRole string

const (
	RoleAdmin        StaffRole = "admin"
	RoleManager      StaffRole = "manager"
	RoleFrontDesk    StaffRole = "front_desk"
	RoleHousekeeping StaffRole = "housekeeping"
)

// Staff is a local dashboard account. Only used when entities come from the local database.
type Staff struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         StaffRole `json:"role"`
	Department   string    `json:"department,omitempty"`
	IsActive     bool      `json:"is_active"`
}
