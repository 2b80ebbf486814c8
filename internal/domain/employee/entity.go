package employee

import "time"

// Employee is the read model the engine needs for resolution and payroll.
// Profile management lives in the HR application; the engine only reads
// the keys that drive scheduling, quota, and rate lookups.
type Employee struct {
	ID            string
	FullName      string
	EmployeeCode  string
	PositionID    string
	WorkUnitID    *string
	SeniorityTier string
	HireDate      time.Time
	Active        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
