package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleTeacher RoleType = "teacher"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// AttendanceStatus is the daily attendance mark for a student.
type AttendanceStatus string

const (
	StatusPresent   AttendanceStatus = "present"
	StatusLate      AttendanceStatus = "late"
	StatusAbsent    AttendanceStatus = "absent"
	StatusExcused   AttendanceStatus = "excused"
	StatusSuspended AttendanceStatus = "suspended"
)

// Valid reports whether the status is one of the known statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusExcused, StatusSuspended:
		return true
	}
	return false
}

// LateAbsenceWeight is how much a late arrival counts towards the absence
// score. Three lates add up to most of a full absence.
const LateAbsenceWeight = 0.25
