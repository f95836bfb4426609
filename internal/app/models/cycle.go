package models

// Cycle represents a school-year period grouping courses. At most one cycle
// is active at a time.
type Cycle struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Active bool   `json:"active" db:"active"`
}
