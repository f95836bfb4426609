package models

// Course belongs to a cycle and owns students and requirements.
type Course struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	CycleID int64  `json:"cycleId" db:"cycle_id"`
}
