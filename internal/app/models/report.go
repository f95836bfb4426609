package models

// AttendanceStats aggregates one student's marks. AbsenceScore weights a late
// arrival as a quarter of an absence; excused marks never count towards it.
type AttendanceStats struct {
	Present      int     `json:"present"`
	Late         int     `json:"late"`
	Absent       int     `json:"absent"`
	Excused      int     `json:"excused"`
	Suspended    int     `json:"suspended"`
	Total        int     `json:"total"`
	AbsenceScore float64 `json:"absenceScore"`
	AbsencePct   float64 `json:"absencePct"`
}

// StudentReport is one row of the per-course attendance report.
type StudentReport struct {
	StudentID     int64           `json:"studentId"`
	Name          string          `json:"name"`
	NationalID    string          `json:"nationalId"`
	GuardianName  string          `json:"guardianName"`
	GuardianPhone string          `json:"guardianPhone"`
	Notes         string          `json:"notes"`
	Stats         AttendanceStats `json:"stats"`
}
