package models

import "time"

// Attendance is one mark for one student on one date. The
// (student_id, date) pair is unique; marking twice overwrites the status.
type Attendance struct {
	ID        int64            `json:"id" db:"id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	Date      time.Time        `json:"date" db:"date"`
	Status    AttendanceStatus `json:"status" db:"status"`
}

// StudentStatus is a (student, status) row used by report aggregation.
type StudentStatus struct {
	StudentID int64            `json:"studentId"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceEntry is one row of the export feed: a student's mark on a date,
// ordered by student then date.
type AttendanceEntry struct {
	StudentID   int64            `json:"studentId"`
	StudentName string           `json:"studentName"`
	Date        time.Time        `json:"date"`
	Status      AttendanceStatus `json:"status"`
}
