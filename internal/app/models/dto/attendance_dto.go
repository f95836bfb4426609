package dto

// MarkAttendanceRequest is the payload for marking one student on one date.
// Date is yyyy-mm-dd.
type MarkAttendanceRequest struct {
	StudentID int64  `json:"studentId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=present late absent excused suspended"`
}
