package model

import "time"

// Lab is a lab section needing staffing, owned by a single semester.
type Lab struct {
	ID               int         `json:"id"`
	SemesterID       int         `json:"semester_id"`
	CourseID         string      `json:"course_id"`
	ClassName        string      `json:"class_name"`
	Subject          string      `json:"subject"`
	CatalogID        string      `json:"catalog_id"`
	Section          string      `json:"section"`
	Days             DaySet      `json:"days"`
	StartTime        MinuteOfDay `json:"start_time"`
	EndTime          MinuteOfDay `json:"end_time"`
	FacilityID       string      `json:"facility_id,omitempty"`
	FacilityBuilding string      `json:"facility_building,omitempty"`
	Instructor       string      `json:"instructor,omitempty"`
	// AssignedTAID and Staffed form the live roster written by propagation,
	// distinct from any template schedule's draft assignments.
	AssignedTAID *int      `json:"assigned_ta_id,omitempty"`
	Staffed      bool      `json:"staffed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateLabRequest is the payload for adding a lab to a semester.
type CreateLabRequest struct {
	CourseID         string      `json:"course_id" binding:"required,min=1,max=10"`
	ClassName        string      `json:"class_name" binding:"required,min=1,max=50"`
	Subject          string      `json:"subject" binding:"required,min=1,max=10"`
	CatalogID        string      `json:"catalog_id" binding:"required,min=1,max=10"`
	Section          string      `json:"section" binding:"required,min=1,max=10"`
	Days             []string    `json:"days" binding:"required,min=1,dive,oneof=MON TUE WED THU FRI SAT SUN"`
	StartTime        MinuteOfDay `json:"start_time"`
	EndTime          MinuteOfDay `json:"end_time" binding:"gtfield=StartTime"`
	FacilityID       string      `json:"facility_id" binding:"omitempty,max=20"`
	FacilityBuilding string      `json:"facility_building" binding:"omitempty,max=50"`
	Instructor       string      `json:"instructor" binding:"omitempty,max=50"`
}

// UpdateLabRequest is the payload for editing a lab. Uniqueness of the course
// ID within the semester and time ordering are re-validated on every edit.
type UpdateLabRequest struct {
	CourseID         string      `json:"course_id" binding:"omitempty,min=1,max=10"`
	ClassName        string      `json:"class_name" binding:"omitempty,min=1,max=50"`
	Subject          string      `json:"subject" binding:"omitempty,min=1,max=10"`
	CatalogID        string      `json:"catalog_id" binding:"omitempty,min=1,max=10"`
	Section          string      `json:"section" binding:"omitempty,min=1,max=10"`
	Days             []string    `json:"days" binding:"omitempty,min=1,dive,oneof=MON TUE WED THU FRI SAT SUN"`
	StartTime        *MinuteOfDay `json:"start_time" binding:"omitempty"`
	EndTime          *MinuteOfDay `json:"end_time" binding:"omitempty"`
	FacilityID       *string     `json:"facility_id" binding:"omitempty,max=20"`
	FacilityBuilding *string     `json:"facility_building" binding:"omitempty,max=50"`
	Instructor       *string     `json:"instructor" binding:"omitempty,max=50"`
}
