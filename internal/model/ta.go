package model

import "time"

// TAYear enumerates a TA's academic standing.
type TAYear string

const (
	YearFreshman  TAYear = "FR"
	YearSophomore TAYear = "SO"
	YearJunior    TAYear = "JR"
	YearSenior    TAYear = "SR"
	YearGraduate  TAYear = "GR"
)

// Experience is one (subject, catalog number) course a TA has taught or taken.
type Experience struct {
	Subject   string `json:"subject"`
	CatalogID string `json:"catalog_id"`
}

// UnavailableSlot is a weekly interval during which a TA cannot teach,
// tagged with the weekdays it applies to.
type UnavailableSlot struct {
	ID        int         `json:"id"`
	Days      DaySet      `json:"days"`
	StartTime MinuteOfDay `json:"start_time"`
	EndTime   MinuteOfDay `json:"end_time"`
}

// Holds flags a TA profile that needs attention before scheduling.
type Holds struct {
	IncompleteProfile  bool `json:"incomplete_profile"`
	UpdateAvailability bool `json:"update_availability"`
	UpdateExperience   bool `json:"update_experience"`
}

// TA is a person eligible for lab assignment.
type TA struct {
	ID            int               `json:"id"`
	FirstName     string            `json:"first_name"`
	LastName      string            `json:"last_name"`
	StudentID     string            `json:"student_id"`
	Year          TAYear            `json:"year"`
	Contracted    bool              `json:"contracted"`
	Experience    []Experience      `json:"experience"`
	Unavailable   []UnavailableSlot `json:"unavailable"`
	SemesterIDs   []int             `json:"semester_ids"`
	Holds         Holds             `json:"holds"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// DisplayName returns the TA's name with a graduate marker, e.g. "GTA Jane Doe".
func (t *TA) DisplayName() string {
	prefix := "TA "
	if t.Year == YearGraduate {
		prefix = "GTA "
	}
	return prefix + t.FirstName + " " + t.LastName
}

// EligibleFor reports whether the TA is assigned to the given semester.
func (t *TA) EligibleFor(semesterID int) bool {
	for _, id := range t.SemesterIDs {
		if id == semesterID {
			return true
		}
	}
	return false
}

// ─── Request payloads ───────────────────────────────────────────────

// CreateTARequest is the payload for onboarding a TA.
type CreateTARequest struct {
	FirstName  string `json:"first_name" binding:"required,min=1,max=50"`
	LastName   string `json:"last_name" binding:"required,min=1,max=50"`
	StudentID  string `json:"student_id" binding:"required,min=1,max=50"`
	Year       string `json:"year" binding:"required,oneof=FR SO JR SR GR"`
	Contracted bool   `json:"contracted"`
}

// UpdateTARequest is the payload for editing a TA's basic fields.
type UpdateTARequest struct {
	FirstName  string `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName   string `json:"last_name" binding:"omitempty,min=1,max=50"`
	Year       string `json:"year" binding:"omitempty,oneof=FR SO JR SR GR"`
	Contracted *bool  `json:"contracted" binding:"omitempty"`
}

// UnavailableSlotRequest is one weekly unavailable interval in a replace-all update.
type UnavailableSlotRequest struct {
	Days      []string    `json:"days" binding:"required,min=1,dive,oneof=MON TUE WED THU FRI SAT SUN"`
	StartTime MinuteOfDay `json:"start_time"`
	EndTime   MinuteOfDay `json:"end_time" binding:"gtfield=StartTime"`
}

// UpdateAvailabilityRequest replaces a TA's full unavailability set.
type UpdateAvailabilityRequest struct {
	Slots []UnavailableSlotRequest `json:"slots" binding:"dive"`
}

// ExperienceRequest is one course experience tuple in a replace-all update.
type ExperienceRequest struct {
	Subject   string `json:"subject" binding:"required,min=1,max=10"`
	CatalogID string `json:"catalog_id" binding:"required,min=1,max=10"`
}

// UpdateExperienceRequest replaces a TA's full experience set.
type UpdateExperienceRequest struct {
	Courses []ExperienceRequest `json:"courses" binding:"dive"`
}

// UpdateEligibilityRequest replaces the set of semesters a TA may be scheduled in.
type UpdateEligibilityRequest struct {
	SemesterIDs []int `json:"semester_ids" binding:"required"`
}
