package model

import (
	"time"

	"github.com/google/uuid"
)

// TemplateAssignment binds one TA to one lab within a single template
// schedule. A lab appears in at most one assignment per schedule.
type TemplateAssignment struct {
	ID         int64     `json:"id"`
	ScheduleID uuid.UUID `json:"schedule_id"`
	LabID      int       `json:"lab_id"`
	TAID       int       `json:"ta_id"`
}

// TemplateSchedule is a versioned draft assignment set for one semester.
// Version numbers are unique per semester and start at 0; the highest
// version is the current working schedule.
type TemplateSchedule struct {
	ID         uuid.UUID `json:"id"`
	SemesterID int       `json:"semester_id"`
	Version    int       `json:"version"`
	// PriorityBonus is the resolved bonus baked into every score of this
	// schedule's book at generation time. Single-TA score refreshes reuse
	// it so recomputed rows stay on the same baseline as the rest.
	PriorityBonus int                  `json:"priority_bonus"`
	Assignments   []TemplateAssignment `json:"assignments"`
	CreatedAt     time.Time            `json:"created_at"`
}

// Assign binds the TA to the lab, first removing any existing assignment for
// that lab. Assign is unassign-then-create, never additive.
func (s *TemplateSchedule) Assign(taID, labID int) *TemplateAssignment {
	s.Unassign(labID)
	s.Assignments = append(s.Assignments, TemplateAssignment{
		ScheduleID: s.ID,
		LabID:      labID,
		TAID:       taID,
	})
	return &s.Assignments[len(s.Assignments)-1]
}

// Unassign removes the assignment for the lab if one exists and reports
// whether anything was removed.
func (s *TemplateSchedule) Unassign(labID int) bool {
	for i := range s.Assignments {
		if s.Assignments[i].LabID == labID {
			s.Assignments = append(s.Assignments[:i], s.Assignments[i+1:]...)
			return true
		}
	}
	return false
}

// AssignmentByLab returns the assignment holding the given lab, or nil.
func (s *TemplateSchedule) AssignmentByLab(labID int) *TemplateAssignment {
	for i := range s.Assignments {
		if s.Assignments[i].LabID == labID {
			return &s.Assignments[i]
		}
	}
	return nil
}

// AssignmentByTA returns the first assignment held by the given TA, or nil.
func (s *TemplateSchedule) AssignmentByTA(taID int) *TemplateAssignment {
	for i := range s.Assignments {
		if s.Assignments[i].TAID == taID {
			return &s.Assignments[i]
		}
	}
	return nil
}

// HasAssignments reports whether the schedule holds at least one assignment.
// Used as the precondition gate before propagation.
func (s *TemplateSchedule) HasAssignments() bool {
	return len(s.Assignments) > 0
}

// SwapAssignments exchanges the TA fields of two assignment records in
// place, leaving each assignment bound to its original lab. This is the
// core switch primitive and is its own inverse.
func SwapAssignments(a, b *TemplateAssignment) {
	a.TAID, b.TAID = b.TAID, a.TAID
}

// ScoreBook holds compatibility scores for one schedule key, indexed as
// taID -> labID -> score. A pair absent from the book has no score, which
// is distinct from a score of zero.
type ScoreBook map[int]map[int]int

// Set records the score for a (TA, lab) pair, overwriting any prior value.
func (b ScoreBook) Set(taID, labID, score int) {
	row, ok := b[taID]
	if !ok {
		row = make(map[int]int)
		b[taID] = row
	}
	row[labID] = score
}

// Get returns the score for a (TA, lab) pair and whether one was recorded.
func (b ScoreBook) Get(taID, labID int) (int, bool) {
	score, ok := b[taID][labID]
	return score, ok
}

// HasTA reports whether any score is recorded for the TA in this book.
func (b ScoreBook) HasTA(taID int) bool {
	return len(b[taID]) > 0
}
