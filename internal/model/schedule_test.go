package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestAssignIsReplace(t *testing.T) {
	s := &TemplateSchedule{ID: uuid.New()}
	s.Assign(1, 10)
	s.Assign(2, 10)

	count := 0
	for _, a := range s.Assignments {
		if a.LabID == 10 {
			count++
			if a.TAID != 2 {
				t.Errorf("lab 10 bound to TA %d, want 2", a.TAID)
			}
		}
	}
	if count != 1 {
		t.Errorf("lab 10 has %d assignments, want exactly 1", count)
	}
}

func TestUnassign(t *testing.T) {
	s := &TemplateSchedule{ID: uuid.New()}
	s.Assign(1, 10)

	if !s.Unassign(10) {
		t.Error("Unassign of existing binding returned false")
	}
	if s.Unassign(10) {
		t.Error("Unassign of empty lab returned true")
	}
	if s.HasAssignments() {
		t.Error("schedule should be empty after unassign")
	}
}

func TestSwapIsInvolution(t *testing.T) {
	s := &TemplateSchedule{ID: uuid.New()}
	a := s.Assign(1, 10)
	b := s.Assign(2, 11)

	SwapAssignments(a, b)
	if a.TAID != 2 || b.TAID != 1 {
		t.Fatalf("after swap: a.TAID=%d b.TAID=%d, want 2 and 1", a.TAID, b.TAID)
	}
	if a.LabID != 10 || b.LabID != 11 {
		t.Fatalf("swap moved labs: a.LabID=%d b.LabID=%d", a.LabID, b.LabID)
	}

	SwapAssignments(a, b)
	if a.TAID != 1 || b.TAID != 2 {
		t.Errorf("double swap did not restore: a.TAID=%d b.TAID=%d", a.TAID, b.TAID)
	}
}

func TestAssignmentLookups(t *testing.T) {
	s := &TemplateSchedule{ID: uuid.New()}
	s.Assign(1, 10)
	s.Assign(2, 11)

	if got := s.AssignmentByLab(11); got == nil || got.TAID != 2 {
		t.Errorf("AssignmentByLab(11) = %v, want TA 2", got)
	}
	if got := s.AssignmentByLab(99); got != nil {
		t.Errorf("AssignmentByLab(99) = %v, want nil", got)
	}
	if got := s.AssignmentByTA(1); got == nil || got.LabID != 10 {
		t.Errorf("AssignmentByTA(1) = %v, want lab 10", got)
	}
	if got := s.AssignmentByTA(99); got != nil {
		t.Errorf("AssignmentByTA(99) = %v, want nil", got)
	}
}

func TestScoreBookAbsentIsNotZero(t *testing.T) {
	book := make(ScoreBook)
	book.Set(1, 10, 0)

	if _, ok := book.Get(1, 10); !ok {
		t.Error("recorded zero score reported as absent")
	}
	if _, ok := book.Get(1, 11); ok {
		t.Error("absent pair reported as scored")
	}
	if !book.HasTA(1) || book.HasTA(2) {
		t.Error("HasTA mismatch")
	}
}
