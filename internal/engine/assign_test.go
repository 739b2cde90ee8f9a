package engine

import (
	"reflect"
	"testing"

	"github.com/joedomabylv/QuickSched/internal/model"
)

func ta(id int, contracted bool) model.TA {
	return model.TA{ID: id, Contracted: contracted}
}

func bookOf(scores map[int]map[int]int) model.ScoreBook {
	book := make(model.ScoreBook)
	for taID, row := range scores {
		for labID, s := range row {
			book.Set(taID, labID, s)
		}
	}
	return book
}

func placementMap(r BuildResult) map[int]int {
	m := make(map[int]int, len(r.Placements))
	for _, p := range r.Placements {
		m[p.LabID] = p.TAID
	}
	return m
}

func TestBuildScheduleBestScoreWins(t *testing.T) {
	tas := []model.TA{ta(1, true), ta(2, true)}
	labs := []model.Lab{{ID: 10}, {ID: 11}}
	book := bookOf(map[int]map[int]int{
		1: {10: 10, 11: 0},
		2: {10: 0, 11: 10},
	})

	got := placementMap(BuildSchedule(tas, labs, book))
	want := map[int]int{10: 1, 11: 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("placements = %v, want %v", got, want)
	}
}

func TestBuildScheduleContractedTier_First(t *testing.T) {
	// The volunteer outscores the contracted TA, but contracted TAs are
	// placed before volunteers are even considered.
	tas := []model.TA{ta(1, false), ta(2, true)}
	labs := []model.Lab{{ID: 10}}
	book := bookOf(map[int]map[int]int{
		1: {10: 50},
		2: {10: 5},
	})

	got := placementMap(BuildSchedule(tas, labs, book))
	if got[10] != 2 {
		t.Errorf("lab 10 assigned to %d, want contracted TA 2", got[10])
	}
}

func TestBuildScheduleVolunteersFillRemainder(t *testing.T) {
	tas := []model.TA{ta(1, true), ta(2, false)}
	labs := []model.Lab{{ID: 10}, {ID: 11}}
	book := bookOf(map[int]map[int]int{
		1: {10: 10, 11: 10},
		2: {10: 3, 11: 3},
	})

	r := BuildSchedule(tas, labs, book)
	got := placementMap(r)
	if got[10] != 1 || got[11] != 2 {
		t.Errorf("placements = %v, want lab10->1 lab11->2", got)
	}
	if len(r.UnstaffedLabIDs) != 0 {
		t.Errorf("unstaffed = %v, want none", r.UnstaffedLabIDs)
	}
}

func TestBuildScheduleTieBreakIsInputOrder(t *testing.T) {
	tas := []model.TA{ta(3, true), ta(1, true), ta(2, true)}
	labs := []model.Lab{{ID: 10}}
	book := bookOf(map[int]map[int]int{
		1: {10: 7},
		2: {10: 7},
		3: {10: 7},
	})

	got := placementMap(BuildSchedule(tas, labs, book))
	if got[10] != 3 {
		t.Errorf("tie broken to TA %d, want first-in-input TA 3", got[10])
	}
}

func TestBuildScheduleDeterministic(t *testing.T) {
	tas := []model.TA{ta(1, true), ta(2, true), ta(3, false), ta(4, false)}
	labs := []model.Lab{{ID: 10}, {ID: 11}, {ID: 12}}
	book := bookOf(map[int]map[int]int{
		1: {10: 10, 11: 10, 12: 0},
		2: {10: 10, 11: 0, 12: 0},
		3: {10: 0, 11: 5, 12: 5},
		4: {10: 0, 11: 5, 12: 5},
	})

	first := BuildSchedule(tas, labs, book)
	second := BuildSchedule(tas, labs, book)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs diverged:\n%+v\n%+v", first, second)
	}
}

func TestBuildScheduleNoDuplicateLabOrTA(t *testing.T) {
	tas := []model.TA{ta(1, true), ta(2, true), ta(3, false)}
	labs := []model.Lab{{ID: 10}, {ID: 11}, {ID: 12}, {ID: 13}}
	book := make(model.ScoreBook)
	for _, x := range tas {
		for _, l := range labs {
			book.Set(x.ID, l.ID, 1)
		}
	}

	r := BuildSchedule(tas, labs, book)
	seenLab := make(map[int]bool)
	seenTA := make(map[int]bool)
	for _, p := range r.Placements {
		if seenLab[p.LabID] {
			t.Errorf("lab %d assigned twice", p.LabID)
		}
		if seenTA[p.TAID] {
			t.Errorf("TA %d placed twice", p.TAID)
		}
		seenLab[p.LabID] = true
		seenTA[p.TAID] = true
	}
	if len(r.Placements) != 3 || len(r.UnstaffedLabIDs) != 1 {
		t.Errorf("placed %d labs, %d unstaffed; want 3 and 1", len(r.Placements), len(r.UnstaffedLabIDs))
	}
}

func TestBuildScheduleExclusionRetry(t *testing.T) {
	// TA 1 is the top scorer for both labs. Once it takes lab 10, the
	// tie-set retry must fall through to TA 2 for lab 11.
	tas := []model.TA{ta(1, true), ta(2, true)}
	labs := []model.Lab{{ID: 10}, {ID: 11}}
	book := bookOf(map[int]map[int]int{
		1: {10: 100, 11: 100},
		2: {10: 1, 11: 1},
	})

	got := placementMap(BuildSchedule(tas, labs, book))
	want := map[int]int{10: 1, 11: 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("placements = %v, want %v", got, want)
	}
}

func TestBuildScheduleAbsentScoreDisqualifies(t *testing.T) {
	// TA 2 has no score for lab 10 at all; it must never be assigned there
	// even though the lab would otherwise go unstaffed.
	tas := []model.TA{ta(2, true)}
	labs := []model.Lab{{ID: 10}}
	book := make(model.ScoreBook)
	book.Set(2, 99, 50) // scored for some other lab only

	r := BuildSchedule(tas, labs, book)
	if len(r.Placements) != 0 {
		t.Errorf("unscored TA was placed: %v", r.Placements)
	}
	if len(r.UnstaffedLabIDs) != 1 || r.UnstaffedLabIDs[0] != 10 {
		t.Errorf("unstaffed = %v, want [10]", r.UnstaffedLabIDs)
	}
}

func TestBuildScheduleConflictedTAStillAssignable(t *testing.T) {
	// A deeply negative score is still a score; with nobody else in the
	// pool the conflicted TA gets the lab rather than leaving it empty.
	tas := []model.TA{ta(1, true)}
	labs := []model.Lab{{ID: 10}}
	book := bookOf(map[int]map[int]int{1: {10: -999}})

	got := placementMap(BuildSchedule(tas, labs, book))
	if got[10] != 1 {
		t.Errorf("conflicted TA not assigned, placements = %v", got)
	}
}

func TestBuildScheduleEmptyLabs(t *testing.T) {
	r := BuildSchedule([]model.TA{ta(1, true)}, nil, make(model.ScoreBook))
	if r.Warning == "" {
		t.Error("empty lab list should warn")
	}
	if len(r.Placements) != 0 || len(r.UnstaffedLabIDs) != 0 {
		t.Errorf("empty lab list produced output: %+v", r)
	}
}

func TestBuildScheduleEmptyTAs(t *testing.T) {
	labs := []model.Lab{{ID: 10}, {ID: 11}}
	r := BuildSchedule(nil, labs, make(model.ScoreBook))
	if r.Warning == "" {
		t.Error("empty TA list should warn")
	}
	if !reflect.DeepEqual(r.UnstaffedLabIDs, []int{10, 11}) {
		t.Errorf("unstaffed = %v, want every lab", r.UnstaffedLabIDs)
	}
}

func TestBuildScheduleMoreLabsThanTAs(t *testing.T) {
	tas := []model.TA{ta(1, true)}
	labs := []model.Lab{{ID: 10}, {ID: 11}}
	book := bookOf(map[int]map[int]int{1: {10: 5, 11: 9}})

	r := BuildSchedule(tas, labs, book)
	got := placementMap(r)
	// Labs fill in input order, so lab 10 wins the only TA despite the
	// higher score on lab 11.
	if got[10] != 1 {
		t.Errorf("placements = %v, want lab 10 -> TA 1", got)
	}
	if len(r.UnstaffedLabIDs) != 1 || r.UnstaffedLabIDs[0] != 11 {
		t.Errorf("unstaffed = %v, want [11]", r.UnstaffedLabIDs)
	}
}
