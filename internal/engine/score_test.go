package engine

import (
	"testing"

	"github.com/joedomabylv/QuickSched/internal/model"
)

var testWeights = Weights{ExperienceWeight: 10, ConflictPenalty: 999}

func lab(id int, subject, catalog string, days model.DaySet, start, end model.MinuteOfDay) model.Lab {
	return model.Lab{
		ID:        id,
		CourseID:  subject + catalog,
		Subject:   subject,
		CatalogID: catalog,
		Days:      days,
		StartTime: start,
		EndTime:   end,
	}
}

func TestScoreExperienceMatch(t *testing.T) {
	ta := model.TA{ID: 1, Experience: []model.Experience{{Subject: "CS", CatalogID: "201"}}}
	matching := lab(1, "CS", "201", model.DaySet{model.Tuesday}, 13*60, 14*60)
	other := lab(2, "MAT", "310", model.DaySet{model.Tuesday}, 13*60, 14*60)

	if got := testWeights.Score(&ta, &matching); got != 10 {
		t.Errorf("matching experience: score = %d, want 10", got)
	}
	if got := testWeights.Score(&ta, &other); got != 0 {
		t.Errorf("non-matching lab: score = %d, want 0", got)
	}
}

func TestScoreSubjectAloneDoesNotMatch(t *testing.T) {
	ta := model.TA{ID: 1, Experience: []model.Experience{{Subject: "CS", CatalogID: "101"}}}
	l := lab(1, "CS", "201", model.DaySet{model.Friday}, 9*60, 10*60)

	if got := testWeights.Score(&ta, &l); got != 0 {
		t.Errorf("catalog mismatch: score = %d, want 0", got)
	}
}

func TestScoreConflictPenalty(t *testing.T) {
	// TA busy Mon 09:00-10:00, lab Mon 09:30-10:30.
	ta := model.TA{ID: 1, Unavailable: []model.UnavailableSlot{
		{Days: model.DaySet{model.Monday}, StartTime: 9 * 60, EndTime: 10 * 60},
	}}
	l := lab(1, "CS", "201", model.DaySet{model.Monday}, 9*60+30, 10*60+30)

	if got := testWeights.Score(&ta, &l); got != -999 {
		t.Errorf("overlapping slot: score = %d, want -999", got)
	}
}

func TestScoreNoConflictOnDifferentDay(t *testing.T) {
	ta := model.TA{ID: 1, Unavailable: []model.UnavailableSlot{
		{Days: model.DaySet{model.Tuesday}, StartTime: 9 * 60, EndTime: 10 * 60},
	}}
	l := lab(1, "CS", "201", model.DaySet{model.Monday}, 9*60, 10*60)

	if got := testWeights.Score(&ta, &l); got != 0 {
		t.Errorf("different day: score = %d, want 0", got)
	}
}

func TestScoreInclusiveBoundaries(t *testing.T) {
	// Slot ends exactly when the lab starts: inclusive comparison still
	// counts it as a conflict.
	ta := model.TA{ID: 1, Unavailable: []model.UnavailableSlot{
		{Days: model.DaySet{model.Wednesday}, StartTime: 8 * 60, EndTime: 9 * 60},
	}}
	l := lab(1, "CS", "201", model.DaySet{model.Wednesday}, 9*60, 10*60)

	if got := testWeights.Score(&ta, &l); got != -999 {
		t.Errorf("touching boundary: score = %d, want -999", got)
	}
}

func TestScoreContainmentBothWays(t *testing.T) {
	l := lab(1, "CS", "201", model.DaySet{model.Thursday}, 9*60, 11*60)

	inner := model.TA{ID: 1, Unavailable: []model.UnavailableSlot{
		{Days: model.DaySet{model.Thursday}, StartTime: 9*60 + 30, EndTime: 10 * 60},
	}}
	outer := model.TA{ID: 2, Unavailable: []model.UnavailableSlot{
		{Days: model.DaySet{model.Thursday}, StartTime: 8 * 60, EndTime: 12 * 60},
	}}

	if got := testWeights.Score(&inner, &l); got != -999 {
		t.Errorf("slot inside lab: score = %d, want -999", got)
	}
	if got := testWeights.Score(&outer, &l); got != -999 {
		t.Errorf("slot containing lab: score = %d, want -999", got)
	}
}

func TestScorePriorityBonus(t *testing.T) {
	w := Weights{ExperienceWeight: 10, ConflictPenalty: 999, PriorityBonus: 20}
	ta := model.TA{ID: 1, Experience: []model.Experience{{Subject: "CS", CatalogID: "201"}}}
	l := lab(1, "CS", "201", model.DaySet{model.Monday}, 9*60, 10*60)

	if got := w.Score(&ta, &l); got != 30 {
		t.Errorf("bonus run: score = %d, want 30", got)
	}

	// The bonus applies uniformly, even to pairs with nothing else going.
	blank := model.TA{ID: 2}
	if got := w.Score(&blank, &l); got != 20 {
		t.Errorf("bonus-only score = %d, want 20", got)
	}
}

func TestScoreAllCoversEveryPair(t *testing.T) {
	tas := []model.TA{{ID: 1}, {ID: 2}}
	labs := []model.Lab{
		lab(10, "CS", "101", model.DaySet{model.Monday}, 9*60, 10*60),
		lab(11, "CS", "201", model.DaySet{model.Tuesday}, 9*60, 10*60),
	}

	book := ScoreAll(tas, labs, testWeights)
	for _, ta := range tas {
		for _, l := range labs {
			if _, ok := book.Get(ta.ID, l.ID); !ok {
				t.Errorf("no score recorded for ta %d lab %d", ta.ID, l.ID)
			}
		}
	}
}
