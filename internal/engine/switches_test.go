package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/joedomabylv/QuickSched/internal/model"
)

var testSwitchOptions = SwitchOptions{
	Limit:      4,
	Thresholds: []int{20, 40, 60, 80, 100},
	Grades:     []string{"A", "B", "C", "D", "E", "F"},
}

// switchFixture builds a schedule where TA 1 holds lab 10 (the selected
// lab) and TAs 2..n hold labs 20.. in order.
func switchFixture(candidateTAs ...int) (*model.Lab, *model.TemplateSchedule, []model.TA) {
	schedule := &model.TemplateSchedule{ID: uuid.New(), SemesterID: 1}
	schedule.Assign(1, 10)
	eligible := []model.TA{{ID: 1}}
	for i, taID := range candidateTAs {
		schedule.Assign(taID, 20+i)
		eligible = append(eligible, model.TA{ID: taID})
	}
	selected := &model.Lab{ID: 10, SemesterID: 1}
	return selected, schedule, eligible
}

func TestRecommendSwitchesOrdering(t *testing.T) {
	selected, schedule, eligible := switchFixture(2, 3, 4)
	book := make(model.ScoreBook)
	book.Set(1, 10, 10)
	// Candidate 2 on lab 20: deviation 5 = |12-10| + |13-10|.
	book.Set(1, 20, 12)
	book.Set(2, 10, 13)
	book.Set(2, 20, 10)
	// Candidate 3 on lab 21: deviation 12 = |16-10| + |16-10|.
	book.Set(1, 21, 16)
	book.Set(3, 10, 16)
	book.Set(3, 21, 10)
	// Candidate 4 on lab 22: deviation 40 = |30-10| + |30-10|.
	book.Set(1, 22, 30)
	book.Set(4, 10, 30)
	book.Set(4, 22, 10)

	opt := testSwitchOptions
	opt.Limit = 2
	got := RecommendSwitches(selected, schedule, eligible, book, opt)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].Deviation != 5 || got[0].CandidateTAID != 2 {
		t.Errorf("rank 1 = TA %d deviation %d, want TA 2 deviation 5", got[0].CandidateTAID, got[0].Deviation)
	}
	if got[1].Deviation != 12 || got[1].CandidateTAID != 3 {
		t.Errorf("rank 2 = TA %d deviation %d, want TA 3 deviation 12", got[1].CandidateTAID, got[1].Deviation)
	}
}

func TestRecommendSwitchesNoAssignmentOnSelectedLab(t *testing.T) {
	schedule := &model.TemplateSchedule{ID: uuid.New()}
	selected := &model.Lab{ID: 10}
	got := RecommendSwitches(selected, schedule, []model.TA{{ID: 2}}, make(model.ScoreBook), testSwitchOptions)
	if got != nil {
		t.Errorf("expected nil for unassigned lab, got %v", got)
	}
}

func TestRecommendSwitchesExcludesSelectedTA(t *testing.T) {
	selected, schedule, eligible := switchFixture(2)
	book := make(model.ScoreBook)
	book.Set(1, 10, 10)
	book.Set(1, 20, 10)
	book.Set(2, 10, 10)
	book.Set(2, 20, 10)

	got := RecommendSwitches(selected, schedule, eligible, book, testSwitchOptions)
	for _, c := range got {
		if c.CandidateTAID == 1 {
			t.Error("selected TA offered as its own switch candidate")
		}
	}
	if len(got) != 1 {
		t.Errorf("got %d candidates, want 1", len(got))
	}
}

func TestRecommendSwitchesExcludesUnassignedTA(t *testing.T) {
	selected, schedule, eligible := switchFixture(2)
	// TA 5 is eligible and scored but holds no assignment to swap with.
	eligible = append(eligible, model.TA{ID: 5})
	book := make(model.ScoreBook)
	for _, taID := range []int{1, 2, 5} {
		book.Set(taID, 10, 1)
		book.Set(taID, 20, 1)
	}

	got := RecommendSwitches(selected, schedule, eligible, book, testSwitchOptions)
	for _, c := range got {
		if c.CandidateTAID == 5 {
			t.Error("TA with no current assignment offered as candidate")
		}
	}
}

func TestRecommendSwitchesExcludesUnscoredTA(t *testing.T) {
	selected, schedule, eligible := switchFixture(2, 3)
	book := make(model.ScoreBook)
	book.Set(1, 10, 10)
	book.Set(1, 20, 10)
	book.Set(2, 10, 10)
	book.Set(2, 20, 10)
	// TA 3 has no scores recorded at all for this schedule.

	got := RecommendSwitches(selected, schedule, eligible, book, testSwitchOptions)
	for _, c := range got {
		if c.CandidateTAID == 3 {
			t.Error("unscored TA offered as candidate")
		}
	}
}

func TestRecommendSwitchesMissingConstituentDefaultsToZero(t *testing.T) {
	selected, schedule, eligible := switchFixture(2, 3)
	book := make(model.ScoreBook)
	book.Set(1, 10, 10)
	// Candidate 2 fully scored, deviation 30.
	book.Set(1, 20, 25)
	book.Set(2, 10, 25)
	book.Set(2, 20, 10)
	// Candidate 3 is scored somewhere (so it stays in the pool) but the
	// cross scores are missing: legacy fallback ranks it best at zero.
	book.Set(3, 21, 10)

	got := RecommendSwitches(selected, schedule, eligible, book, testSwitchOptions)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].CandidateTAID != 3 || got[0].Deviation != 0 {
		t.Errorf("rank 1 = TA %d deviation %d, want unscored TA 3 at 0", got[0].CandidateTAID, got[0].Deviation)
	}
}

func TestRecommendSwitchesExcludeUnscoredOption(t *testing.T) {
	selected, schedule, eligible := switchFixture(2, 3)
	book := make(model.ScoreBook)
	book.Set(1, 10, 10)
	book.Set(1, 20, 25)
	book.Set(2, 10, 25)
	book.Set(2, 20, 10)
	book.Set(3, 21, 10)

	opt := testSwitchOptions
	opt.ExcludeUnscored = true
	got := RecommendSwitches(selected, schedule, eligible, book, opt)
	if len(got) != 1 || got[0].CandidateTAID != 2 {
		t.Errorf("exclude-unscored kept %v, want only TA 2", got)
	}
}

func TestGradeBuckets(t *testing.T) {
	cases := []struct {
		deviation int
		want      string
	}{
		{0, "A"}, {19, "A"}, {20, "B"}, {39, "B"}, {40, "C"},
		{60, "D"}, {80, "E"}, {99, "E"}, {100, "F"}, {500, "F"},
	}
	for _, tc := range cases {
		if got := gradeFor(tc.deviation, testSwitchOptions); got != tc.want {
			t.Errorf("gradeFor(%d) = %q, want %q", tc.deviation, got, tc.want)
		}
	}
}
