package engine

import (
	"sort"

	"github.com/joedomabylv/QuickSched/internal/model"
)

// SwitchOptions tune the recommender. Thresholds are ascending deviation
// cutoffs; a deviation below Thresholds[i] earns Grades[i], anything above
// the last cutoff earns the final grade. len(Grades) == len(Thresholds)+1.
type SwitchOptions struct {
	Limit      int
	Thresholds []int
	Grades     []string
	// ExcludeUnscored drops candidates for whom any of the four constituent
	// scores is missing. When false (the historical behavior) such a
	// candidate falls back to a deviation of zero, which ranks it as the
	// least disruptive switch available.
	ExcludeUnscored bool
}

// SwitchCandidate is one ranked swap suggestion.
type SwitchCandidate struct {
	SelectedTAID  int    `json:"selected_ta_id"`
	SelectedLabID int    `json:"selected_lab_id"`
	CandidateTAID int    `json:"candidate_ta_id"`
	OtherLabID    int    `json:"other_lab_id"`
	Deviation     int    `json:"deviation"`
	Grade         string `json:"grade"`
}

// RecommendSwitches ranks one-for-one swap alternatives for the TA
// currently holding selectedLab, least disruptive first. Candidates must be
// eligible TAs that hold some other assignment in the schedule and have at
// least one recorded score; the selected TA is never a candidate. Returns
// nil when no TA is assigned to the selected lab.
func RecommendSwitches(selectedLab *model.Lab, schedule *model.TemplateSchedule, eligible []model.TA, book model.ScoreBook, opt SwitchOptions) []SwitchCandidate {
	current := schedule.AssignmentByLab(selectedLab.ID)
	if current == nil {
		return nil
	}
	selectedTAID := current.TAID
	currentScore, haveCurrent := book.Get(selectedTAID, selectedLab.ID)

	var candidates []SwitchCandidate
	for i := range eligible {
		ta := &eligible[i]
		if ta.ID == selectedTAID || !book.HasTA(ta.ID) {
			continue
		}
		held := schedule.AssignmentByTA(ta.ID)
		if held == nil || held.LabID == selectedLab.ID {
			continue
		}

		deviation, scored := deviationScore(selectedTAID, selectedLab.ID, currentScore, haveCurrent, ta.ID, held.LabID, book)
		if !scored && opt.ExcludeUnscored {
			continue
		}

		candidates = append(candidates, SwitchCandidate{
			SelectedTAID:  selectedTAID,
			SelectedLabID: selectedLab.ID,
			CandidateTAID: ta.ID,
			OtherLabID:    held.LabID,
			Deviation:     deviation,
			Grade:         gradeFor(deviation, opt),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Deviation < candidates[j].Deviation
	})

	if opt.Limit > 0 && len(candidates) > opt.Limit {
		candidates = candidates[:opt.Limit]
	}
	return candidates
}

// deviationScore measures how far a swap moves both TAs from their
// originally computed fits: |selected TA's score on the other lab minus its
// current score| plus |candidate's score on the selected lab minus its score
// on its own lab|. When any constituent is unavailable the deviation
// defaults to zero and scored is false.
func deviationScore(selectedTAID, selectedLabID, currentScore int, haveCurrent bool, candidateTAID, otherLabID int, book model.ScoreBook) (deviation int, scored bool) {
	selectedOnOther, ok1 := book.Get(selectedTAID, otherLabID)
	candidateOnSelected, ok2 := book.Get(candidateTAID, selectedLabID)
	candidateOnOwn, ok3 := book.Get(candidateTAID, otherLabID)

	if !haveCurrent || !ok1 || !ok2 || !ok3 {
		return 0, false
	}

	gap1 := selectedOnOther - currentScore
	if gap1 < 0 {
		gap1 = -gap1
	}
	gap2 := candidateOnSelected - candidateOnOwn
	if gap2 < 0 {
		gap2 = -gap2
	}
	return gap1 + gap2, true
}

// gradeFor maps a deviation onto the configured bucket labels.
func gradeFor(deviation int, opt SwitchOptions) string {
	if len(opt.Grades) == 0 {
		return ""
	}
	for i, cutoff := range opt.Thresholds {
		if deviation < cutoff && i < len(opt.Grades) {
			return opt.Grades[i]
		}
	}
	return opt.Grades[len(opt.Grades)-1]
}
