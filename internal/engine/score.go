// Package engine implements the assignment core: TA-lab compatibility
// scoring, greedy template-schedule construction, deviation-ranked switch
// recommendation, and the bounded undo window. Everything here is pure
// computation over in-memory models; persistence belongs to the services.
package engine

import "github.com/joedomabylv/QuickSched/internal/model"

// Weights are the scoring tunables for one generation run. PriorityBonus is
// the resolved point value for the operator-selected priority level and is
// added uniformly to every score the run computes.
type Weights struct {
	ExperienceWeight int
	ConflictPenalty  int
	PriorityBonus    int
}

// Score computes the compatibility score for a (TA, lab) pair: the
// experience weight for every exact (subject, catalog) match, minus the
// conflict penalty for every unavailability interval overlapping the lab,
// plus the uniform priority bonus. A conflict does not disqualify the pair
// outright; the penalty simply buries it unless no clean TA exists.
func (w Weights) Score(ta *model.TA, lab *model.Lab) int {
	score := w.PriorityBonus

	for _, exp := range ta.Experience {
		if exp.Subject == lab.Subject && exp.CatalogID == lab.CatalogID {
			score += w.ExperienceWeight
		}
	}

	for _, slot := range ta.Unavailable {
		if slotConflicts(slot, lab) {
			score -= w.ConflictPenalty
		}
	}

	return score
}

// slotConflicts reports whether an unavailability interval overlaps the
// lab's meeting time. The weekday sets must intersect, and the time ranges
// are compared with inclusive boundaries: an interval that starts during,
// ends during, contains, or is contained by the lab interval all conflict.
func slotConflicts(slot model.UnavailableSlot, lab *model.Lab) bool {
	if !slot.Days.Intersects(lab.Days) {
		return false
	}
	return (slot.StartTime >= lab.StartTime && slot.StartTime <= lab.EndTime) ||
		(slot.EndTime >= lab.StartTime && slot.EndTime <= lab.EndTime) ||
		(lab.StartTime >= slot.StartTime && lab.StartTime <= slot.EndTime) ||
		(lab.EndTime >= slot.StartTime && lab.EndTime <= slot.EndTime)
}

// ScoreAll computes the full score book for the given TAs and labs.
func ScoreAll(tas []model.TA, labs []model.Lab, w Weights) model.ScoreBook {
	book := make(model.ScoreBook, len(tas))
	for i := range tas {
		for j := range labs {
			book.Set(tas[i].ID, labs[j].ID, w.Score(&tas[i], &labs[j]))
		}
	}
	return book
}
