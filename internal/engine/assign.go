package engine

import "github.com/joedomabylv/QuickSched/internal/model"

// Placement binds one lab to one TA in a build result.
type Placement struct {
	LabID int
	TAID  int
}

// BuildResult is the outcome of one greedy schedule construction.
type BuildResult struct {
	Placements []Placement
	// UnstaffedLabIDs lists labs no TA could be placed into, in lab input
	// order. A non-empty list is reported to the operator, not an error.
	UnstaffedLabIDs []int
	// Warning carries the degenerate-input reason, empty when inputs were
	// usable ("no labs to schedule", "no TAs selected").
	Warning string
}

// BuildSchedule runs the deterministic greedy assignment: contracted TAs
// are placed first, volunteers fill whatever remains. Candidate order is
// the input order of tas and labs, so identical inputs always produce an
// identical assignment set. A pair with no recorded score is never a
// candidate; absence disqualifies rather than counting as zero.
func BuildSchedule(tas []model.TA, labs []model.Lab, book model.ScoreBook) BuildResult {
	var result BuildResult

	if len(labs) == 0 {
		result.Warning = "no labs to schedule"
		return result
	}
	if len(tas) == 0 {
		result.Warning = "no TAs selected"
		for i := range labs {
			result.UnstaffedLabIDs = append(result.UnstaffedLabIDs, labs[i].ID)
		}
		return result
	}

	var contracted, volunteers []model.TA
	for _, ta := range tas {
		if ta.Contracted {
			contracted = append(contracted, ta)
		} else {
			volunteers = append(volunteers, ta)
		}
	}

	assignedLab := make(map[int]int, len(labs)) // labID -> taID
	assignedTA := make(map[int]bool, len(tas))

	assignTier(contracted, labs, book, assignedLab, assignedTA)
	assignTier(volunteers, labs, book, assignedLab, assignedTA)

	for i := range labs {
		if taID, ok := assignedLab[labs[i].ID]; ok {
			result.Placements = append(result.Placements, Placement{LabID: labs[i].ID, TAID: taID})
		} else {
			result.UnstaffedLabIDs = append(result.UnstaffedLabIDs, labs[i].ID)
		}
	}
	return result
}

// assignTier fills unassigned labs from one priority tier. For each lab it
// repeatedly takes the maximum-score tie set over still-considered TAs and
// picks the first unassigned member; a tie set with no unassigned member is
// excluded from contention for that lab and never reconsidered, so the
// retry loop strictly shrinks and always terminates.
func assignTier(tier []model.TA, labs []model.Lab, book model.ScoreBook, assignedLab map[int]int, assignedTA map[int]bool) {
	for i := range labs {
		lab := &labs[i]
		if _, done := assignedLab[lab.ID]; done {
			continue
		}

		excluded := make(map[int]bool)
		for {
			ties := maxScoreTies(tier, lab.ID, book, excluded)
			if len(ties) == 0 {
				break // nobody left to consider for this lab in this tier
			}

			placed := false
			for _, ta := range ties {
				if !assignedTA[ta.ID] {
					assignedLab[lab.ID] = ta.ID
					assignedTA[ta.ID] = true
					placed = true
					break
				}
			}
			if placed {
				break
			}
			// Every top-scoring TA already holds a lab; drop the whole tie
			// set and retry against the remaining pool.
			for _, ta := range ties {
				excluded[ta.ID] = true
			}
		}
	}
}

// maxScoreTies returns, in input order, every non-excluded TA sharing the
// maximum recorded score for the lab. TAs with no recorded score for the
// lab are not considered.
func maxScoreTies(tier []model.TA, labID int, book model.ScoreBook, excluded map[int]bool) []model.TA {
	var best int
	var found bool
	var ties []model.TA

	for i := range tier {
		if excluded[tier[i].ID] {
			continue
		}
		score, ok := book.Get(tier[i].ID, labID)
		if !ok {
			continue
		}
		switch {
		case !found || score > best:
			best = score
			found = true
			ties = ties[:0]
			ties = append(ties, tier[i])
		case score == best:
			ties = append(ties, tier[i])
		}
	}
	return ties
}
