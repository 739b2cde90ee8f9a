package service

import (
	"testing"

	"github.com/joedomabylv/QuickSched/internal/config"
	"github.com/joedomabylv/QuickSched/internal/model"
)

// A score refresh must recompute with the bonus the schedule's book was
// generated with, not the level-less default, or the refreshed TA's rows
// would sit on a shifted baseline.
func TestRefreshWeightsUseRecordedBonus(t *testing.T) {
	cfg := &config.Config{
		ExperienceWeight: 10,
		ConflictPenalty:  999,
		PriorityBonusLow: 10,
	}
	schedule := &model.TemplateSchedule{PriorityBonus: cfg.PriorityBonusLow}

	w := refreshWeights(cfg, schedule)
	if w.PriorityBonus != 10 {
		t.Errorf("PriorityBonus = %d, want the schedule's recorded 10", w.PriorityBonus)
	}
	if w.ExperienceWeight != 10 || w.ConflictPenalty != 999 {
		t.Errorf("base weights = %+v, want config values", w)
	}
}

func TestRefreshWeightsZeroBonusForPlainSchedules(t *testing.T) {
	cfg := &config.Config{ExperienceWeight: 10, ConflictPenalty: 999, PriorityBonusHigh: 20}
	w := refreshWeights(cfg, &model.TemplateSchedule{})
	if w.PriorityBonus != 0 {
		t.Errorf("PriorityBonus = %d, want 0 for a schedule generated without a level", w.PriorityBonus)
	}
}
