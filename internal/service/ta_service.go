package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/joedomabylv/QuickSched/internal/config"
	"github.com/joedomabylv/QuickSched/internal/model"
	"github.com/joedomabylv/QuickSched/internal/repository"
)

// TAService handles TA business logic. Profile edits that change scoring
// inputs enqueue a background score refresh instead of recomputing inline.
type TAService struct {
	taRepo *repository.TARepository
	rdb    *redis.Client
}

// NewTAService creates a new TAService.
func NewTAService(taRepo *repository.TARepository, rdb *redis.Client) *TAService {
	return &TAService{taRepo: taRepo, rdb: rdb}
}

// GetByID retrieves a TA with experience, unavailability, and eligibility.
func (s *TAService) GetByID(ctx context.Context, id int) (*model.TA, error) {
	return s.taRepo.GetByID(ctx, id)
}

// List retrieves all TAs.
func (s *TAService) List(ctx context.Context) ([]model.TA, error) {
	return s.taRepo.List(ctx)
}

// ListBySemester retrieves the TAs eligible for a semester.
func (s *TAService) ListBySemester(ctx context.Context, semesterID int) ([]model.TA, error) {
	return s.taRepo.ListBySemester(ctx, semesterID)
}

// Create onboards a TA. New profiles start with all holds raised until
// availability and experience have been entered.
func (s *TAService) Create(ctx context.Context, ta *model.TA) error {
	return s.taRepo.Create(ctx, ta)
}

// Update applies a partial edit to a TA's basic fields.
func (s *TAService) Update(ctx context.Context, ta *model.TA, req *model.UpdateTARequest) error {
	if req.FirstName != "" {
		ta.FirstName = req.FirstName
	}
	if req.LastName != "" {
		ta.LastName = req.LastName
	}
	if req.Year != "" {
		ta.Year = model.TAYear(req.Year)
	}
	if req.Contracted != nil {
		ta.Contracted = *req.Contracted
	}
	return s.taRepo.Update(ctx, ta)
}

// Delete removes a TA.
func (s *TAService) Delete(ctx context.Context, id int) error {
	return s.taRepo.Delete(ctx, id)
}

// ReplaceAvailability swaps a TA's weekly unavailability, clears the
// matching hold, and enqueues a score refresh for the TA.
func (s *TAService) ReplaceAvailability(ctx context.Context, ta *model.TA, slots []model.UnavailableSlot) error {
	if err := s.taRepo.ReplaceUnavailability(ctx, ta.ID, slots); err != nil {
		return fmt.Errorf("replace unavailability: %w", err)
	}
	ta.Unavailable = slots
	ta.Holds.UpdateAvailability = false
	ta.Holds.IncompleteProfile = ta.Holds.UpdateExperience
	if err := s.taRepo.Update(ctx, ta); err != nil {
		return fmt.Errorf("clear hold: %w", err)
	}
	s.enqueueScoreRefresh(ctx, ta.ID)
	return nil
}

// ReplaceExperience swaps a TA's course experience, clears the matching
// hold, and enqueues a score refresh for the TA.
func (s *TAService) ReplaceExperience(ctx context.Context, ta *model.TA, courses []model.Experience) error {
	if err := s.taRepo.ReplaceExperience(ctx, ta.ID, courses); err != nil {
		return fmt.Errorf("replace experience: %w", err)
	}
	ta.Experience = courses
	ta.Holds.UpdateExperience = false
	ta.Holds.IncompleteProfile = ta.Holds.UpdateAvailability
	if err := s.taRepo.Update(ctx, ta); err != nil {
		return fmt.Errorf("clear hold: %w", err)
	}
	s.enqueueScoreRefresh(ctx, ta.ID)
	return nil
}

// ReplaceEligibility swaps the semesters a TA may be scheduled in.
func (s *TAService) ReplaceEligibility(ctx context.Context, taID int, semesterIDs []int) error {
	return s.taRepo.ReplaceEligibility(ctx, taID, semesterIDs)
}

// enqueueScoreRefresh pushes the TA onto the refresh queue. A full queue or
// Redis outage only delays recomputation, so failures are logged, not fatal.
func (s *TAService) enqueueScoreRefresh(ctx context.Context, taID int) {
	if err := s.rdb.RPush(ctx, config.WorkerKey.ScoreRefreshQueue, strconv.Itoa(taID)).Err(); err != nil {
		log.Warn().Err(err).Int("ta_id", taID).Msg("failed to enqueue score refresh")
	}
}
