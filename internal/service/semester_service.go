package service

import (
	"context"
	"fmt"
	"time"

	"github.com/joedomabylv/QuickSched/internal/model"
	"github.com/joedomabylv/QuickSched/internal/repository"
)

// SemesterService handles semester business logic.
type SemesterService struct {
	semesterRepo *repository.SemesterRepository
	scheduleRepo *repository.ScheduleRepository
}

// NewSemesterService creates a new SemesterService.
func NewSemesterService(semesterRepo *repository.SemesterRepository, scheduleRepo *repository.ScheduleRepository) *SemesterService {
	return &SemesterService{semesterRepo: semesterRepo, scheduleRepo: scheduleRepo}
}

// GetByID retrieves a semester by its ID.
func (s *SemesterService) GetByID(ctx context.Context, id int) (*model.Semester, error) {
	return s.semesterRepo.GetByID(ctx, id)
}

// List retrieves all semesters.
func (s *SemesterService) List(ctx context.Context) ([]model.Semester, error) {
	return s.semesterRepo.List(ctx)
}

// Current retrieves the semester matching today's date. The error is
// pgx.ErrNoRows when no semester exists for the current term yet.
func (s *SemesterService) Current(ctx context.Context) (*model.Semester, error) {
	t, year := model.CurrentTerm(time.Now())
	return s.semesterRepo.GetByTerm(ctx, t, year)
}

// Create creates a new semester. The (time, year) unique constraint rejects
// duplicates; the handler maps that to a conflict response. Every semester
// starts with an empty version-0 template schedule so the latest-schedule
// endpoints have something to return before the first generation run; both
// rows commit in one transaction.
func (s *SemesterService) Create(ctx context.Context, semester *model.Semester) error {
	tx, err := s.semesterRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.semesterRepo.Create(ctx, tx, semester); err != nil {
		return err
	}
	initial := &model.TemplateSchedule{SemesterID: semester.ID}
	if err := s.scheduleRepo.CreateIn(ctx, tx, initial); err != nil {
		return fmt.Errorf("create initial schedule: %w", err)
	}
	return tx.Commit(ctx)
}

// Delete removes a semester along with its labs, schedules, and eligibility.
func (s *SemesterService) Delete(ctx context.Context, id int) error {
	return s.semesterRepo.Delete(ctx, id)
}
