package service

import (
	"context"
	"errors"

	"github.com/joedomabylv/QuickSched/internal/model"
	"github.com/joedomabylv/QuickSched/internal/repository"
)

// ErrTimeOrder rejects a lab whose end time is not after its start time.
// Create requests catch this in binding; partial updates can only be
// checked after the patch is applied.
var ErrTimeOrder = errors.New("end time must be after start time")

// LabService handles lab section business logic.
type LabService struct {
	labRepo *repository.LabRepository
}

// NewLabService creates a new LabService.
func NewLabService(labRepo *repository.LabRepository) *LabService {
	return &LabService{labRepo: labRepo}
}

// GetByID retrieves a lab by its ID.
func (s *LabService) GetByID(ctx context.Context, id int) (*model.Lab, error) {
	return s.labRepo.GetByID(ctx, id)
}

// ListBySemester retrieves every lab in a semester in catalog order.
func (s *LabService) ListBySemester(ctx context.Context, semesterID int) ([]model.Lab, error) {
	return s.labRepo.ListBySemester(ctx, semesterID)
}

// Create adds a lab to a semester. The (semester_id, course_id) unique
// constraint rejects duplicate course IDs; the handler maps it to a conflict.
func (s *LabService) Create(ctx context.Context, lab *model.Lab) error {
	return s.labRepo.Create(ctx, lab)
}

// Update applies a partial edit to a lab and persists the result.
func (s *LabService) Update(ctx context.Context, lab *model.Lab, req *model.UpdateLabRequest) error {
	if req.CourseID != "" {
		lab.CourseID = req.CourseID
	}
	if req.ClassName != "" {
		lab.ClassName = req.ClassName
	}
	if req.Subject != "" {
		lab.Subject = req.Subject
	}
	if req.CatalogID != "" {
		lab.CatalogID = req.CatalogID
	}
	if req.Section != "" {
		lab.Section = req.Section
	}
	if len(req.Days) > 0 {
		days, err := model.DaySetFromStrings(req.Days)
		if err != nil {
			return err
		}
		lab.Days = days
	}
	if req.StartTime != nil {
		lab.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		lab.EndTime = *req.EndTime
	}
	if lab.EndTime <= lab.StartTime {
		return ErrTimeOrder
	}
	if req.FacilityID != nil {
		lab.FacilityID = *req.FacilityID
	}
	if req.FacilityBuilding != nil {
		lab.FacilityBuilding = *req.FacilityBuilding
	}
	if req.Instructor != nil {
		lab.Instructor = *req.Instructor
	}
	return s.labRepo.Update(ctx, lab)
}

// Delete removes a lab along with its template assignments and scores.
func (s *LabService) Delete(ctx context.Context, id int) error {
	return s.labRepo.Delete(ctx, id)
}
