package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/joedomabylv/QuickSched/internal/model"
	"github.com/joedomabylv/QuickSched/internal/response"
	"github.com/joedomabylv/QuickSched/internal/service"
	"github.com/joedomabylv/QuickSched/internal/validator"
)

// TAHandler handles TA profile management: basic fields, availability,
// experience, and semester eligibility.
type TAHandler struct {
	taService *service.TAService
}

// NewTAHandler creates a new TAHandler.
func NewTAHandler(taService *service.TAService) *TAHandler {
	return &TAHandler{taService: taService}
}

// ListTAs godoc
// GET /api/v1/admin/tas
// Lists all TAs with their child collections.
func (h *TAHandler) ListTAs(c *gin.Context) {
	tas, err := h.taService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tas": tas})
}

// ListSemesterTAs godoc
// GET /api/v1/admin/semesters/:id/tas
// Lists the TAs eligible for a semester.
func (h *TAHandler) ListSemesterTAs(c *gin.Context) {
	semesterID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	tas, err := h.taService.ListBySemester(c.Request.Context(), semesterID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tas": tas})
}

// GetTA godoc
// GET /api/v1/admin/tas/:id
// Returns one TA profile.
func (h *TAHandler) GetTA(c *gin.Context) {
	ta, ok := h.loadTA(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ta": ta})
}

// CreateTA godoc
// POST /api/v1/admin/tas
// Onboards a TA. The profile starts with all holds raised.
func (h *TAHandler) CreateTA(c *gin.Context) {
	var req model.CreateTARequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ta := &model.TA{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		StudentID:  req.StudentID,
		Year:       model.TAYear(req.Year),
		Contracted: req.Contracted,
	}

	if err := h.taService.Create(c.Request.Context(), ta); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"ta": ta})
}

// UpdateTA godoc
// PUT /api/v1/admin/tas/:id
// Applies a partial edit to a TA's basic fields.
func (h *TAHandler) UpdateTA(c *gin.Context) {
	var req model.UpdateTARequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ta, ok := h.loadTA(c)
	if !ok {
		return
	}

	if err := h.taService.Update(c.Request.Context(), ta, &req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ta": ta})
}

// DeleteTA godoc
// DELETE /api/v1/admin/tas/:id
// Deletes a TA. Fails while template assignments still reference them.
func (h *TAHandler) DeleteTA(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.taService.Delete(c.Request.Context(), id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "ta deleted successfully"})
}

// UpdateAvailability godoc
// PUT /api/v1/admin/tas/:id/availability
// Replaces the TA's weekly unavailability and clears the matching hold.
func (h *TAHandler) UpdateAvailability(c *gin.Context) {
	var req model.UpdateAvailabilityRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ta, ok := h.loadTA(c)
	if !ok {
		return
	}

	slots := make([]model.UnavailableSlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		days, err := model.DaySetFromStrings(s.Days)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		slots = append(slots, model.UnavailableSlot{
			Days:      days,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	if err := h.taService.ReplaceAvailability(c.Request.Context(), ta, slots); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ta": ta})
}

// UpdateExperience godoc
// PUT /api/v1/admin/tas/:id/experience
// Replaces the TA's course experience and clears the matching hold.
func (h *TAHandler) UpdateExperience(c *gin.Context) {
	var req model.UpdateExperienceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ta, ok := h.loadTA(c)
	if !ok {
		return
	}

	courses := make([]model.Experience, 0, len(req.Courses))
	for _, e := range req.Courses {
		courses = append(courses, model.Experience{
			Subject:   e.Subject,
			CatalogID: e.CatalogID,
		})
	}

	if err := h.taService.ReplaceExperience(c.Request.Context(), ta, courses); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ta": ta})
}

// UpdateEligibility godoc
// PUT /api/v1/admin/tas/:id/eligibility
// Replaces the semesters the TA may be scheduled in.
func (h *TAHandler) UpdateEligibility(c *gin.Context) {
	var req model.UpdateEligibilityRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ta, ok := h.loadTA(c)
	if !ok {
		return
	}

	if err := h.taService.ReplaceEligibility(c.Request.Context(), ta.ID, req.SemesterIDs); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	ta.SemesterIDs = req.SemesterIDs
	response.Success(c, http.StatusOK, gin.H{"ta": ta})
}

// loadTA resolves :id into a TA, writing the error response itself.
func (h *TAHandler) loadTA(c *gin.Context) (*model.TA, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil, false
	}

	ta, err := h.taService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return nil, false
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, false
	}
	return ta, true
}
