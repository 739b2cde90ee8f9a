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

// LabHandler handles lab section management within a semester.
type LabHandler struct {
	labService *service.LabService
}

// NewLabHandler creates a new LabHandler.
func NewLabHandler(labService *service.LabService) *LabHandler {
	return &LabHandler{labService: labService}
}

// ListLabs godoc
// GET /api/v1/admin/semesters/:id/labs
// Lists every lab in a semester in catalog order, live roster included.
func (h *LabHandler) ListLabs(c *gin.Context) {
	semesterID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	labs, err := h.labService.ListBySemester(c.Request.Context(), semesterID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"labs": labs})
}

// CreateLab godoc
// POST /api/v1/admin/semesters/:id/labs
// Adds a lab to a semester. Course IDs are unique within the semester.
func (h *LabHandler) CreateLab(c *gin.Context) {
	semesterID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateLabRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	days, err := model.DaySetFromStrings(req.Days)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	lab := &model.Lab{
		SemesterID:       semesterID,
		CourseID:         req.CourseID,
		ClassName:        req.ClassName,
		Subject:          req.Subject,
		CatalogID:        req.CatalogID,
		Section:          req.Section,
		Days:             days,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		FacilityID:       req.FacilityID,
		FacilityBuilding: req.FacilityBuilding,
		Instructor:       req.Instructor,
	}

	if err := h.labService.Create(c.Request.Context(), lab); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				response.Fail(c, http.StatusConflict, response.ErrLabExists)
				return
			case "23503": // Semester does not exist.
				response.Fail(c, http.StatusNotFound, response.ErrNotFound)
				return
			}
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"lab": lab})
}

// UpdateLab godoc
// PUT /api/v1/admin/labs/:id
// Applies a partial edit; uniqueness and time order are re-checked.
func (h *LabHandler) UpdateLab(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateLabRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lab, err := h.labService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.labService.Update(c.Request.Context(), lab, &req); err != nil {
		if errors.Is(err, service.ErrTimeOrder) {
			response.Fail(c, http.StatusBadRequest, response.ErrLabTimeOrder)
			return
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Fail(c, http.StatusConflict, response.ErrLabExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lab": lab})
}

// DeleteLab godoc
// DELETE /api/v1/admin/labs/:id
// Deletes a lab along with its template assignments and scores.
func (h *LabHandler) DeleteLab(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.labService.Delete(c.Request.Context(), id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "lab deleted successfully"})
}
