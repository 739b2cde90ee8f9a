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

// SemesterHandler handles semester management (CRUD).
type SemesterHandler struct {
	semesterService *service.SemesterService
}

// NewSemesterHandler creates a new SemesterHandler.
func NewSemesterHandler(semesterService *service.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterService: semesterService}
}

// ListSemesters godoc
// GET /api/v1/admin/semesters
// Lists all semesters, newest first.
func (h *SemesterHandler) ListSemesters(c *gin.Context) {
	semesters, err := h.semesterService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"semesters": semesters})
}

// CurrentSemester godoc
// GET /api/v1/admin/semesters/current
// Returns the semester matching today's date, if one has been created.
func (h *SemesterHandler) CurrentSemester(c *gin.Context) {
	semester, err := h.semesterService.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"semester": semester})
}

// CreateSemester godoc
// POST /api/v1/admin/semesters
// Creates a semester; at most one may exist per (time, year) pair.
func (h *SemesterHandler) CreateSemester(c *gin.Context) {
	var req model.CreateSemesterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	semester := &model.Semester{
		Time: model.SemesterTime(req.Time),
		Year: req.Year,
	}

	if err := h.semesterService.Create(c.Request.Context(), semester); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Fail(c, http.StatusConflict, response.ErrSemesterExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"semester": semester})
}

// DeleteSemester godoc
// DELETE /api/v1/admin/semesters/:id
// Deletes a semester with its labs, schedules, and eligibility links.
func (h *SemesterHandler) DeleteSemester(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.semesterService.Delete(c.Request.Context(), id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "semester deleted successfully"})
}
