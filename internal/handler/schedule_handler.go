package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/joedomabylv/QuickSched/internal/model"
	"github.com/joedomabylv/QuickSched/internal/response"
	"github.com/joedomabylv/QuickSched/internal/service"
	"github.com/joedomabylv/QuickSched/internal/validator"
)

// ScheduleHandler handles the template schedule lifecycle: generation,
// switches, manual edits, undo, and propagation.
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// GenerateSchedule godoc
// POST /api/v1/admin/semesters/:id/schedules/generate
// Builds a new schedule version from the selected TAs.
func (h *ScheduleHandler) GenerateSchedule(c *gin.Context) {
	semesterID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.GenerateScheduleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.scheduleService.Generate(c.Request.Context(), semesterID, &req)
	if err != nil {
		h.failScheduleError(c, err)
		return
	}

	if result.Warning != "" {
		response.SuccessWithWarning(c, http.StatusCreated, gin.H{"result": result}, result.Warning)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"result": result})
}

// ListSchedules godoc
// GET /api/v1/admin/semesters/:id/schedules
// Lists a semester's schedule versions, newest first.
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	semesterID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	schedules, err := h.scheduleService.ListBySemester(c.Request.Context(), semesterID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"schedules": schedules})
}

// LatestSchedule godoc
// GET /api/v1/admin/semesters/:id/schedules/latest
// Returns the current working schedule for a semester.
func (h *ScheduleHandler) LatestSchedule(c *gin.Context) {
	semesterID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	schedule, err := h.scheduleService.Latest(c.Request.Context(), semesterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"schedule": schedule})
}

// GetSchedule godoc
// GET /api/v1/admin/schedules/:schedule_id
// Returns the full schedule payload: assignments, unstaffed labs, history.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	scheduleID, ok := h.scheduleID(c)
	if !ok {
		return
	}

	payload, err := h.scheduleService.GetPayload(c.Request.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payload": payload})
}

// RecommendSwitches godoc
// GET /api/v1/admin/schedules/:schedule_id/switches?lab_id=N
// Ranks swap alternatives for the TA holding the given lab.
func (h *ScheduleHandler) RecommendSwitches(c *gin.Context) {
	scheduleID, ok := h.scheduleID(c)
	if !ok {
		return
	}
	labID, err := strconv.Atoi(c.Query("lab_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	candidates, err := h.scheduleService.RecommendSwitches(c.Request.Context(), scheduleID, labID)
	if err != nil {
		h.failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"switches": candidates})
}

// ConfirmSwitch godoc
// POST /api/v1/admin/schedules/:schedule_id/switches/confirm
// Applies a recommended switch and records it in the history window.
func (h *ScheduleHandler) ConfirmSwitch(c *gin.Context) {
	scheduleID, ok := h.scheduleID(c)
	if !ok {
		return
	}

	var req model.ConfirmSwitchRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.scheduleService.ConfirmSwitch(c.Request.Context(), scheduleID, &req); err != nil {
		h.failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "switch confirmed"})
}

// ManualAssign godoc
// POST /api/v1/admin/schedules/:schedule_id/assignments
// Places a TA into a lab by operator decision.
func (h *ScheduleHandler) ManualAssign(c *gin.Context) {
	scheduleID, ok := h.scheduleID(c)
	if !ok {
		return
	}

	var req model.ManualAssignRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.scheduleService.ManualAssign(c.Request.Context(), scheduleID, &req); err != nil {
		h.failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "ta assigned"})
}

// Unassign godoc
// POST /api/v1/admin/schedules/:schedule_id/unassign
// Clears a lab's assignment on the schedule.
func (h *ScheduleHandler) Unassign(c *gin.Context) {
	scheduleID, ok := h.scheduleID(c)
	if !ok {
		return
	}

	var req model.UnassignRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.scheduleService.Unassign(c.Request.Context(), scheduleID, req.LabID); err != nil {
		h.failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "lab unassigned"})
}

// Undo godoc
// POST /api/v1/admin/schedules/:schedule_id/undo
// Reverts the newest recorded switch or assignment.
func (h *ScheduleHandler) Undo(c *gin.Context) {
	scheduleID, ok := h.scheduleID(c)
	if !ok {
		return
	}

	if err := h.scheduleService.Undo(c.Request.Context(), scheduleID); err != nil {
		h.failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "change undone"})
}

// Propagate godoc
// POST /api/v1/admin/schedules/:schedule_id/propagate
// Copies the schedule's assignments onto the semester's live roster.
func (h *ScheduleHandler) Propagate(c *gin.Context) {
	scheduleID, ok := h.scheduleID(c)
	if !ok {
		return
	}

	if err := h.scheduleService.Propagate(c.Request.Context(), scheduleID); err != nil {
		h.failScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "schedule propagated"})
}

func (h *ScheduleHandler) scheduleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("schedule_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// failScheduleError maps scheduling domain errors onto response codes.
func (h *ScheduleHandler) failScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNoTAsSelected):
		response.Fail(c, http.StatusBadRequest, response.ErrNoTAsSelected)
	case errors.Is(err, service.ErrNoLabsInSemester):
		response.Fail(c, http.StatusBadRequest, response.ErrNoLabsInSemester)
	case errors.Is(err, service.ErrTANotEligible):
		response.Fail(c, http.StatusBadRequest, response.ErrTANotEligible)
	case errors.Is(err, service.ErrLabNotInSemester):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	case errors.Is(err, service.ErrLabUnassigned):
		response.Fail(c, http.StatusConflict, response.ErrLabUnassigned)
	case errors.Is(err, service.ErrSwitchUnavailable):
		response.Fail(c, http.StatusConflict, response.ErrSwitchUnavailable)
	case errors.Is(err, service.ErrNothingToUndo):
		response.Fail(c, http.StatusConflict, response.ErrNothingToUndo)
	case errors.Is(err, service.ErrEmptySchedule):
		response.Fail(c, http.StatusConflict, response.ErrEmptySchedule)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
