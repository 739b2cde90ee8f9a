package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joedomabylv/QuickSched/internal/middleware"
	"github.com/joedomabylv/QuickSched/internal/model"
	"github.com/joedomabylv/QuickSched/internal/response"
	"github.com/joedomabylv/QuickSched/internal/service"
	"github.com/joedomabylv/QuickSched/internal/validator"
)

// AuthHandler handles operator authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// POST /api/v1/auth/login
// Verifies operator credentials and returns a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	operator, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":    token,
		"operator": operator,
	})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the authenticated operator's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	operator, err := h.authService.GetOperator(c.Request.Context(), claims.OperatorID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"operator": operator})
}
