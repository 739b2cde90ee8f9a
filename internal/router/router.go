package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joedomabylv/QuickSched/internal/config"
	"github.com/joedomabylv/QuickSched/internal/handler"
	"github.com/joedomabylv/QuickSched/internal/middleware"
	"github.com/joedomabylv/QuickSched/internal/response"
	"github.com/joedomabylv/QuickSched/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Semester *handler.SemesterHandler
	Lab      *handler.LabHandler
	TA       *handler.TAHandler
	Schedule *handler.ScheduleHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireOperatorJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. WebSocket Group (Operator WS Auth) ─────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireOperatorWSAuth(authService))
	{
		ws.GET("/schedules/:schedule_id/stream", handlers.WS.ScheduleStream)
	}

	// ─── 3. Admin Group (Operator JWT) ─────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireOperatorJWT(authService))
	{
		// Semesters
		adminAPI.GET("/semesters", handlers.Semester.ListSemesters)
		adminAPI.GET("/semesters/current", handlers.Semester.CurrentSemester)
		adminAPI.POST("/semesters", handlers.Semester.CreateSemester)
		adminAPI.DELETE("/semesters/:id", handlers.Semester.DeleteSemester)

		// Labs (owned by a semester)
		adminAPI.GET("/semesters/:id/labs", handlers.Lab.ListLabs)
		adminAPI.POST("/semesters/:id/labs", handlers.Lab.CreateLab)
		adminAPI.PUT("/labs/:id", handlers.Lab.UpdateLab)
		adminAPI.DELETE("/labs/:id", handlers.Lab.DeleteLab)

		// TAs
		adminAPI.GET("/tas", handlers.TA.ListTAs)
		adminAPI.GET("/tas/:id", handlers.TA.GetTA)
		adminAPI.POST("/tas", handlers.TA.CreateTA)
		adminAPI.PUT("/tas/:id", handlers.TA.UpdateTA)
		adminAPI.DELETE("/tas/:id", handlers.TA.DeleteTA)
		adminAPI.PUT("/tas/:id/availability", handlers.TA.UpdateAvailability)
		adminAPI.PUT("/tas/:id/experience", handlers.TA.UpdateExperience)
		adminAPI.PUT("/tas/:id/eligibility", handlers.TA.UpdateEligibility)
		adminAPI.GET("/semesters/:id/tas", handlers.TA.ListSemesterTAs)

		// Schedules
		adminAPI.POST("/semesters/:id/schedules/generate", handlers.Schedule.GenerateSchedule)
		adminAPI.GET("/semesters/:id/schedules", handlers.Schedule.ListSchedules)
		adminAPI.GET("/semesters/:id/schedules/latest", handlers.Schedule.LatestSchedule)
		adminAPI.GET("/schedules/:schedule_id", handlers.Schedule.GetSchedule)
		adminAPI.GET("/schedules/:schedule_id/switches", handlers.Schedule.RecommendSwitches)
		adminAPI.POST("/schedules/:schedule_id/switches/confirm", handlers.Schedule.ConfirmSwitch)
		adminAPI.POST("/schedules/:schedule_id/assignments", handlers.Schedule.ManualAssign)
		adminAPI.POST("/schedules/:schedule_id/unassign", handlers.Schedule.Unassign)
		adminAPI.POST("/schedules/:schedule_id/undo", handlers.Schedule.Undo)
		adminAPI.POST("/schedules/:schedule_id/propagate", handlers.Schedule.Propagate)
	}

	return router
}
