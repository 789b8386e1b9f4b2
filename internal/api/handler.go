package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub-server/internal/models"
	"github.com/studyhub/studyhub-server/internal/realtime"
	"github.com/studyhub/studyhub-server/internal/service"
)

// Handler wires the HTTP routes to the service layer
type Handler struct {
	service service.Service
	hub     *realtime.Hub
}

// NewHandler creates a new API handler. The hub may be nil; the change feed
// endpoint then rejects connections.
func NewHandler(svc service.Service, hub *realtime.Hub) *Handler {
	return &Handler{
		service: svc,
		hub:     hub,
	}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public routes
	api.POST("/auth/signup", h.SignUp)
	api.POST("/auth/login", h.Login)
	api.GET("/ws", h.ChangeFeed)

	// Authenticated routes
	protected := api.Group("", AuthMiddleware())

	protected.GET("/users/me", h.GetProfile)
	protected.GET("/users/search", h.SearchUsers)

	protected.GET("/friends", h.ListFriends)
	protected.DELETE("/friends/:friendId", h.RemoveFriend)
	protected.GET("/friends/:friendId/todos", h.FriendTodos)

	protected.GET("/friend-requests", h.ListFriendRequests)
	protected.POST("/friend-requests", h.SendFriendRequest)
	protected.POST("/friend-requests/:senderId/accept", h.AcceptFriendRequest)
	protected.POST("/friend-requests/:senderId/reject", h.RejectFriendRequest)

	protected.GET("/sessions", h.ListStudySessions)
	protected.POST("/sessions", h.CreateStudySession)
	protected.POST("/sessions/:id/finish", h.FinishStudySession)
	protected.GET("/study/weekly", h.WeeklyStudyTime)

	protected.GET("/todos", h.ListTodos)
	protected.POST("/todos", h.CreateTodo)
	protected.PUT("/todos/:id", h.UpdateTodo)
	protected.DELETE("/todos/:id", h.DeleteTodo)

	protected.GET("/expenses", h.ListTransactions)
	protected.POST("/expenses", h.CreateTransaction)
	protected.PUT("/expenses/:id", h.UpdateTransaction)
	protected.DELETE("/expenses/:id", h.DeleteTransaction)
	protected.GET("/expenses/summary", h.MonthlySummary)

	protected.GET("/timetable", h.ListTimeSlots)
	protected.POST("/timetable", h.CreateTimeSlot)
	protected.PUT("/timetable/:id", h.UpdateTimeSlot)
	protected.DELETE("/timetable/:id", h.DeleteTimeSlot)

	protected.GET("/library", h.ListLibraryItems)
	protected.POST("/library", h.CreateLibraryItem)
	protected.DELETE("/library/:id", h.DeleteLibraryItem)
}

// currentUserID returns the authenticated user id set by AuthMiddleware.
func currentUserID(c *gin.Context) string {
	return c.MustGet("userId").(string)
}

// respondError maps service failures to HTTP responses. Anything outside
// the typed taxonomy is treated as a backend failure.
func respondError(c *gin.Context, err error) {
	status := http.StatusServiceUnavailable
	code := "BACKEND_UNAVAILABLE"

	switch {
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, service.ErrUnauthorized):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, service.ErrInvalidState):
		status, code = http.StatusConflict, "INVALID_STATE"
	case errors.Is(err, service.ErrInvalidInput):
		status, code = http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, service.ErrEmailTaken):
		status, code = http.StatusConflict, "EMAIL_TAKEN"
	}

	c.JSON(status, models.ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: err.Error(),
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "INVALID_REQUEST",
		Message: err.Error(),
	})
}

// Authentication handlers

func (h *Handler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetProfile(c *gin.Context) {
	resp, err := h.service.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
