package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub-server/internal/models"
	"github.com/studyhub/studyhub-server/internal/service"
)

// Study session handlers.

// CreateStudySession either records a completed session (positive
// durationMinutes in the body) or starts an in-progress one (no duration).
func (h *Handler) CreateStudySession(c *gin.Context) {
	// An empty body starts an in-progress session, so EOF is fine here.
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	var (
		session *models.StudySession
		err     error
	)
	if req.DurationMinutes > 0 {
		session, err = h.service.RecordStudySession(c.Request.Context(), currentUserID(c), req.DurationMinutes)
	} else {
		session, err = h.service.StartStudySession(c.Request.Context(), currentUserID(c))
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		Status:  "success",
		Session: session,
	})
}

func (h *Handler) FinishStudySession(c *gin.Context) {
	session, err := h.service.FinishStudySession(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		Status:  "success",
		Session: session,
	})
}

func (h *Handler) ListStudySessions(c *gin.Context) {
	sessions, err := h.service.ListStudySessions(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SessionsResponse{
		Status:   "success",
		Sessions: sessions,
	})
}

func (h *Handler) WeeklyStudyTime(c *gin.Context) {
	now := time.Now().UTC()

	minutes, err := h.service.WeeklyStudyMinutes(c.Request.Context(), currentUserID(c), now)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.WeeklyStudyResponse{
		Status:       "success",
		TotalMinutes: minutes,
		WeekStart:    service.StartOfWeek(now).Format(time.RFC3339),
	})
}
