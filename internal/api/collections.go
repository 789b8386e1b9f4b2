package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub-server/internal/models"
)

// Timetable handlers.

func (h *Handler) ListTimeSlots(c *gin.Context) {
	slots, err := h.service.ListTimeSlots(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TimetableResponse{
		Status: "success",
		Slots:  slots,
	})
}

func (h *Handler) CreateTimeSlot(c *gin.Context) {
	var req models.CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	slot, err := h.service.AddTimeSlot(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TimeSlotResponse{
		Status: "success",
		Slot:   slot,
	})
}

func (h *Handler) UpdateTimeSlot(c *gin.Context) {
	var req models.UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	slot, err := h.service.UpdateTimeSlot(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TimeSlotResponse{
		Status: "success",
		Slot:   slot,
	})
}

func (h *Handler) DeleteTimeSlot(c *gin.Context) {
	if err := h.service.DeleteTimeSlot(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Status:  "success",
		Message: "Time slot deleted",
	})
}

// Library handlers.

func (h *Handler) ListLibraryItems(c *gin.Context) {
	items, err := h.service.ListLibraryItems(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LibraryResponse{
		Status: "success",
		Items:  items,
	})
}

func (h *Handler) CreateLibraryItem(c *gin.Context) {
	var req models.CreateLibraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.service.AddLibraryItem(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LibraryItemResponse{
		Status: "success",
		Item:   item,
	})
}

func (h *Handler) DeleteLibraryItem(c *gin.Context) {
	if err := h.service.DeleteLibraryItem(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Status:  "success",
		Message: "Library item deleted",
	})
}
