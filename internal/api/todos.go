package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub-server/internal/models"
)

// Todo handlers.

func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.service.ListTodos(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TodosResponse{
		Status: "success",
		Todos:  todos,
	})
}

func (h *Handler) CreateTodo(c *gin.Context) {
	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	todo, err := h.service.AddTodo(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TodoResponse{
		Status: "success",
		Todo:   todo,
	})
}

func (h *Handler) UpdateTodo(c *gin.Context) {
	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	todo, err := h.service.UpdateTodo(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TodoResponse{
		Status: "success",
		Todo:   todo,
	})
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	if err := h.service.DeleteTodo(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Status:  "success",
		Message: "Todo deleted",
	})
}
