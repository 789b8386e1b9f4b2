package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub-server/internal/models"
)

// Social graph handlers. The acting user always comes from the JWT, so a
// caller can only ever send, accept, reject or remove on their own behalf.

func (h *Handler) SendFriendRequest(c *gin.Context) {
	var req models.SendFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.SendFriendRequest(c.Request.Context(), currentUserID(c), req.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Status:  "success",
		Message: "Friend request sent",
	})
}

func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	senderID := c.Param("senderId")

	if err := h.service.AcceptFriendRequest(c.Request.Context(), currentUserID(c), senderID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Status:  "success",
		Message: "Friend request accepted",
	})
}

func (h *Handler) RejectFriendRequest(c *gin.Context) {
	senderID := c.Param("senderId")

	if err := h.service.RejectFriendRequest(c.Request.Context(), currentUserID(c), senderID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Status:  "success",
		Message: "Friend request rejected",
	})
}

func (h *Handler) RemoveFriend(c *gin.Context) {
	friendID := c.Param("friendId")

	if err := h.service.RemoveFriend(c.Request.Context(), currentUserID(c), friendID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Status:  "success",
		Message: "Friend removed",
	})
}

// ListFriends returns the user's friends ordered for leaderboard display,
// most weekly study minutes first.
func (h *Handler) ListFriends(c *gin.Context) {
	friends, err := h.service.ListFriends(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	sort.SliceStable(friends, func(i, j int) bool {
		return friends[i].WeeklyStudyMinutes > friends[j].WeeklyStudyMinutes
	})

	c.JSON(http.StatusOK, models.FriendsResponse{
		Status:  "success",
		Friends: friends,
	})
}

func (h *Handler) ListFriendRequests(c *gin.Context) {
	requests, err := h.service.ListFriendRequests(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.FriendRequestsResponse{
		Status:   "success",
		Requests: requests,
	})
}

func (h *Handler) SearchUsers(c *gin.Context) {
	users, err := h.service.SearchUsers(c.Request.Context(), currentUserID(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SearchUsersResponse{
		Status: "success",
		Users:  users,
	})
}

func (h *Handler) FriendTodos(c *gin.Context) {
	todos, err := h.service.FriendTodos(c.Request.Context(), currentUserID(c), c.Param("friendId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TodosResponse{
		Status: "success",
		Todos:  todos,
	})
}
