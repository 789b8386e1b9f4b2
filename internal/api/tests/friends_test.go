package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/studyhub-server/internal/api/testutils"
	"github.com/studyhub/studyhub-server/internal/models"
	"github.com/studyhub/studyhub-server/internal/repository"
)

func listFriends(t *testing.T, testCtx *testutils.TestContext, token string) []models.FriendSummary {
	t.Helper()

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/friends",
		nil,
		testutils.AuthHeaders(token),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.FriendsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Friends
}

func listFriendRequests(t *testing.T, testCtx *testutils.TestContext, token string) []models.UserSummary {
	t.Helper()

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/friend-requests",
		nil,
		testutils.AuthHeaders(token),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.FriendRequestsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Requests
}

func sendFriendRequest(testCtx *testutils.TestContext, token, receiverID string) int {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/friend-requests",
		models.SendFriendRequestRequest{UserID: receiverID},
		testutils.AuthHeaders(token),
	)
	return w.Code
}

func TestSendFriendRequest(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	jwtSecret := string(testCtx.JWTSecret)
	bobID, bobJWT := testutils.CreateUser(t, testCtx.Repository, jwtSecret, "bob@example.com", "Bob")

	// Test case 1: Successful request
	code := sendFriendRequest(testCtx, testCtx.TestUserJWT, bobID)
	assert.Equal(t, http.StatusOK, code)

	requests := listFriendRequests(t, testCtx, bobJWT)
	require.Len(t, requests, 1)
	assert.Equal(t, testCtx.TestUserID, requests[0].UserID)

	// Request entries only describe the sender; the friendship flag belongs
	// to search results
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/friend-requests",
		nil,
		testutils.AuthHeaders(bobJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "isFriend")

	// Test case 2: Sending the same request twice leaves one pending entry
	code = sendFriendRequest(testCtx, testCtx.TestUserJWT, bobID)
	assert.Equal(t, http.StatusOK, code)

	requests = listFriendRequests(t, testCtx, bobJWT)
	assert.Len(t, requests, 1)

	// Test case 3: Missing receiver fails with NotFound and mutates nothing
	code = sendFriendRequest(testCtx, testCtx.TestUserJWT, "doesNotExist")
	assert.Equal(t, http.StatusNotFound, code)

	requests = listFriendRequests(t, testCtx, bobJWT)
	assert.Len(t, requests, 1)

	// Test case 4: Self-request rejected
	code = sendFriendRequest(testCtx, testCtx.TestUserJWT, testCtx.TestUserID)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFriendRequestToDeletedReceiver(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	jwtSecret := string(testCtx.JWTSecret)
	bobID, _ := testutils.CreateUser(t, testCtx.Repository, jwtSecret, "bob@example.com", "Bob")

	// Delete the receiver out from under a sender that already passed the
	// existence check, as a concurrent account deletion would.
	_, err := testCtx.DB.Exec("DELETE FROM users WHERE id = $1", bobID)
	require.NoError(t, err)

	err = testCtx.Repository.CreateFriendRequest(context.Background(), testCtx.TestUserID, bobID)
	assert.ErrorIs(t, err, repository.ErrMissingReference)

	// Through the API the sender sees not-found, not a backend failure
	code := sendFriendRequest(testCtx, testCtx.TestUserJWT, bobID)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAcceptFriendRequest(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	jwtSecret := string(testCtx.JWTSecret)
	bobID, bobJWT := testutils.CreateUser(t, testCtx.Repository, jwtSecret, "bob@example.com", "Bob")

	code := sendFriendRequest(testCtx, testCtx.TestUserJWT, bobID)
	require.Equal(t, http.StatusOK, code)

	// Test case 1: Accepting creates the friendship on both sides
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/friend-requests/%s/accept", testCtx.TestUserID),
		nil,
		testutils.AuthHeaders(bobJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	bobFriends := listFriends(t, testCtx, bobJWT)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, testCtx.TestUserID, bobFriends[0].UserID)

	aliceFriends := listFriends(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, bobID, aliceFriends[0].UserID)

	// The pending request is consumed
	assert.Len(t, listFriendRequests(t, testCtx, bobJWT), 0)

	// Test case 2: Accepting again fails, request already handled
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/friend-requests/%s/accept", testCtx.TestUserID),
		nil,
		testutils.AuthHeaders(bobJWT),
	)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Test case 3: Requesting an existing friend is rejected
	code = sendFriendRequest(testCtx, testCtx.TestUserJWT, bobID)
	assert.Equal(t, http.StatusConflict, code)
}

func TestRejectFriendRequest(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	jwtSecret := string(testCtx.JWTSecret)
	bobID, bobJWT := testutils.CreateUser(t, testCtx.Repository, jwtSecret, "bob@example.com", "Bob")

	code := sendFriendRequest(testCtx, testCtx.TestUserJWT, bobID)
	require.Equal(t, http.StatusOK, code)

	// Rejecting clears the request and never creates a friendship
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/friend-requests/%s/reject", testCtx.TestUserID),
		nil,
		testutils.AuthHeaders(bobJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, listFriendRequests(t, testCtx, bobJWT), 0)
	assert.Len(t, listFriends(t, testCtx, bobJWT), 0)
	assert.Len(t, listFriends(t, testCtx, testCtx.TestUserJWT), 0)

	// Rejecting is idempotent
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/friend-requests/%s/reject", testCtx.TestUserID),
		nil,
		testutils.AuthHeaders(bobJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// Accepting after rejection fails
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/friend-requests/%s/accept", testCtx.TestUserID),
		nil,
		testutils.AuthHeaders(bobJWT),
	)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRemoveFriend(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	jwtSecret := string(testCtx.JWTSecret)
	bobID, bobJWT := testutils.CreateUser(t, testCtx.Repository, jwtSecret, "bob@example.com", "Bob")

	code := sendFriendRequest(testCtx, testCtx.TestUserJWT, bobID)
	require.Equal(t, http.StatusOK, code)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/friend-requests/%s/accept", testCtx.TestUserID),
		nil,
		testutils.AuthHeaders(bobJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	// Removing from one side removes the relation from both sides
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/friends/%s", bobID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, listFriends(t, testCtx, testCtx.TestUserJWT), 0)
	assert.Len(t, listFriends(t, testCtx, bobJWT), 0)
}

func TestSearchUsers(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	jwtSecret := string(testCtx.JWTSecret)
	bobID, bobJWT := testutils.CreateUser(t, testCtx.Repository, jwtSecret, "bob@example.com", "Bob")
	testutils.CreateUser(t, testCtx.Repository, jwtSecret, "carol@example.com", "Carol")

	// Matching is a substring match over email and name, caller excluded
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/users/search?q=example.com",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SearchUsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 2)
	for _, u := range resp.Users {
		assert.NotEqual(t, testCtx.TestUserID, u.UserID)
		assert.False(t, u.IsFriend)
	}

	// Once friends, the flag flips
	require.Equal(t, http.StatusOK, sendFriendRequest(testCtx, testCtx.TestUserJWT, bobID))
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/friend-requests/%s/accept", testCtx.TestUserID),
		nil,
		testutils.AuthHeaders(bobJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/users/search?q=Bob",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 1)
	assert.True(t, resp.Users[0].IsFriend)

	// Empty query is rejected
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/users/search?q=",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFriendTodos(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	jwtSecret := string(testCtx.JWTSecret)
	bobID, bobJWT := testutils.CreateUser(t, testCtx.Repository, jwtSecret, "bob@example.com", "Bob")

	// Bob has a todo
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/todos",
		models.CreateTodoRequest{Task: "Read chapter 4"},
		testutils.AuthHeaders(bobJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	// Not friends yet: forbidden
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/friends/%s/todos", bobID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Become friends
	require.Equal(t, http.StatusOK, sendFriendRequest(testCtx, testCtx.TestUserJWT, bobID))
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/friend-requests/%s/accept", testCtx.TestUserID),
		nil,
		testutils.AuthHeaders(bobJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/friends/%s/todos", bobID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var todos models.TodosResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
	require.Len(t, todos.Todos, 1)
	assert.Equal(t, "Read chapter 4", todos.Todos[0].Task)
}
