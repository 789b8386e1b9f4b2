package api_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/studyhub-server/internal/api/testutils"
)

// TestConcurrentAcceptFriendRequest fires many accepts of the same pending
// request in parallel. Exactly one must win; the rest observe the request as
// already handled, and the resulting friendship is a single symmetric pair.
func TestConcurrentAcceptFriendRequest(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	jwtSecret := string(testCtx.JWTSecret)
	bobID, bobJWT := testutils.CreateUser(t, testCtx.Repository, jwtSecret, "bob@example.com", "Bob")

	code := sendFriendRequest(testCtx, testCtx.TestUserJWT, bobID)
	require.Equal(t, http.StatusOK, code)

	const numAccepts = 10

	var wg sync.WaitGroup
	results := make(chan int, numAccepts)

	for i := 0; i < numAccepts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := testutils.PerformRequest(
				testCtx.Router,
				http.MethodPost,
				fmt.Sprintf("/api/friend-requests/%s/accept", testCtx.TestUserID),
				nil,
				testutils.AuthHeaders(bobJWT),
			)
			results <- w.Code
		}()
	}

	wg.Wait()
	close(results)

	okCount := 0
	conflictCount := 0
	for code := range results {
		switch code {
		case http.StatusOK:
			okCount++
		case http.StatusConflict:
			conflictCount++
		default:
			t.Errorf("unexpected status code %d", code)
		}
	}

	assert.Equal(t, 1, okCount, "exactly one accept should succeed")
	assert.Equal(t, numAccepts-1, conflictCount)

	// A single friendship, visible from both sides
	assert.Len(t, listFriends(t, testCtx, bobJWT), 1)
	assert.Len(t, listFriends(t, testCtx, testCtx.TestUserJWT), 1)
}

// TestConcurrentSendFriendRequest verifies that parallel duplicate sends
// collapse into one pending request.
func TestConcurrentSendFriendRequest(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	jwtSecret := string(testCtx.JWTSecret)
	bobID, bobJWT := testutils.CreateUser(t, testCtx.Repository, jwtSecret, "bob@example.com", "Bob")

	const numSends = 10

	var wg sync.WaitGroup
	results := make(chan int, numSends)

	for i := 0; i < numSends; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- sendFriendRequest(testCtx, testCtx.TestUserJWT, bobID)
		}()
	}

	wg.Wait()
	close(results)

	for code := range results {
		assert.Equal(t, http.StatusOK, code)
	}

	assert.Len(t, listFriendRequests(t, testCtx, bobJWT), 1)
}
