package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/studyhub-server/internal/api/testutils"
	"github.com/studyhub/studyhub-server/internal/models"
)

// TestConcurrentFinishStudySession fires many finishes of the same
// in-progress session in parallel. Exactly one must win; the rest see the
// session as already finished, and the cumulative study time is bumped
// once, not once per caller.
func TestConcurrentFinishStudySession(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	startedAt := time.Now().UTC().Add(-time.Hour)
	session := &models.StudySession{
		UserID:    testCtx.TestUserID,
		StartedAt: startedAt,
		CreatedAt: startedAt,
	}
	require.NoError(t, testCtx.Repository.CreateStudySession(context.Background(), session))

	const numFinishes = 10

	var wg sync.WaitGroup
	results := make(chan int, numFinishes)

	for i := 0; i < numFinishes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := testutils.PerformRequest(
				testCtx.Router,
				http.MethodPost,
				fmt.Sprintf("/api/sessions/%s/finish", session.ID),
				nil,
				testutils.AuthHeaders(testCtx.TestUserJWT),
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

	assert.Equal(t, 1, okCount, "exactly one finish should succeed")
	assert.Equal(t, numFinishes-1, conflictCount)

	// The hour-long session contributes its duration exactly once
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/users/me",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.GreaterOrEqual(t, profile.StudyTime, 60)
	assert.LessOrEqual(t, profile.StudyTime, 61)
}
