package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/studyhub-server/internal/api/testutils"
	"github.com/studyhub/studyhub-server/internal/models"
)

func addTransaction(t *testing.T, testCtx *testutils.TestContext, token string, req models.CreateTransactionRequest) *models.Transaction {
	t.Helper()

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/expenses",
		req,
		testutils.AuthHeaders(token),
	)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp models.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Transaction)
	return resp.Transaction
}

func TestCreateTransaction(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	date := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC).Format(time.RFC3339)

	// Test case 1: Type defaults to debit when omitted
	txn := addTransaction(t, testCtx, testCtx.TestUserJWT, models.CreateTransactionRequest{
		Amount:   25.50,
		Category: "Food",
		Date:     date,
	})
	assert.Equal(t, models.TransactionDebit, txn.TransactionType)
	assert.Equal(t, 25.50, txn.Amount)

	// Test case 2: Unknown category rejected
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/expenses",
		models.CreateTransactionRequest{
			Amount:   10,
			Category: "Yachts",
			Date:     date,
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 3: Malformed date rejected
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/expenses",
		models.CreateTransactionRequest{
			Amount:   10,
			Category: "Food",
			Date:     "10/03/2026",
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactionOwnership(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	jwtSecret := string(testCtx.JWTSecret)
	_, bobJWT := testutils.CreateUser(t, testCtx.Repository, jwtSecret, "bob@example.com", "Bob")

	date := time.Now().UTC().Format(time.RFC3339)
	txn := addTransaction(t, testCtx, testCtx.TestUserJWT, models.CreateTransactionRequest{
		Amount:   12,
		Category: "Transportation",
		Date:     date,
	})

	// Another user cannot update or delete it
	newAmount := 99.0
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/expenses/%s", txn.ID),
		models.UpdateTransactionRequest{Amount: &newAmount},
		testutils.AuthHeaders(bobJWT),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/expenses/%s", txn.ID),
		nil,
		testutils.AuthHeaders(bobJWT),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The owner can
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/expenses/%s", txn.ID),
		models.UpdateTransactionRequest{Amount: &newAmount},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/expenses/%s", txn.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/expenses",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var list models.TransactionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Transactions, 0)
}

func TestMonthlySummary(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	march := func(day int) string {
		return time.Date(2026, time.March, day, 10, 0, 0, 0, time.UTC).Format(time.RFC3339)
	}

	addTransaction(t, testCtx, testCtx.TestUserJWT, models.CreateTransactionRequest{
		Amount: 100, Category: "Food", Date: march(3),
	})
	addTransaction(t, testCtx, testCtx.TestUserJWT, models.CreateTransactionRequest{
		Amount: 30, Category: "Food", Date: march(5), TransactionType: models.TransactionCredit,
	})
	addTransaction(t, testCtx, testCtx.TestUserJWT, models.CreateTransactionRequest{
		Amount: 50, Category: "Books & Supplies", Date: march(20),
	})

	// Outside the month window, must not count
	addTransaction(t, testCtx, testCtx.TestUserJWT, models.CreateTransactionRequest{
		Amount:   999,
		Category: "Food",
		Date:     time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
	})

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/expenses/summary?year=2026&month=3",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.MonthlySummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, 3, resp.Month)

	byCategory := make(map[string]models.CategorySummary)
	for _, entry := range resp.Categories {
		byCategory[entry.Category] = entry
	}
	require.Len(t, byCategory, 2)

	food := byCategory["Food"]
	assert.InDelta(t, -70, food.NetTotal, 0.001)
	assert.InDelta(t, 130, food.AbsoluteTotal, 0.001)

	books := byCategory["Books & Supplies"]
	assert.InDelta(t, -50, books.NetTotal, 0.001)
	assert.InDelta(t, 50, books.AbsoluteTotal, 0.001)

	// Both categories are net-negative, so both absolute totals count
	assert.InDelta(t, 180, resp.TotalExpenditure, 0.001)

	// Test case: a net-positive category does not add to expenditure
	addTransaction(t, testCtx, testCtx.TestUserJWT, models.CreateTransactionRequest{
		Amount: 500, Category: "Other", Date: march(15), TransactionType: models.TransactionCredit,
	})

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/expenses/summary?year=2026&month=3",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 180, resp.TotalExpenditure, 0.001)

	// Test case: month out of range
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/expenses/summary?year=2026&month=13",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
