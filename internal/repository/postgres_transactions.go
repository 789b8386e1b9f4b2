package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/studyhub/studyhub-server/internal/models"
)

// Transaction (expense/income) repository methods.

func (r *PostgresRepository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, amount, category, description, transaction_type, occurred_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	// Generate a new UUID if not provided
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		txn.ID, txn.UserID, txn.Amount, txn.Category, txn.Description,
		txn.TransactionType, txn.OccurredAt, txn.CreatedAt, txn.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	query := `SELECT * FROM transactions WHERE id = $1`

	var txn models.Transaction
	err := r.db.GetContext(ctx, &txn, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Transaction not found
		}
		return nil, err
	}

	return &txn, nil
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $1, category = $2, description = $3, transaction_type = $4, occurred_at = $5, updated_at = $6
		WHERE id = $7
	`

	txn.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		txn.Amount, txn.Category, txn.Description, txn.TransactionType,
		txn.OccurredAt, txn.UpdatedAt, txn.ID)

	return err
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, id string) error {
	query := `DELETE FROM transactions WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	query := `
		SELECT * FROM transactions
		WHERE user_id = $1
		ORDER BY occurred_at DESC
	`

	var txns []models.Transaction
	if err := r.db.SelectContext(ctx, &txns, query, userID); err != nil {
		return nil, err
	}

	return txns, nil
}

// SummarizeTransactions folds the transactions in [from, to) into one row
// per category: net total (credits positive, debits negative) and the sum
// of absolute amounts. Categories with no activity in the window are
// omitted.
func (r *PostgresRepository) SummarizeTransactions(ctx context.Context, userID string, from, to time.Time) ([]models.CategorySummary, error) {
	query := `
		SELECT category,
		       SUM(CASE WHEN transaction_type = 'credit' THEN amount ELSE -amount END) AS net_total,
		       SUM(ABS(amount)) AS absolute_total
		FROM transactions
		WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		GROUP BY category
		ORDER BY category
	`

	var summary []models.CategorySummary
	if err := r.db.SelectContext(ctx, &summary, query, userID, from, to); err != nil {
		return nil, err
	}

	return summary, nil
}
