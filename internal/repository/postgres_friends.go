package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// foreignKeyViolation is the Postgres error code raised when an insert
// references a missing row.
const foreignKeyViolation = "23503"

// Social graph repository methods.
//
// Friendships are stored as symmetric row pairs; every path that creates or
// removes a pair does so inside a transaction so the relation can never be
// observed half-applied.

func (r *PostgresRepository) CreateFriendRequest(ctx context.Context, senderID, receiverID string) error {
	// ON CONFLICT DO NOTHING gives the insert set semantics: sending the
	// same request twice leaves a single pending row.
	query := `
		INSERT INTO friend_requests (sender_id, receiver_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (sender_id, receiver_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, senderID, receiverID, time.Now().UTC())

	// The receiver may be deleted between the caller's existence check and
	// this insert; surface that as the missing-row case rather than a
	// generic database failure.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
		return fmt.Errorf("%w: receiver", ErrMissingReference)
	}

	return err
}

func (r *PostgresRepository) DeleteFriendRequest(ctx context.Context, senderID, receiverID string) error {
	query := `DELETE FROM friend_requests WHERE sender_id = $1 AND receiver_id = $2`

	_, err := r.db.ExecContext(ctx, query, senderID, receiverID)
	return err
}

func (r *PostgresRepository) HasFriendRequest(ctx context.Context, senderID, receiverID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM friend_requests WHERE sender_id = $1 AND receiver_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, senderID, receiverID); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *PostgresRepository) ListFriendRequestSenders(ctx context.Context, receiverID string) ([]string, error) {
	query := `SELECT sender_id FROM friend_requests WHERE receiver_id = $1 ORDER BY created_at`

	var senders []string
	if err := r.db.SelectContext(ctx, &senders, query, receiverID); err != nil {
		return nil, err
	}

	return senders, nil
}

// AcceptFriendRequest consumes the pending request and creates the
// friendship row pair in a single transaction. The returned bool reports
// whether a pending request existed: the DELETE both checks the
// precondition and row-locks the request, so two concurrent accepts
// serialize and exactly one of them observes the request.
func (r *PostgresRepository) AcceptFriendRequest(ctx context.Context, receiverID, senderID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM friend_requests WHERE sender_id = $1 AND receiver_id = $2`,
		senderID, receiverID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		// Request already handled or withdrawn; nothing to apply.
		err = tx.Rollback()
		return false, err
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO friendships (user_id, friend_id, created_at)
		 VALUES ($1, $2, $3), ($2, $1, $3)
		 ON CONFLICT (user_id, friend_id) DO NOTHING`,
		receiverID, senderID, now)
	if err != nil {
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}

// RemoveFriendship deletes both directions of the relation together so the
// symmetry invariant holds after removal.
func (r *PostgresRepository) RemoveFriendship(ctx context.Context, userID, friendID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM friendships
		 WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`,
		userID, friendID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM friendships WHERE user_id = $1 AND friend_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, friendID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return exists, nil
}

func (r *PostgresRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT friend_id FROM friendships WHERE user_id = $1 ORDER BY created_at`

	var friendIDs []string
	if err := r.db.SelectContext(ctx, &friendIDs, query, userID); err != nil {
		return nil, err
	}

	return friendIDs, nil
}
