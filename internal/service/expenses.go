package service

import (
	"context"
	"fmt"
	"time"

	"github.com/studyhub/studyhub-server/internal/models"
	"github.com/studyhub/studyhub-server/internal/realtime"
)

// Transaction (expense/income) operations. Categories are restricted to
// the fixed student set; a transaction type left empty defaults to debit at
// this edge, so every stored row carries an explicit type.

func (s *DefaultService) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	txns, err := s.repo.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}

	return txns, nil
}

func (s *DefaultService) AddTransaction(ctx context.Context, userID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	if !models.ValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	occurredAt, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be RFC 3339", ErrInvalidInput)
	}

	transactionType := req.TransactionType
	if transactionType == "" {
		transactionType = models.TransactionDebit
	}

	txn := &models.Transaction{
		UserID:          userID,
		Amount:          req.Amount,
		Category:        req.Category,
		Description:     req.Description,
		TransactionType: transactionType,
		OccurredAt:      occurredAt.UTC(),
	}

	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("error creating transaction: %w", err)
	}

	s.notify(userID, realtime.ResourceExpenses)
	return txn, nil
}

func (s *DefaultService) UpdateTransaction(ctx context.Context, userID, txnID string, req models.UpdateTransactionRequest) (*models.Transaction, error) {
	txn, err := s.getOwnedTransaction(ctx, userID, txnID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
		txn.Category = *req.Category
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Date != nil {
		occurredAt, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be RFC 3339", ErrInvalidInput)
		}
		txn.OccurredAt = occurredAt.UTC()
	}
	if req.TransactionType != nil {
		txn.TransactionType = *req.TransactionType
	}

	if err := s.repo.UpdateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("error updating transaction: %w", err)
	}

	s.notify(userID, realtime.ResourceExpenses)
	return txn, nil
}

func (s *DefaultService) DeleteTransaction(ctx context.Context, userID, txnID string) error {
	if _, err := s.getOwnedTransaction(ctx, userID, txnID); err != nil {
		return err
	}

	if err := s.repo.DeleteTransaction(ctx, txnID); err != nil {
		return fmt.Errorf("error deleting transaction: %w", err)
	}

	s.notify(userID, realtime.ResourceExpenses)
	return nil
}

func (s *DefaultService) getOwnedTransaction(ctx context.Context, userID, txnID string) (*models.Transaction, error) {
	txn, err := s.repo.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, fmt.Errorf("error getting transaction: %w", err)
	}

	if txn == nil || txn.UserID != userID {
		return nil, fmt.Errorf("%w: transaction does not exist", ErrNotFound)
	}

	return txn, nil
}
