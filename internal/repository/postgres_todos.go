package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/studyhub/studyhub-server/internal/models"
)

// Todo repository methods.

func (r *PostgresRepository) CreateTodo(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO todos (id, user_id, task, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// Generate a new UUID if not provided
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.UserID, todo.Task, todo.Completed, todo.CreatedAt, todo.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetTodo(ctx context.Context, id string) (*models.Todo, error) {
	query := `SELECT * FROM todos WHERE id = $1`

	var todo models.Todo
	err := r.db.GetContext(ctx, &todo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Todo not found
		}
		return nil, err
	}

	return &todo, nil
}

func (r *PostgresRepository) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	query := `UPDATE todos SET task = $1, completed = $2, updated_at = $3 WHERE id = $4`

	todo.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query, todo.Task, todo.Completed, todo.UpdatedAt, todo.ID)
	return err
}

func (r *PostgresRepository) DeleteTodo(ctx context.Context, id string) error {
	query := `DELETE FROM todos WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresRepository) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	query := `
		SELECT * FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var todos []models.Todo
	if err := r.db.SelectContext(ctx, &todos, query, userID); err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *PostgresRepository) ListRecentTodos(ctx context.Context, userID string, limit int) ([]models.Todo, error) {
	query := `
		SELECT * FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var todos []models.Todo
	if err := r.db.SelectContext(ctx, &todos, query, userID, limit); err != nil {
		return nil, err
	}

	return todos, nil
}
