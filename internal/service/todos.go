package service

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub-server/internal/models"
	"github.com/studyhub/studyhub-server/internal/realtime"
)

// Todo operations. Todos are strictly owner-scoped; a todo belonging to
// someone else is reported as missing, not as forbidden, so ids cannot be
// probed.

func (s *DefaultService) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	todos, err := s.repo.ListTodos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}

	return todos, nil
}

func (s *DefaultService) AddTodo(ctx context.Context, userID string, req models.CreateTodoRequest) (*models.Todo, error) {
	todo := &models.Todo{
		UserID: userID,
		Task:   req.Task,
	}

	if err := s.repo.CreateTodo(ctx, todo); err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}

	s.notify(userID, realtime.ResourceTodos)
	return todo, nil
}

func (s *DefaultService) UpdateTodo(ctx context.Context, userID, todoID string, req models.UpdateTodoRequest) (*models.Todo, error) {
	todo, err := s.getOwnedTodo(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if req.Task != nil {
		todo.Task = *req.Task
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.repo.UpdateTodo(ctx, todo); err != nil {
		return nil, fmt.Errorf("error updating todo: %w", err)
	}

	s.notify(userID, realtime.ResourceTodos)
	return todo, nil
}

func (s *DefaultService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	if _, err := s.getOwnedTodo(ctx, userID, todoID); err != nil {
		return err
	}

	if err := s.repo.DeleteTodo(ctx, todoID); err != nil {
		return fmt.Errorf("error deleting todo: %w", err)
	}

	s.notify(userID, realtime.ResourceTodos)
	return nil
}

func (s *DefaultService) getOwnedTodo(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	todo, err := s.repo.GetTodo(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("error getting todo: %w", err)
	}

	if todo == nil || todo.UserID != userID {
		return nil, fmt.Errorf("%w: todo does not exist", ErrNotFound)
	}

	return todo, nil
}
