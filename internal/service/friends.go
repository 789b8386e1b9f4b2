package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/studyhub/studyhub-server/internal/models"
	"github.com/studyhub/studyhub-server/internal/realtime"
	"github.com/studyhub/studyhub-server/internal/repository"
)

// Social graph operations. Friendship is symmetric: whenever both sides of
// the relation are touched (accept, remove), the repository applies the
// change in a single transaction so the invariant holds under concurrent
// calls. Single-sided mutations (send, reject) rely on the insert/delete
// set semantics of the request table and need no coordination.

func (s *DefaultService) SendFriendRequest(ctx context.Context, senderID, receiverID string) error {
	if senderID == receiverID {
		return fmt.Errorf("%w: cannot send a friend request to yourself", ErrInvalidInput)
	}

	receiver, err := s.repo.GetUserByID(ctx, receiverID)
	if err != nil {
		return fmt.Errorf("error getting receiver: %w", err)
	}

	if receiver == nil {
		return fmt.Errorf("%w: receiver does not exist", ErrNotFound)
	}

	alreadyFriends, err := s.repo.AreFriends(ctx, senderID, receiverID)
	if err != nil {
		return fmt.Errorf("error checking friendship: %w", err)
	}

	if alreadyFriends {
		return fmt.Errorf("%w: already friends", ErrInvalidState)
	}

	// Idempotent: a repeated request leaves a single pending entry.
	if err := s.repo.CreateFriendRequest(ctx, senderID, receiverID); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return fmt.Errorf("%w: receiver does not exist", ErrNotFound)
		}
		return fmt.Errorf("error creating friend request: %w", err)
	}

	s.notify(receiverID, realtime.ResourceRequests)
	return nil
}

func (s *DefaultService) AcceptFriendRequest(ctx context.Context, receiverID, senderID string) error {
	accepted, err := s.repo.AcceptFriendRequest(ctx, receiverID, senderID)
	if err != nil {
		return fmt.Errorf("error accepting friend request: %w", err)
	}

	if !accepted {
		return fmt.Errorf("%w: no pending request from this user", ErrInvalidState)
	}

	s.notify(receiverID, realtime.ResourceFriends)
	s.notify(receiverID, realtime.ResourceRequests)
	s.notify(senderID, realtime.ResourceFriends)
	return nil
}

// RejectFriendRequest clears the pending request and nothing else; it never
// creates a friendship. Rejecting an absent request is a no-op.
func (s *DefaultService) RejectFriendRequest(ctx context.Context, receiverID, senderID string) error {
	if err := s.repo.DeleteFriendRequest(ctx, senderID, receiverID); err != nil {
		return fmt.Errorf("error rejecting friend request: %w", err)
	}

	s.notify(receiverID, realtime.ResourceRequests)
	return nil
}

func (s *DefaultService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	if err := s.repo.RemoveFriendship(ctx, userID, friendID); err != nil {
		return fmt.Errorf("error removing friend: %w", err)
	}

	s.notify(userID, realtime.ResourceFriends)
	s.notify(friendID, realtime.ResourceFriends)
	return nil
}

// ListFriends resolves the user's friends and enriches each entry with the
// current week's study minutes for the leaderboard. Friend ids that no
// longer resolve to a user are skipped.
func (s *DefaultService) ListFriends(ctx context.Context, userID string) ([]models.FriendSummary, error) {
	friendIDs, err := s.repo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing friends: %w", err)
	}

	users, err := s.repo.GetUsersByIDs(ctx, friendIDs)
	if err != nil {
		return nil, fmt.Errorf("error resolving friends: %w", err)
	}

	now := time.Now().UTC()
	friends := make([]models.FriendSummary, 0, len(users))
	for _, u := range users {
		minutes, err := s.WeeklyStudyMinutes(ctx, u.ID, now)
		if err != nil {
			return nil, fmt.Errorf("error aggregating weekly study time: %w", err)
		}

		friends = append(friends, models.FriendSummary{
			UserID:             u.ID,
			Email:              u.Email,
			Name:               u.Name,
			WeeklyStudyMinutes: minutes,
		})
	}

	return friends, nil
}

func (s *DefaultService) ListFriendRequests(ctx context.Context, userID string) ([]models.UserSummary, error) {
	senderIDs, err := s.repo.ListFriendRequestSenders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing friend requests: %w", err)
	}

	users, err := s.repo.GetUsersByIDs(ctx, senderIDs)
	if err != nil {
		return nil, fmt.Errorf("error resolving request senders: %w", err)
	}

	requests := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		requests = append(requests, models.UserSummary{
			UserID: u.ID,
			Email:  u.Email,
			Name:   u.Name,
		})
	}

	return requests, nil
}

func (s *DefaultService) SearchUsers(ctx context.Context, callerID, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidInput)
	}

	users, err := s.repo.SearchUsers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}

	friendIDs, err := s.repo.ListFriendIDs(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("error listing friends: %w", err)
	}

	isFriend := make(map[string]bool, len(friendIDs))
	for _, id := range friendIDs {
		isFriend[id] = true
	}

	results := make([]models.SearchResult, 0, len(users))
	for _, u := range users {
		if u.ID == callerID {
			continue
		}
		results = append(results, models.SearchResult{
			UserID:   u.ID,
			Email:    u.Email,
			Name:     u.Name,
			IsFriend: isFriend[u.ID],
		})
	}

	return results, nil
}

// FriendTodos returns a friend's five most recent todos. Only friends may
// look at each other's lists.
func (s *DefaultService) FriendTodos(ctx context.Context, userID, friendID string) ([]models.Todo, error) {
	friends, err := s.repo.AreFriends(ctx, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("error checking friendship: %w", err)
	}

	if !friends {
		return nil, fmt.Errorf("%w: not friends with this user", ErrUnauthorized)
	}

	todos, err := s.repo.ListRecentTodos(ctx, friendID, 5)
	if err != nil {
		return nil, fmt.Errorf("error listing friend todos: %w", err)
	}

	return todos, nil
}
