package service

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub-server/internal/models"
	"github.com/studyhub/studyhub-server/internal/realtime"
)

// Timetable operations.

func (s *DefaultService) ListTimeSlots(ctx context.Context, userID string) ([]models.TimeSlot, error) {
	slots, err := s.repo.ListTimeSlots(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing timetable: %w", err)
	}

	return slots, nil
}

func (s *DefaultService) AddTimeSlot(ctx context.Context, userID string, req models.CreateTimeSlotRequest) (*models.TimeSlot, error) {
	slot := &models.TimeSlot{
		UserID:    userID,
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Subject:   req.Subject,
	}

	if err := s.repo.CreateTimeSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("error creating time slot: %w", err)
	}

	s.notify(userID, realtime.ResourceTimetable)
	return slot, nil
}

func (s *DefaultService) UpdateTimeSlot(ctx context.Context, userID, slotID string, req models.UpdateTimeSlotRequest) (*models.TimeSlot, error) {
	slot, err := s.getOwnedTimeSlot(ctx, userID, slotID)
	if err != nil {
		return nil, err
	}

	if req.Day != nil {
		slot.Day = *req.Day
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.Subject != nil {
		slot.Subject = *req.Subject
	}

	if err := s.repo.UpdateTimeSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("error updating time slot: %w", err)
	}

	s.notify(userID, realtime.ResourceTimetable)
	return slot, nil
}

func (s *DefaultService) DeleteTimeSlot(ctx context.Context, userID, slotID string) error {
	if _, err := s.getOwnedTimeSlot(ctx, userID, slotID); err != nil {
		return err
	}

	if err := s.repo.DeleteTimeSlot(ctx, slotID); err != nil {
		return fmt.Errorf("error deleting time slot: %w", err)
	}

	s.notify(userID, realtime.ResourceTimetable)
	return nil
}

func (s *DefaultService) getOwnedTimeSlot(ctx context.Context, userID, slotID string) (*models.TimeSlot, error) {
	slot, err := s.repo.GetTimeSlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("error getting time slot: %w", err)
	}

	if slot == nil || slot.UserID != userID {
		return nil, fmt.Errorf("%w: time slot does not exist", ErrNotFound)
	}

	return slot, nil
}

// Library operations. Items only reference files held by the external
// storage provider; deleting an item never touches the file.

func (s *DefaultService) ListLibraryItems(ctx context.Context, userID string) ([]models.LibraryItem, error) {
	items, err := s.repo.ListLibraryItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing library items: %w", err)
	}

	return items, nil
}

func (s *DefaultService) AddLibraryItem(ctx context.Context, userID string, req models.CreateLibraryItemRequest) (*models.LibraryItem, error) {
	item := &models.LibraryItem{
		UserID:      userID,
		Title:       req.Title,
		DriveFileID: req.DriveFileID,
	}

	if err := s.repo.CreateLibraryItem(ctx, item); err != nil {
		return nil, fmt.Errorf("error creating library item: %w", err)
	}

	s.notify(userID, realtime.ResourceLibrary)
	return item, nil
}

func (s *DefaultService) DeleteLibraryItem(ctx context.Context, userID, itemID string) error {
	item, err := s.repo.GetLibraryItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("error getting library item: %w", err)
	}

	if item == nil || item.UserID != userID {
		return fmt.Errorf("%w: library item does not exist", ErrNotFound)
	}

	if err := s.repo.DeleteLibraryItem(ctx, itemID); err != nil {
		return fmt.Errorf("error deleting library item: %w", err)
	}

	s.notify(userID, realtime.ResourceLibrary)
	return nil
}
