package core

import (
	"carecore/pkg/domain"
	"context"
)

// CreateEvent schedules a new appointment. An event whose end does not come
// strictly after its start is rejected before the store is touched.
func (s *Service) CreateEvent(ctx context.Context, event domain.CalendarEvent) (domain.CalendarEvent, AppState, error) {
	if !event.End.After(event.Start) {
		return domain.CalendarEvent{}, AppState{}, ErrInvalidTimeRange
	}

	var created domain.CalendarEvent
	state, err := s.mutate(ctx, "create_event", func(tx Transaction) (string, error) {
		e, err := tx.CreateEvent(event)
		created = e
		return e.ID, err
	})
	return created, state, err
}

// UpdateEvent replaces a scheduled appointment after the same time window
// check as CreateEvent.
func (s *Service) UpdateEvent(ctx context.Context, event domain.CalendarEvent) (AppState, bool, error) {
	if !event.End.After(event.Start) {
		return AppState{}, false, ErrInvalidTimeRange
	}

	matched := false
	state, err := s.mutate(ctx, "update_event", func(tx Transaction) (string, error) {
		matched = tx.ReplaceEvent(event)
		return event.ID, nil
	})
	if err == nil && !matched {
		s.logger.Warn("update matched no event", "event_id", event.ID)
	}
	return state, matched, err
}

// DeleteEvent removes an appointment by id.
func (s *Service) DeleteEvent(ctx context.Context, id string) (AppState, bool, error) {
	matched := false
	state, err := s.mutate(ctx, "delete_event", func(tx Transaction) (string, error) {
		matched = tx.DeleteEvent(id)
		return id, nil
	})
	return state, matched, err
}
