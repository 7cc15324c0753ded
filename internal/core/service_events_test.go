package core

import (
	"carecore/pkg/domain"
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateEventRejectsInvertedWindow(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	before := len(svc.Store().ListEvents())

	_, _, err := svc.CreateEvent(ctx, domain.CalendarEvent{
		Title: "Session", Start: start, End: start,
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("zero-length window: got %v", err)
	}
	_, _, err = svc.CreateEvent(ctx, domain.CalendarEvent{
		Title: "Session", Start: start, End: start.Add(-time.Hour),
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("inverted window: got %v", err)
	}
	if got := len(svc.Store().ListEvents()); got != before {
		t.Fatalf("rejected events must not reach the store, %d -> %d", before, got)
	}
}

func TestEventLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	created, state, err := svc.CreateEvent(ctx, domain.CalendarEvent{
		Title: "Therapy Session", Start: start, End: start.Add(time.Hour), TeamMemberID: "PR-001",
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if created.ID == "" {
		t.Fatal("event id must be generated")
	}
	found := false
	for _, e := range state.Events {
		if e.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("new event missing from refetched state")
	}

	created.Title = "Therapy Session (moved)"
	created.Start = start.Add(time.Hour)
	created.End = start.Add(2 * time.Hour)
	if _, matched, err := svc.UpdateEvent(ctx, created); err != nil || !matched {
		t.Fatalf("update event: matched=%v err=%v", matched, err)
	}

	state, matched, err := svc.DeleteEvent(ctx, created.ID)
	if err != nil || !matched {
		t.Fatalf("delete event: matched=%v err=%v", matched, err)
	}
	for _, e := range state.Events {
		if e.ID == created.ID {
			t.Fatal("deleted event still present")
		}
	}
}
