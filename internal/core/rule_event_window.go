package core

import (
	"carecore/pkg/domain"
	"context"
	"fmt"
)

// NewEventTimeWindowRule returns the in-transaction rule requiring an
// appointment to end strictly after it starts. The service boundary rejects
// invalid ranges first; this rule backstops direct store writers.
func NewEventTimeWindowRule() domain.Rule {
	return eventTimeWindowRule{}
}

type eventTimeWindowRule struct{}

func (eventTimeWindowRule) Name() string { return "event_time_window" }

func (eventTimeWindowRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityEvent || change.Action == domain.ActionDelete {
			continue
		}
		event, ok := change.After.(domain.CalendarEvent)
		if !ok {
			continue
		}
		if !event.End.After(event.Start) {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "event_time_window",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("event %s ends at or before it starts", event.ID),
				Entity:   domain.EntityEvent,
				EntityID: event.ID,
			})
		}
	}
	return res, nil
}
