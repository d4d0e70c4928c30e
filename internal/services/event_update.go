package services

import (
	"time"

	"explore-with-me/internal/apperr"
	"explore-with-me/internal/models"
)

// applyEventPatch validates and applies the non-lifecycle fields of an update
// payload. Fields are validated and applied independently; the first
// violation aborts the call.
func applyEventPatch(event *models.Event, upd *models.UpdateEventRequest) error {
	if upd.Title != nil {
		if len(*upd.Title) < 3 || len(*upd.Title) > 120 {
			return apperr.Validation("title must be between 3 and 120 characters")
		}
		event.Title = *upd.Title
	}

	if upd.Annotation != nil {
		if len(*upd.Annotation) < 20 || len(*upd.Annotation) > 2000 {
			return apperr.Validation("annotation must be between 20 and 2000 characters")
		}
		event.Annotation = *upd.Annotation
	}

	if upd.Description != nil {
		if len(*upd.Description) < 20 || len(*upd.Description) > 7000 {
			return apperr.Validation("description must be between 20 and 7000 characters")
		}
		event.Description = *upd.Description
	}

	if upd.Location != nil {
		event.Location = *upd.Location
	}
	if upd.Paid != nil {
		event.Paid = *upd.Paid
	}
	if upd.ParticipantLimit != nil {
		if *upd.ParticipantLimit < 0 {
			return apperr.Validation("participant_limit can't be less than 0")
		}
		event.ParticipantLimit = *upd.ParticipantLimit
	}
	if upd.RequestModeration != nil {
		event.RequestModeration = *upd.RequestModeration
	}

	return nil
}

// validateEventDate enforces the role-dependent lead time: the event date
// must be at least minHours in the future at the moment of the call.
func validateEventDate(eventDate *time.Time, minHours int) error {
	if eventDate == nil {
		return nil
	}
	if eventDate.Before(time.Now().Add(time.Duration(minHours) * time.Hour)) {
		return apperr.Validation("event date must be at least %d hour(s) in the future", minHours)
	}
	return nil
}
