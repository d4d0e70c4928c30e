package services

import (
	"context"
	"fmt"

	"explore-with-me/internal/apperr"
	"explore-with-me/internal/models"
	"explore-with-me/internal/repository"

	"github.com/google/uuid"
)

// UpdateEventRequests is the bulk admission decision: the initiator confirms
// or rejects a set of the event's pending requests. The whole call runs
// under the event's lock and inside one transaction, so a mid-batch guard
// failure leaves no partial state.
//
// Confirming keeps a running count seeded from the stored CONFIRMED count;
// a request that would overflow the limit fails the entire call. When the
// batch saturates the limit, every remaining pending request of the event is
// rejected in the same unit of work and reported in the rejected list.
func (s *RequestService) UpdateEventRequests(ctx context.Context, userID uint, eventID uuid.UUID, upd *models.StatusUpdateRequest) (*models.StatusUpdateResult, error) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("event with id=%s not found", eventID)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if event.InitiatorID != userID {
		return nil, apperr.Forbidden("not your event")
	}

	lock := s.locks.forEvent(eventID)
	lock.Lock()
	defer lock.Unlock()

	result := &models.StatusUpdateResult{
		Confirmed: []models.Request{},
		Rejected:  []models.Request{},
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		requests, err := txRepo.GetRequestsByIDs(ctx, upd.RequestIDs)
		if err != nil {
			return fmt.Errorf("failed to get requests: %w", err)
		}
		if len(requests) != len(upd.RequestIDs) {
			return apperr.NotFound("some requests were not found")
		}

		// Process in the order the caller gave.
		byID := make(map[uuid.UUID]*models.Request, len(requests))
		for i := range requests {
			byID[requests[i].ID] = &requests[i]
		}

		confirmedCount, err := txRepo.CountRequestsByEventAndStatus(ctx, eventID, models.RequestStatusConfirmed)
		if err != nil {
			return fmt.Errorf("failed to count confirmed requests: %w", err)
		}
		limit := int64(event.ParticipantLimit)

		for _, id := range upd.RequestIDs {
			req := byID[id]
			if req.EventID != eventID {
				return apperr.Conflict("request %s does not belong to event %s", req.ID, eventID)
			}
			if req.Status != models.RequestStatusPending {
				return apperr.Conflict("only PENDING requests can be updated, request %s is %s", req.ID, req.Status)
			}

			if upd.Status == models.RequestStatusConfirmed {
				if limit > 0 && confirmedCount >= limit {
					return apperr.Conflict("participant limit reached")
				}
				req.Status = models.RequestStatusConfirmed
				confirmedCount++
				result.Confirmed = append(result.Confirmed, *req)
			} else {
				req.Status = models.RequestStatusRejected
				result.Rejected = append(result.Rejected, *req)
			}
		}

		if err := txRepo.SaveRequests(ctx, requests); err != nil {
			return fmt.Errorf("failed to save requests: %w", err)
		}

		// Saturation cascade: once the last slot is filled, the remaining
		// waitlist is rejected, named or not.
		if limit > 0 && confirmedCount >= limit {
			pending, err := txRepo.GetPendingRequestsByEvent(ctx, eventID)
			if err != nil {
				return fmt.Errorf("failed to get pending requests: %w", err)
			}
			for i := range pending {
				pending[i].Status = models.RequestStatusRejected
				result.Rejected = append(result.Rejected, pending[i])
			}
			if err := txRepo.SaveRequests(ctx, pending); err != nil {
				return fmt.Errorf("failed to reject pending requests: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
