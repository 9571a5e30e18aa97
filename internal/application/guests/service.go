// Package guests manages the invitee list embedded in each event document. Every
// mutation of one event's list runs under that event's lock, so concurrent adds and
// status changes never overwrite each other.
package guests

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"eventplanner-backend/internal/domain"
	"eventplanner-backend/internal/infrastructure/docstore"
	"eventplanner-backend/internal/infrastructure/lock"
	"eventplanner-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
)

type Service struct {
	Store  docstore.Store
	Locker lock.Locker
}

// NormalizeReport summarizes a NormalizeAllInvitees run.
type NormalizeReport struct {
	Scanned   int `json:"scanned"`
	Rewritten int `json:"rewritten"`
}

func (s *Service) events() docstore.Collection {
	return s.Store.Collection(docstore.Events)
}

func (s *Service) loadEvent(ctx context.Context, eventID string) (docstore.Document, error) {
	if !domain.ValidEventID(eventID) {
		return nil, domain.ErrEventNotFound
	}
	doc, err := s.events().FindOne(ctx, docstore.Filter{"id": eventID})
	if errors.Is(err, docstore.ErrNoDocuments) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListInvitees returns the normalized invitees of an event. An event without an
// invitees field has an empty list.
func (s *Service) ListInvitees(ctx context.Context, eventID string) ([]domain.Invitee, error) {
	doc, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeInvitees(doc["invitees"]), nil
}

// mutate loads the event under its lock, applies fn to the normalized list and
// writes the whole list back. Nothing is written when fn fails.
func (s *Service) mutate(ctx context.Context, eventID string, fn func([]domain.Invitee) ([]domain.Invitee, error)) error {
	release, err := s.Locker.Acquire(ctx, eventID)
	if err != nil {
		return err
	}
	defer release()

	doc, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return err
	}
	list, err := fn(domain.NormalizeInvitees(doc["invitees"]))
	if err != nil {
		return err
	}
	matched, err := s.events().UpdateOne(ctx, docstore.Filter{"id": eventID}, docstore.Document{
		"invitees": domain.InviteesDocument(list),
	})
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// AddInvitee appends email with status (Invited when empty). An email already on the
// list is a DuplicateGuest error and leaves the list untouched.
func (s *Service) AddInvitee(ctx context.Context, eventID, email, status string) (domain.Invitee, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Invitee{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if !validation.IsValidEmail(email) {
		return domain.Invitee{}, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = domain.StatusInvited
	}
	inv := domain.Invitee{Email: email, Status: status}
	err := s.mutate(ctx, eventID, func(list []domain.Invitee) ([]domain.Invitee, error) {
		if domain.IndexOfInvitee(list, email) >= 0 {
			return nil, domain.ErrDuplicateGuest
		}
		return append(list, inv), nil
	})
	if err != nil {
		return domain.Invitee{}, err
	}
	return inv, nil
}

// UpdateInviteeStatus sets the status of the invitee with email.
func (s *Service) UpdateInviteeStatus(ctx context.Context, eventID, email, status string) (domain.Invitee, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return domain.Invitee{}, fmt.Errorf("%w: status is required", domain.ErrValidation)
	}
	var updated domain.Invitee
	err := s.mutate(ctx, eventID, func(list []domain.Invitee) ([]domain.Invitee, error) {
		i := domain.IndexOfInvitee(list, email)
		if i < 0 {
			return nil, domain.ErrGuestNotFound
		}
		list[i].Status = status
		updated = list[i]
		return list, nil
	})
	if err != nil {
		return domain.Invitee{}, err
	}
	return updated, nil
}

// RemoveInvitee deletes the invitee with email from the event's list.
func (s *Service) RemoveInvitee(ctx context.Context, eventID, email string) error {
	return s.mutate(ctx, eventID, func(list []domain.Invitee) ([]domain.Invitee, error) {
		i := domain.IndexOfInvitee(list, email)
		if i < 0 {
			return nil, domain.ErrGuestNotFound
		}
		return append(list[:i], list[i+1:]...), nil
	})
}

// NormalizeAllInvitees rewrites every event's invitees into the canonical
// [{email, status}] form. Events already in canonical form are not written, so a
// second run changes nothing.
func (s *Service) NormalizeAllInvitees(ctx context.Context) (NormalizeReport, error) {
	var report NormalizeReport
	docs, err := s.events().Find(ctx, docstore.Filter{}, 0)
	if err != nil {
		return report, err
	}
	for _, doc := range docs {
		report.Scanned++
		eventID, _ := doc["id"].(string)
		if eventID == "" {
			log.Warn().Interface("record_id", doc[docstore.KeyID]).Msg("Skipping event without string id")
			continue
		}
		rewritten, err := s.normalizeEvent(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrEventNotFound) {
				continue
			}
			return report, fmt.Errorf("normalize event %s: %w", eventID, err)
		}
		if rewritten {
			report.Rewritten++
		}
	}
	log.Info().Int("scanned", report.Scanned).Int("rewritten", report.Rewritten).Msg("Invitee normalization finished")
	return report, nil
}

func (s *Service) normalizeEvent(ctx context.Context, eventID string) (bool, error) {
	release, err := s.Locker.Acquire(ctx, eventID)
	if err != nil {
		return false, err
	}
	defer release()

	doc, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return false, err
	}
	canonical := domain.InviteesDocument(domain.NormalizeInvitees(doc["invitees"]))
	if raw, ok := doc["invitees"]; ok && reflect.DeepEqual(raw, canonical) {
		return false, nil
	}
	matched, err := s.events().UpdateOne(ctx, docstore.Filter{"id": eventID}, docstore.Document{"invitees": canonical})
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}
