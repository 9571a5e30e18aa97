package guests

import (
	"context"
	"errors"
	"fmt"

	"eventplanner-backend/internal/domain"
	"eventplanner-backend/internal/infrastructure/docstore"

	"github.com/rs/zerolog/log"
)

// ImportReport summarizes an ImportLegacyGuests run.
type ImportReport struct {
	Scanned       int `json:"scanned"`
	Imported      int `json:"imported"`
	Duplicates    int `json:"duplicates"`
	MissingEvents int `json:"missing_events"`
	Invalid       int `json:"invalid"`
}

func (s *Service) legacy() docstore.Collection {
	return s.Store.Collection(docstore.Guests)
}

// ListLegacyGuests returns the records of the old standalone guests collection.
func (s *Service) ListLegacyGuests(ctx context.Context) ([]domain.Guest, error) {
	docs, err := s.legacy().Find(ctx, docstore.Filter{}, 0)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Guest, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.GuestFromDocument(d))
	}
	return out, nil
}

// DeleteLegacyGuest removes one legacy record by its store record id.
func (s *Service) DeleteLegacyGuest(ctx context.Context, recordID string) error {
	deleted, err := s.legacy().DeleteOne(ctx, docstore.Filter{docstore.KeyID: recordID})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrGuestNotFound
	}
	return nil
}

// ImportLegacyGuests moves every legacy guest record into its event's invitee list.
// Records whose email is already invited are dropped as duplicates; records of
// missing events or without an email stay in the legacy collection.
func (s *Service) ImportLegacyGuests(ctx context.Context) (ImportReport, error) {
	var report ImportReport
	records, err := s.ListLegacyGuests(ctx)
	if err != nil {
		return report, err
	}
	for _, g := range records {
		report.Scanned++
		if g.Email == "" || g.EventID == "" {
			report.Invalid++
			continue
		}
		_, err := s.AddInvitee(ctx, g.EventID, g.Email, g.Status)
		switch {
		case err == nil:
			report.Imported++
		case errors.Is(err, domain.ErrDuplicateGuest):
			report.Duplicates++
		case errors.Is(err, domain.ErrEventNotFound):
			report.MissingEvents++
			continue
		case errors.Is(err, domain.ErrValidation):
			report.Invalid++
			continue
		default:
			return report, fmt.Errorf("import guest %s: %w", g.ID, err)
		}
		if err := s.DeleteLegacyGuest(ctx, g.ID); err != nil && !errors.Is(err, domain.ErrGuestNotFound) {
			return report, fmt.Errorf("delete imported guest %s: %w", g.ID, err)
		}
	}
	log.Info().
		Int("scanned", report.Scanned).
		Int("imported", report.Imported).
		Int("duplicates", report.Duplicates).
		Int("missing_events", report.MissingEvents).
		Msg("Legacy guest import finished")
	return report, nil
}
