package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventplanner-backend/internal/domain"
	"eventplanner-backend/internal/infrastructure/docstore"
	"eventplanner-backend/internal/infrastructure/lock"
	"eventplanner-backend/internal/pkg/dates"

	"github.com/google/uuid"
)

// Service is the events repository. Invitees are owned by the guests manager; this
// service only writes them on create.
type Service struct {
	Store  docstore.Store
	Locker lock.Locker
}

// CreateEventInput is the body of POST /api/events. Invitees accepts the same forms
// as stored documents (bare emails or {email, status} objects).
type CreateEventInput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrganizerID string `json:"organizer_id"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Invitees    any    `json:"invitees"`
}

func (s *Service) events() docstore.Collection {
	return s.Store.Collection(docstore.Events)
}

// List returns every event. There is no cap.
func (s *Service) List(ctx context.Context) ([]domain.Event, error) {
	docs, err := s.events().Find(ctx, docstore.Filter{}, 0)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Event, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.EventFromDocument(d))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Event, error) {
	if !domain.ValidEventID(id) {
		return nil, domain.ErrInvalidID
	}
	doc, err := s.events().FindOne(ctx, docstore.Filter{"id": id})
	if errors.Is(err, docstore.ErrNoDocuments) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	e := domain.EventFromDocument(doc)
	return &e, nil
}

func (s *Service) Create(ctx context.Context, in CreateEventInput) (*domain.Event, error) {
	e := domain.Event{
		ID:          strings.TrimSpace(in.ID),
		Title:       in.Title,
		Description: in.Description,
		OrganizerID: in.OrganizerID,
		Location:    in.Location,
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	} else if !domain.ValidEventID(e.ID) {
		return nil, domain.ErrInvalidID
	}
	if strings.TrimSpace(in.Date) != "" {
		d, err := dates.Normalize(in.Date)
		if err != nil {
			return nil, err
		}
		e.Date = d
	}

	invitees, err := initialInvitees(in.Invitees)
	if err != nil {
		return nil, err
	}
	e.Invitees = invitees

	if _, err := s.Get(ctx, e.ID); err == nil {
		return nil, domain.ErrEventExists
	} else if !errors.Is(err, domain.ErrEventNotFound) {
		return nil, err
	}
	if err := s.events().InsertOne(ctx, e.Document()); err != nil {
		if errors.Is(err, docstore.ErrDuplicateKey) {
			return nil, domain.ErrEventExists
		}
		return nil, err
	}
	return &e, nil
}

// initialInvitees validates the invitees given on create. Entries that cannot be
// read as an invitee and repeated emails are rejected.
func initialInvitees(raw any) ([]domain.Invitee, error) {
	if raw == nil {
		return []domain.Invitee{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: invitees must be an array", domain.ErrValidation)
	}
	out := make([]domain.Invitee, 0, len(list))
	for _, entry := range list {
		inv, ok := domain.NormalizeInvitee(entry)
		if !ok {
			return nil, fmt.Errorf("%w: invitee entries need an email", domain.ErrValidation)
		}
		if domain.IndexOfInvitee(out, inv.Email) >= 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateGuest, inv.Email)
		}
		out = append(out, inv)
	}
	return out, nil
}

// Update merges the supplied event fields. A date is normalized before it is stored.
func (s *Service) Update(ctx context.Context, id string, fields map[string]any) (*domain.Event, error) {
	if !domain.ValidEventID(id) {
		return nil, domain.ErrInvalidID
	}
	if _, ok := fields["invitees"]; ok {
		return nil, fmt.Errorf("%w: invitees are managed through /api/guests", domain.ErrValidation)
	}
	set := docstore.Document{}
	for _, k := range domain.EventFields {
		v, ok := fields[k]
		if !ok {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string", domain.ErrValidation, k)
		}
		if k == "date" {
			d, err := dates.Normalize(str)
			if err != nil {
				return nil, err
			}
			str = d
		}
		set[k] = str
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", domain.ErrValidation)
	}

	release, err := s.Locker.Acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	matched, err := s.events().UpdateOne(ctx, docstore.Filter{"id": id}, set)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, domain.ErrEventNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes the event document together with its embedded invitees.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !domain.ValidEventID(id) {
		return domain.ErrInvalidID
	}
	release, err := s.Locker.Acquire(ctx, id)
	if err != nil {
		return err
	}
	defer release()

	deleted, err := s.events().DeleteOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
