package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventplanner-backend/internal/domain"
	"eventplanner-backend/internal/infrastructure/docstore"
	"eventplanner-backend/internal/pkg/dates"

	"github.com/google/uuid"
)

// Service stores reminders. Nothing here delivers them.
type Service struct {
	Store docstore.Store
	Now   func() time.Time
}

// CreateReminderInput is the body of POST /api/reminders. EventID may also come from
// the path.
type CreateReminderInput struct {
	EventID string `json:"event_id"`
	SentTo  string `json:"sent_to"`
	SentAt  string `json:"sent_at"`
	Status  string `json:"status"`
}

func (s *Service) reminders() docstore.Collection {
	return s.Store.Collection(docstore.Reminders)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) List(ctx context.Context) ([]domain.Reminder, error) {
	return s.find(ctx, docstore.Filter{})
}

func (s *Service) ListByEvent(ctx context.Context, eventID string) ([]domain.Reminder, error) {
	return s.find(ctx, docstore.Filter{"event_id": eventID})
}

func (s *Service) find(ctx context.Context, filter docstore.Filter) ([]domain.Reminder, error) {
	docs, err := s.reminders().Find(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Reminder, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.ReminderFromDocument(d))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, in CreateReminderInput) (*domain.Reminder, error) {
	eventID := strings.TrimSpace(in.EventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event_id is required", domain.ErrValidation)
	}
	if !domain.ValidEventID(eventID) {
		return nil, domain.ErrInvalidID
	}
	_, err := s.Store.Collection(docstore.Events).FindOne(ctx, docstore.Filter{"id": eventID})
	if errors.Is(err, docstore.ErrNoDocuments) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	sentAt, err := dates.NormalizeOrNow(in.SentAt, s.now())
	if err != nil {
		return nil, err
	}
	r := domain.Reminder{
		ID:      uuid.New().String(),
		EventID: eventID,
		SentTo:  strings.TrimSpace(in.SentTo),
		SentAt:  sentAt,
		Status:  strings.TrimSpace(in.Status),
	}
	if r.Status == "" {
		r.Status = domain.DefaultReminderStatus
	}
	if err := s.reminders().InsertOne(ctx, r.Document()); err != nil {
		return nil, err
	}
	return &r, nil
}

// Update merges sent_to, sent_at and status into the reminder of eventID with id.
func (s *Service) Update(ctx context.Context, eventID, id string, fields map[string]any) (*domain.Reminder, error) {
	set := docstore.Document{}
	for _, k := range []string{"sent_to", "sent_at", "status"} {
		v, ok := fields[k]
		if !ok {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string", domain.ErrValidation, k)
		}
		if k == "sent_at" {
			d, err := dates.NormalizeOrNow(str, s.now())
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

	filter := docstore.Filter{"event_id": eventID, "id": id}
	matched, err := s.reminders().UpdateOne(ctx, filter, set)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, domain.ErrReminderNotFound
	}
	doc, err := s.reminders().FindOne(ctx, filter)
	if err != nil {
		return nil, err
	}
	r := domain.ReminderFromDocument(doc)
	return &r, nil
}

func (s *Service) Delete(ctx context.Context, eventID, id string) error {
	deleted, err := s.reminders().DeleteOne(ctx, docstore.Filter{"event_id": eventID, "id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}
