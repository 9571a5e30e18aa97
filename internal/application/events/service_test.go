package events

import (
	"context"
	"testing"

	"eventplanner-backend/internal/domain"
	"eventplanner-backend/internal/infrastructure/docstore"
	"eventplanner-backend/internal/infrastructure/lock"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupEventsTest(t *testing.T) (*Service, docstore.Store) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	store, err := docstore.NewGormStore(db)
	require.NoError(t, err)
	return &Service{Store: store, Locker: lock.NewLocalLocker()}, store
}

func TestCreate_NormalizesDateAndInvitees(t *testing.T) {
	svc, store := setupEventsTest(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateEventInput{
		ID:       "e1",
		Title:    "Conf",
		Date:     "03-04-2025",
		Invitees: []any{"a@x.com", map[string]any{"email": "b@x.com", "status": "Confirmed"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-04-03T00:00:00Z", e.Date)

	doc, err := store.Collection(docstore.Events).FindOne(ctx, docstore.Filter{"id": "e1"})
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"email": "a@x.com", "status": "Invited"},
		map[string]any{"email": "b@x.com", "status": "Confirmed"},
	}, doc["invitees"])
}

func TestCreate_GeneratesID(t *testing.T) {
	svc, _ := setupEventsTest(t)
	e, err := svc.Create(context.Background(), CreateEventInput{Title: "Untitled"})
	require.NoError(t, err)
	assert.True(t, domain.ValidEventID(e.ID))
	assert.Equal(t, []domain.Invitee{}, e.Invitees)
}

func TestCreate_Errors(t *testing.T) {
	svc, _ := setupEventsTest(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateEventInput{ID: "e1", Title: "Conf"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   CreateEventInput
		want error
	}{
		{"existing id", CreateEventInput{ID: "e1"}, domain.ErrEventExists},
		{"bad id", CreateEventInput{ID: "../etc"}, domain.ErrInvalidID},
		{"bad date", CreateEventInput{ID: "e2", Date: "31-02-2025"}, domain.ErrInvalidDateFormat},
		{"duplicate invitees", CreateEventInput{ID: "e3", Invitees: []any{"a@x.com", "a@x.com"}}, domain.ErrDuplicateGuest},
		{"invitees not array", CreateEventInput{ID: "e4", Invitees: "a@x.com"}, domain.ErrValidation},
		{"invitee without email", CreateEventInput{ID: "e5", Invitees: []any{map[string]any{"status": "Invited"}}}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdate_MergesFieldsAndKeepsInvitees(t *testing.T) {
	svc, _ := setupEventsTest(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateEventInput{ID: "e1", Title: "Conf", Location: "Hall", Invitees: []any{"a@x.com"}})
	require.NoError(t, err)

	e, err := svc.Update(ctx, "e1", map[string]any{"title": "Conf 2025", "date": "04/03/2025"})
	require.NoError(t, err)
	assert.Equal(t, "Conf 2025", e.Title)
	assert.Equal(t, "Hall", e.Location)
	assert.Equal(t, "2025-04-03T00:00:00Z", e.Date)
	assert.Equal(t, []domain.Invitee{{Email: "a@x.com", Status: domain.StatusInvited}}, e.Invitees)
}

func TestUpdate_Errors(t *testing.T) {
	svc, _ := setupEventsTest(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateEventInput{ID: "e1"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "missing", map[string]any{"title": "x"})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	_, err = svc.Update(ctx, "e1", map[string]any{"invitees": []any{}})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Update(ctx, "e1", map[string]any{"date": "someday"})
	assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)
	_, err = svc.Update(ctx, "bad id", map[string]any{"title": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	_, err = svc.Update(ctx, "e1", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDelete_MissingIsNoop(t *testing.T) {
	svc, _ := setupEventsTest(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateEventInput{ID: "e1", Invitees: []any{"a@x.com"}})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "e2"), domain.ErrEventNotFound)
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "e1"))
	_, err = svc.Get(ctx, "e1")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestGet_ReadsLegacyInvitees(t *testing.T) {
	svc, store := setupEventsTest(t)
	ctx := context.Background()
	require.NoError(t, store.Collection(docstore.Events).InsertOne(ctx, docstore.Document{
		"id":       "old",
		"title":    "Legacy",
		"invitees": []any{"a@x.com", map[string]any{"email": "b@x.com"}},
	}))

	e, err := svc.Get(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, []domain.Invitee{
		{Email: "a@x.com", Status: domain.StatusInvited},
		{Email: "b@x.com", Status: domain.StatusInvited},
	}, e.Invitees)
}
