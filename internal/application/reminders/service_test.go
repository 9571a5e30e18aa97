package reminders

import (
	"context"
	"testing"
	"time"

	"eventplanner-backend/internal/domain"
	"eventplanner-backend/internal/infrastructure/docstore"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func setupRemindersTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	store, err := docstore.NewGormStore(db)
	require.NoError(t, err)
	require.NoError(t, store.Collection(docstore.Events).InsertOne(context.Background(), docstore.Document{"id": "e1"}))
	require.NoError(t, store.Collection(docstore.Events).InsertOne(context.Background(), docstore.Document{"id": "e2"}))
	return &Service{Store: store, Now: func() time.Time { return fixedNow }}
}

func TestCreate_Defaults(t *testing.T) {
	svc := setupRemindersTest(t)
	r, err := svc.Create(context.Background(), CreateReminderInput{EventID: "e1", SentTo: "a@x.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "2025-05-01T12:00:00Z", r.SentAt)
	assert.Equal(t, domain.DefaultReminderStatus, r.Status)
}

func TestCreate_NormalizesSentAt(t *testing.T) {
	svc := setupRemindersTest(t)
	r, err := svc.Create(context.Background(), CreateReminderInput{EventID: "e1", SentAt: "01-05-2025 08:30:00", Status: "sent"})
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01T08:30:00Z", r.SentAt)
	assert.Equal(t, "sent", r.Status)
}

func TestCreate_Errors(t *testing.T) {
	svc := setupRemindersTest(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateReminderInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Create(ctx, CreateReminderInput{EventID: "missing"})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	_, err = svc.Create(ctx, CreateReminderInput{EventID: "e1", SentAt: "tomorrow"})
	assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)
}

func TestListByEvent(t *testing.T) {
	svc := setupRemindersTest(t)
	ctx := context.Background()
	for _, ev := range []string{"e1", "e2", "e1"} {
		_, err := svc.Create(ctx, CreateReminderInput{EventID: ev})
		require.NoError(t, err)
	}
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	e1, err := svc.ListByEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, e1, 2)

	none, err := svc.ListByEvent(ctx, "e3")
	require.NoError(t, err)
	assert.Equal(t, []domain.Reminder{}, none)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := setupRemindersTest(t)
	ctx := context.Background()
	r, err := svc.Create(ctx, CreateReminderInput{EventID: "e1", SentTo: "a@x.com"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "e1", r.ID, map[string]any{"status": "sent"})
	require.NoError(t, err)
	assert.Equal(t, "sent", updated.Status)
	assert.Equal(t, "a@x.com", updated.SentTo)

	_, err = svc.Update(ctx, "e2", r.ID, map[string]any{"status": "sent"})
	assert.ErrorIs(t, err, domain.ErrReminderNotFound)
	_, err = svc.Update(ctx, "e1", r.ID, map[string]any{"other": "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.ErrorIs(t, svc.Delete(ctx, "e2", r.ID), domain.ErrReminderNotFound)
	require.NoError(t, svc.Delete(ctx, "e1", r.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "e1", r.ID), domain.ErrReminderNotFound)
}
