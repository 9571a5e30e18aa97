package docstore

import (
	"context"
	"fmt"

	"eventplanner-backend/internal/domain"
)

// Unavailable is the degraded store used when the database could not be reached at
// startup. Every operation fails fast with domain.ErrStoreUnavailable.
func Unavailable(cause error) Store {
	return &unavailableStore{cause: cause}
}

type unavailableStore struct {
	cause error
}

func (s *unavailableStore) err() error {
	if s.cause == nil {
		return domain.ErrStoreUnavailable
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, s.cause)
}

func (s *unavailableStore) Collection(string) Collection { return unavailableCollection{s} }
func (s *unavailableStore) Ping(context.Context) error     { return s.err() }
func (s *unavailableStore) Close(context.Context) error    { return nil }
func (s *unavailableStore) Backend() string                { return "unavailable" }

type unavailableCollection struct {
	store *unavailableStore
}

func (c unavailableCollection) Find(context.Context, Filter, int) ([]Document, error) {
	return nil, c.store.err()
}

func (c unavailableCollection) FindOne(context.Context, Filter) (Document, error) {
	return nil, c.store.err()
}

func (c unavailableCollection) InsertOne(context.Context, Document) error {
	return c.store.err()
}

func (c unavailableCollection) UpdateOne(context.Context, Filter, Document) (int64, error) {
	return 0, c.store.err()
}

func (c unavailableCollection) DeleteOne(context.Context, Filter) (int64, error) {
	return 0, c.store.err()
}
