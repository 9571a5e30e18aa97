package docstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 5 * time.Second

// Open connects to the store named by uri. The scheme picks the backend:
// mongodb:// and mongodb+srv:// use MongoDB, postgres:// and postgresql:// store
// documents as JSON rows through GORM, sqlite:// does the same on SQLite.
func Open(ctx context.Context, uri, database string) (Store, error) {
	switch {
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return OpenMongo(ctx, uri, database)
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		// PreferSimpleProtocol avoids prepared statement clashes behind poolers (PgBouncer).
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  uri,
			PreferSimpleProtocol: true,
		}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return NewGormStore(db)
	case strings.HasPrefix(uri, "sqlite://"):
		db, err := gorm.Open(sqlite.Open(strings.TrimPrefix(uri, "sqlite://")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return NewGormStore(db)
	}
	return nil, fmt.Errorf("unsupported store uri scheme: %q", redact(uri))
}

// OpenOrDegrade opens the store and pings it. On failure it logs and returns an
// Unavailable store so the API keeps serving with "database not connected" errors.
func OpenOrDegrade(ctx context.Context, uri, database string) Store {
	store, err := Open(ctx, uri, database)
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		err = store.Ping(pingCtx)
		cancel()
		if err != nil {
			_ = store.Close(ctx)
		}
	}
	if err != nil {
		log.Error().Err(err).Str("uri", redact(uri)).Msg("Document store connection failed, running degraded")
		return Unavailable(err)
	}
	if ix, ok := store.(Indexer); ok {
		if err := ix.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("Creating document store indexes failed")
		}
	}
	log.Info().Str("backend", store.Backend()).Str("database", database).Msg("Document store connected")
	return store
}

// redact hides credentials in a connection string for logging.
func redact(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		return scheme + "://***@" + rest[at+1:]
	}
	return uri
}
