package router

import (
	"context"
	"net/http"

	eventsvc "eventplanner-backend/internal/application/events"
	guestsvc "eventplanner-backend/internal/application/guests"
	remindersvc "eventplanner-backend/internal/application/reminders"
	usersvc "eventplanner-backend/internal/application/users"
	"eventplanner-backend/internal/config"
	"eventplanner-backend/internal/infrastructure/docstore"
	"eventplanner-backend/internal/infrastructure/lock"
	adminhandler "eventplanner-backend/internal/interfaces/handlers/admin"
	eventhandler "eventplanner-backend/internal/interfaces/handlers/events"
	guesthandler "eventplanner-backend/internal/interfaces/handlers/guests"
	healthhandler "eventplanner-backend/internal/interfaces/handlers/health"
	reminderhandler "eventplanner-backend/internal/interfaces/handlers/reminders"
	roothandler "eventplanner-backend/internal/interfaces/handlers/root"
	userhandler "eventplanner-backend/internal/interfaces/handlers/users"
	"eventplanner-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Deps are the connections the app runs on. Rdb is optional.
type Deps struct {
	Store docstore.Store
	Rdb   *redis.Client
}

// Connect opens the document store (degraded when unreachable) and, when
// REDIS_URL is set, Redis.
func Connect(ctx context.Context, cfg *config.Config) (Deps, error) {
	deps := Deps{Store: docstore.OpenOrDegrade(ctx, cfg.DBURI, cfg.DBName)}
	if cfg.RedisURL != "" {
		rdb, err := lock.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return deps, err
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			// without Redis: no request stats, no error log, in-process event lock
			log.Warn().Err(err).Msg("Redis ping failed, continuing without it")
			_ = rdb.Close()
			return deps, nil
		}
		deps.Rdb = rdb
	}
	return deps, nil
}

// CreateApp connects and builds the Fiber app.
func CreateApp(cfg *config.Config) (*fiber.App, Deps, error) {
	deps, err := Connect(context.Background(), cfg)
	if err != nil {
		return nil, deps, err
	}
	return NewApp(cfg, deps), deps, nil
}

// NewApp wires services and routes over already opened connections.
func NewApp(cfg *config.Config, deps Deps) *fiber.App {
	rdb := deps.Rdb
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.NewErrorHandler(rdb),
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	if rdb != nil {
		app.Use(middleware.HealthMarker(rdb))
	}
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var locker lock.Locker = lock.NewLocalLocker()
	if rdb != nil {
		locker = lock.NewRedisLocker(rdb)
	}

	users := &usersvc.Service{Store: deps.Store, PageLimit: cfg.UsersPageLimit}
	events := &eventsvc.Service{Store: deps.Store, Locker: locker}
	guests := &guestsvc.Service{Store: deps.Store, Locker: locker}
	reminders := &remindersvc.Service{Store: deps.Store}

	rh := &roothandler.Handlers{Store: deps.Store}
	app.Get("/", rh.Home)

	hh := &healthhandler.Handlers{Rdb: rdb, Store: deps.Store, AdminKey: cfg.AdminKey}
	app.Get("/health", hh.Dashboard)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/health/reset", hh.Reset)

	// Admin routes take no body and answer before the JSON guard of the /api group.
	ah := &adminhandler.Handlers{Guests: guests}
	adm := app.Group("/api/admin", middleware.RequireAdminKey(cfg.AdminKey))
	adm.Post("/normalize-invitees", ah.NormalizeInvitees)
	adm.Post("/import-legacy-guests", ah.ImportLegacyGuests)

	api := app.Group("/api", middleware.RequireJSON())
	api.Get("/data", rh.Data)
	api.Get("/test-db", rh.TestDB)

	uh := &userhandler.Handlers{Service: users}
	ug := api.Group("/users")
	ug.Get("/", uh.List)
	ug.Post("/", uh.Create)
	ug.Put("/:email", uh.Update)
	ug.Delete("/:email", uh.Delete)

	eh := &eventhandler.Handlers{Service: events}
	eg := api.Group("/events")
	eg.Get("/", eh.List)
	eg.Post("/", eh.Create)
	eg.Get("/:id/ics", eh.ICS)
	eg.Get("/:id", eh.Get)
	eg.Put("/:id", eh.Update)
	eg.Delete("/:id", eh.Delete)

	gh := &guesthandler.Handlers{Service: guests}
	gg := api.Group("/guests")
	gg.Post("/", gh.Add)
	gg.Get("/:eventId", gh.List)
	gg.Put("/:eventId/:email", gh.UpdateStatus)
	gg.Delete("/:eventId/:email", gh.Remove)

	lg := api.Group("/legacy/guests")
	lg.Get("/", gh.ListLegacy)
	lg.Delete("/:id", gh.DeleteLegacy)

	remh := &reminderhandler.Handlers{Service: reminders}
	remg := api.Group("/reminders")
	remg.Get("/", remh.List)
	remg.Post("/", remh.Create)
	remg.Get("/:eventId", remh.ListByEvent)
	remg.Post("/:eventId", remh.Create)
	remg.Put("/:eventId/:id", remh.Update)
	remg.Delete("/:eventId/:id", remh.Delete)

	return app
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
