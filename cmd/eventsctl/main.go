package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	guestsvc "eventplanner-backend/internal/application/guests"
	"eventplanner-backend/internal/config"
	"eventplanner-backend/internal/infrastructure/docstore"
	"eventplanner-backend/internal/infrastructure/lock"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	config.SetupLogger(cfg)

	app := &cli.App{
		Name:  "eventsctl",
		Usage: "Maintenance tasks for the event planner document store.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db-uri", Value: cfg.DBURI, Usage: "document store connection string"},
			&cli.StringFlag{Name: "db-name", Value: cfg.DBName, Usage: "database name (MongoDB only)"},
			&cli.StringFlag{Name: "redis-url", Value: cfg.RedisURL, Usage: "Redis URL; shares the event lock with running API instances"},
		},
		Commands: []*cli.Command{
			pingCommand(),
			normalizeCommand(),
			importCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("eventsctl failed")
		os.Exit(1)
	}
}

func pingCommand() *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: "Check that the document store is reachable.",
		Action: func(c *cli.Context) error {
			store, err := openStore(c)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())
			if err := store.Ping(c.Context); err != nil {
				return fmt.Errorf("ping %s: %w", store.Backend(), err)
			}
			fmt.Printf("%s: ok\n", store.Backend())
			return nil
		},
	}
}

func normalizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "normalize-invitees",
		Usage: "Rewrite every event's invitees into the canonical {email, status} form.",
		Action: func(c *cli.Context) error {
			return withGuests(c, func(svc *guestsvc.Service) (any, error) {
				return svc.NormalizeAllInvitees(c.Context)
			})
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import-legacy-guests",
		Usage: "Move records from the legacy guests collection into their events.",
		Action: func(c *cli.Context) error {
			return withGuests(c, func(svc *guestsvc.Service) (any, error) {
				return svc.ImportLegacyGuests(c.Context)
			})
		},
	}
}

func openStore(c *cli.Context) (docstore.Store, error) {
	store, err := docstore.Open(c.Context, c.String("db-uri"), c.String("db-name"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// withGuests runs fn against a guests service and prints its report as JSON.
func withGuests(c *cli.Context, fn func(*guestsvc.Service) (any, error)) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	var locker lock.Locker = lock.NewLocalLocker()
	if url := c.String("redis-url"); url != "" {
		rdb, err := lock.Connect(c.Context, url)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb)
	}

	report, err := fn(&guestsvc.Service{Store: store, Locker: locker})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
