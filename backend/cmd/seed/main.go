// Package main provides the seed tool that prepares the graph schema and
// loads fixture data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"eventgraph/backend/internal/graph"
	"eventgraph/backend/internal/recommend"
	"eventgraph/backend/internal/services"
	"eventgraph/backend/pkg/config"
	"eventgraph/backend/pkg/logger"
)

func main() {
	app := &cli.Command{
		Name:  "seed",
		Usage: "Prepare and populate the event graph",
		Commands: []*cli.Command{
			schemaCommand(),
			loadCommand(),
		},
	}

	err := app.Run(context.Background(), os.Args)
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Create constraints and indexes",
		Action: func(ctx context.Context, _ *cli.Command) error {
			store, err := connect(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			return store.EnsureSchema(ctx)
		},
	}
}

func loadCommand() *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "Load users, events and registrations from a YAML fixture file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "fixture file",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Usage:   "maximum parallel writes",
				Value:   4,
				Sources: cli.EnvVars("SEED_CONCURRENCY"),
			},
		},
		Action: runLoad,
	}
}

func runLoad(ctx context.Context, cmd *cli.Command) error {
	fx, err := readFixtures(cmd.String("file"))
	if err != nil {
		return err
	}

	store, err := connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	eventRepo := graph.NewEventRepository(store)
	userRepo := graph.NewUserRepository(store)
	registrationRepo := graph.NewRegistrationRepository(store)

	l := &loader{
		users:  userRepo,
		events: services.NewEventService(eventRepo),
		registrations: services.NewRegistrationService(
			userRepo, eventRepo, registrationRepo, recommend.NewEngine(registrationRepo),
		),
		concurrency: cmd.Int("concurrency"),
		logger:      logger.Named("seed"),
	}

	sum, err := l.load(ctx, fx)
	if err != nil {
		return err
	}

	logger.Get().Info("Seeding completed",
		zap.Int("users", sum.Users),
		zap.Int("events", sum.Events),
		zap.Int("registrations", sum.Registrations),
	)
	return nil
}

func connect(ctx context.Context) (*graph.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
}
