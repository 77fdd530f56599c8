package main

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"eventgraph/backend/internal/graph"
)

type userWriter interface {
	Merge(ctx context.Context, name string) (*graph.User, error)
}

type eventCreator interface {
	Create(ctx context.Context, input graph.EventInput) (*graph.Event, error)
}

type registrar interface {
	Assign(ctx context.Context, name string, eventID int64) error
}

type summary struct {
	Users         int
	Events        int
	Registrations int
}

// loader writes fixtures through the same code paths the API uses, so ids
// come from the event sequence and registrations pass the existence checks.
type loader struct {
	users         userWriter
	events        eventCreator
	registrations registrar
	concurrency   int
	logger        *zap.Logger
}

func (l *loader) group(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	limit := l.concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	return g, gctx
}

func (l *loader) load(ctx context.Context, fx *fixtures) (summary, error) {
	g, gctx := l.group(ctx)
	for _, name := range fx.Users {
		g.Go(func() error {
			if _, err := l.users.Merge(gctx, name); err != nil {
				return fmt.Errorf("user %q: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, err
	}
	l.logger.Info("Users loaded", zap.Int("count", len(fx.Users)))

	var mu sync.Mutex
	ids := make(map[string]int64, len(fx.Events))
	g, gctx = l.group(ctx)
	for _, ev := range fx.Events {
		g.Go(func() error {
			created, err := l.events.Create(gctx, ev.input())
			if err != nil {
				return fmt.Errorf("event %q: %w", ev.Name, err)
			}
			mu.Lock()
			ids[ev.Name] = created.ID
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, err
	}
	l.logger.Info("Events loaded", zap.Int("count", len(fx.Events)))

	g, gctx = l.group(ctx)
	for _, reg := range fx.Registrations {
		g.Go(func() error {
			if err := l.registrations.Assign(gctx, reg.User, ids[reg.Event]); err != nil {
				return fmt.Errorf("registration %s -> %q: %w", reg.User, reg.Event, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, err
	}
	l.logger.Info("Registrations loaded", zap.Int("count", len(fx.Registrations)))

	return summary{
		Users:         len(fx.Users),
		Events:        len(fx.Events),
		Registrations: len(fx.Registrations),
	}, nil
}
