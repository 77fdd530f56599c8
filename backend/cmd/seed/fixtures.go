package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"eventgraph/backend/internal/graph"
)

// fixtures is the on-disk seed format
type fixtures struct {
	Users         []string              `yaml:"users"`
	Events        []eventFixture        `yaml:"events"`
	Registrations []registrationFixture `yaml:"registrations"`
}

type eventFixture struct {
	Name     string    `yaml:"name"`
	Start    time.Time `yaml:"start"`
	Keywords []string  `yaml:"keywords"`
}

// registrationFixture refers to its event by name since ids are assigned on load
type registrationFixture struct {
	User  string `yaml:"user"`
	Event string `yaml:"event"`
}

func (e eventFixture) input() graph.EventInput {
	return graph.EventInput{
		Name:          e.Name,
		StartDatetime: e.Start,
		Keywords:      e.Keywords,
	}
}

func readFixtures(path string) (*fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer f.Close()
	return parseFixtures(f)
}

func parseFixtures(r io.Reader) (*fixtures, error) {
	var fx fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if err := fx.check(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// check verifies that every registration refers to a declared user and event
func (fx *fixtures) check() error {
	users := make(map[string]bool, len(fx.Users))
	for _, u := range fx.Users {
		users[u] = true
	}

	events := make(map[string]bool, len(fx.Events))
	for _, e := range fx.Events {
		if events[e.Name] {
			return fmt.Errorf("duplicate event name %q", e.Name)
		}
		events[e.Name] = true
	}

	for i, reg := range fx.Registrations {
		if !users[reg.User] {
			return fmt.Errorf("registration %d: unknown user %q", i, reg.User)
		}
		if !events[reg.Event] {
			return fmt.Errorf("registration %d: unknown event %q", i, reg.Event)
		}
	}
	return nil
}
