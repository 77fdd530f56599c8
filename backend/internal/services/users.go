package services

import (
	"context"

	"eventgraph/backend/internal/graph"
)

// UserRepository is the user storage used by the services
type UserRepository interface {
	FindOne(ctx context.Context, name string) (*graph.User, error)
	FindAll(ctx context.Context, page, limit int) (*graph.UserPage, error)
}

// UserService exposes read access to users
type UserService struct {
	repo UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, name string) (*graph.User, error) {
	return s.repo.FindOne(ctx, name)
}

// List returns one page of users and the total user count
func (s *UserService) List(ctx context.Context, page, limit int) (*graph.UserPage, error) {
	return s.repo.FindAll(ctx, page, limit)
}
