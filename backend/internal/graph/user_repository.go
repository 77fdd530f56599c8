package graph

import (
	"context"
	"fmt"
	"math"

	"github.com/saulfrancisco-ruizacevedo/gocypher"
	"go.uber.org/zap"

	apperrors "eventgraph/backend/pkg/errors"
	"eventgraph/backend/pkg/logger"
)

// UserRepository reads User nodes
type UserRepository struct {
	runner Runner
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(runner Runner) *UserRepository {
	return &UserRepository{
		runner: runner,
		logger: logger.Named("user_repository"),
	}
}

// FindOne looks a user up by its unique name
func (r *UserRepository) FindOne(ctx context.Context, name string) (*User, error) {
	query, params, err := gocypher.NewQueryBuilder().
		Match(gocypher.N("u", "User").WithProperties(map[string]interface{}{"name": name})).
		Return("u").
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build user lookup: %w", err)
	}

	records, err := r.runner.Execute(ctx, "user.find_one", query, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewUserNotFound(name)
	}

	user, err := decodeUserNode(records[0], "u")
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll returns one page of users ordered by name. Page numbers start at 1.
// The count and the page come from the same statement, so they are consistent.
func (r *UserRepository) FindAll(ctx context.Context, page, limit int) (*UserPage, error) {
	if page < 1 {
		return nil, apperrors.NewValidationFailed("page", "must be greater than or equal to 1")
	}
	if limit < 1 {
		return nil, apperrors.NewValidationFailed("limit", "must be greater than or equal to 1")
	}

	query := `
		MATCH (u:User)
		WITH u ORDER BY u.name
		WITH collect(u.name) AS names
		RETURN size(names) AS total, names[$skip..$skip + $limit] AS page`

	params := map[string]any{
		"skip":  pageSkip(page, limit),
		"limit": int64(limit),
	}

	records, err := r.runner.Execute(ctx, "user.find_all", query, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &UserPage{Users: []User{}}, nil
	}

	total, err := recordInt64(records[0], apperrors.EntityUser, "total")
	if err != nil {
		return nil, err
	}
	names, err := recordStrings(records[0], apperrors.EntityUser, "page")
	if err != nil {
		return nil, err
	}

	users := make([]User, 0, len(names))
	for _, name := range names {
		users = append(users, User{Name: name})
	}
	return &UserPage{Users: users, Total: total}, nil
}

// pageSkip is (page-1)*limit, saturated so that skip+limit never exceeds
// math.MaxInt64. A saturated skip lies past any real list and yields an empty page.
func pageSkip(page, limit int) int64 {
	maxSkip := int64(math.MaxInt64) - int64(limit)
	if int64(page-1) > maxSkip/int64(limit) {
		return maxSkip
	}
	return int64(page-1) * int64(limit)
}

// Merge creates the user if no user carries the name yet
func (r *UserRepository) Merge(ctx context.Context, name string) (*User, error) {
	query := `
		MERGE (u:User {name: $name})
		RETURN u`

	records, err := r.runner.Execute(ctx, "user.merge", query, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewConflict(apperrors.EntityUser, "cannot create user "+name, nil)
	}

	user, err := decodeUserNode(records[0], "u")
	if err != nil {
		return nil, err
	}
	return &user, nil
}
