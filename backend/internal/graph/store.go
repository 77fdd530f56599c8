package graph

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"eventgraph/backend/internal/metrics"
	apperrors "eventgraph/backend/pkg/errors"
	"eventgraph/backend/pkg/logger"
)

const constraintViolation = "Neo.ClientError.Schema.ConstraintValidationFailed"

// Runner executes parameterized Cypher. op names the operation for metrics
// and logs; it is never part of the query text.
type Runner interface {
	// Execute runs a query and returns every record it produced.
	// An empty slice means "no match", never an error.
	Execute(ctx context.Context, op, cypher string, params map[string]any) ([]*neo4j.Record, error)
	// Run executes a write whose rows are not needed.
	Run(ctx context.Context, op, cypher string, params map[string]any) error
}

// Store is the process-wide Runner backed by a single Neo4j driver. The
// driver owns the connection pool and is safe for concurrent use.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// NewStore wraps an existing driver
func NewStore(driver neo4j.DriverWithContext, database string) *Store {
	return &Store{
		driver:   driver,
		database: database,
		logger:   logger.Named("graph"),
	}
}

// Connect creates the driver and verifies connectivity
func Connect(ctx context.Context, uri, user, password, database string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewStoreFailed("connect", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewStoreFailed("verify_connectivity", err)
	}
	return NewStore(driver, database), nil
}

// Verify checks that the store is reachable
func (s *Store) Verify(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return apperrors.NewStoreFailed("verify_connectivity", err)
	}
	return nil
}

// Close closes the Neo4j driver connection
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Execute implements Runner
func (s *Store) Execute(ctx context.Context, op, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	start := time.Now()
	result, err := neo4j.ExecuteQuery(ctx, s.driver, cypher, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
	)
	metrics.RecordGraphQuery(op, time.Since(start), err)
	if err != nil {
		s.logger.Error("Graph query failed",
			zap.String("operation", op),
			zap.Error(err),
		)
		return nil, classify(op, err)
	}

	s.logger.Debug("Graph query executed",
		zap.String("operation", op),
		zap.Int("records", len(result.Records)),
		zap.Duration("latency", time.Since(start)),
	)
	return result.Records, nil
}

// Run implements Runner
func (s *Store) Run(ctx context.Context, op, cypher string, params map[string]any) error {
	_, err := s.Execute(ctx, op, cypher, params)
	return err
}

// classify turns a driver error into the application taxonomy. Only schema
// constraint violations are domain conflicts; everything else is a store failure.
func classify(op string, err error) error {
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) && neoErr.Code == constraintViolation {
		entity, _, _ := strings.Cut(op, ".")
		return apperrors.NewConflict(apperrors.EntityKind(entity), "constraint violated by "+op, err)
	}
	return apperrors.NewStoreFailed(op, err)
}
