package graph

import (
	"context"

	"go.uber.org/zap"
)

var schemaStatements = []struct {
	name   string
	cypher string
}{
	{"event_id_unique", "CREATE CONSTRAINT event_id_unique IF NOT EXISTS FOR (e:Event) REQUIRE e.id IS UNIQUE"},
	{"keyword_name_unique", "CREATE CONSTRAINT keyword_name_unique IF NOT EXISTS FOR (k:EventKeyword) REQUIRE k.name IS UNIQUE"},
	{"user_name_unique", "CREATE CONSTRAINT user_name_unique IF NOT EXISTS FOR (u:User) REQUIRE u.name IS UNIQUE"},
	{"sequence_name_unique", "CREATE CONSTRAINT sequence_name_unique IF NOT EXISTS FOR (s:Sequence) REQUIRE s.name IS UNIQUE"},
	{"event_start_index", "CREATE INDEX event_start_index IF NOT EXISTS FOR (e:Event) ON (e.startDatetime)"},
}

// EnsureSchema creates the uniqueness constraints and indexes the repositories
// rely on. Every statement is idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := s.Run(ctx, "schema."+stmt.name, stmt.cypher, nil); err != nil {
			return err
		}
		s.logger.Info("Schema statement applied", zap.String("name", stmt.name))
	}
	return nil
}
