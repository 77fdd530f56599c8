package graph

import (
	"context"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type recordedCall struct {
	op     string
	cypher string
	params map[string]any
}

// fakeRunner answers queries by operation name
type fakeRunner struct {
	mu      sync.Mutex
	calls   []recordedCall
	results map[string][]*neo4j.Record
	errs    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		results: make(map[string][]*neo4j.Record),
		errs:    make(map[string]error),
	}
}

func (f *fakeRunner) Execute(_ context.Context, op, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{op: op, cypher: cypher, params: params})
	if err := f.errs[op]; err != nil {
		return nil, err
	}
	return f.results[op], nil
}

func (f *fakeRunner) Run(ctx context.Context, op, cypher string, params map[string]any) error {
	_, err := f.Execute(ctx, op, cypher, params)
	return err
}

func (f *fakeRunner) lastCall() recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return recordedCall{}
	}
	return f.calls[len(f.calls)-1]
}

func record(pairs ...any) *neo4j.Record {
	rec := &neo4j.Record{}
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Keys = append(rec.Keys, pairs[i].(string))
		rec.Values = append(rec.Values, pairs[i+1])
	}
	return rec
}

func eventRecord(id int64, name string, start any, keywords ...any) *neo4j.Record {
	if keywords == nil {
		keywords = []any{}
	}
	return record(
		colEventID, id,
		colEventName, name,
		colEventStart, start,
		colEventKeywords, keywords,
	)
}
