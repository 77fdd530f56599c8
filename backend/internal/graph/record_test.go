package graph

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "eventgraph/backend/pkg/errors"
)

func TestDecodeEvent(t *testing.T) {
	start := time.Date(2030, 5, 1, 18, 0, 0, 0, time.UTC)

	got, err := decodeEvent(eventRecord(7, "Meetup", start, "go", "cloud"))
	require.NoError(t, err)

	want := Event{ID: 7, Name: "Meetup", StartDatetime: start, Keywords: []string{"cloud", "go"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decodeEvent mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEvent_LocalDateTime(t *testing.T) {
	local := neo4j.LocalDateTime(time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local))

	got, err := decodeEvent(eventRecord(1, "Legacy", local))
	require.NoError(t, err)
	assert.Equal(t, 2024, got.StartDatetime.Year())
	assert.Empty(t, got.Keywords)
}

func TestDecodeEvent_Failures(t *testing.T) {
	start := time.Now()

	tests := []struct {
		name   string
		record *neo4j.Record
		field  string
	}{
		{
			name:   "missing column",
			record: record(colEventName, "x", colEventStart, start, colEventKeywords, []any{}),
			field:  colEventID,
		},
		{
			name:   "null name",
			record: record(colEventID, int64(1), colEventName, nil, colEventStart, start, colEventKeywords, []any{}),
			field:  colEventName,
		},
		{
			name:   "id is a string",
			record: record(colEventID, "1", colEventName, "x", colEventStart, start, colEventKeywords, []any{}),
			field:  colEventID,
		},
		{
			name:   "keyword is not a string",
			record: eventRecord(1, "x", start, "go", int64(3)),
			field:  "keywords[1]",
		},
		{
			name:   "start is a number",
			record: eventRecord(1, "x", int64(1700000000)),
			field:  colEventStart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeEvent(tt.record)
			require.Error(t, err)

			var decodeErr *apperrors.ErrDecodeFailed
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.field, decodeErr.Field)
			assert.Equal(t, apperrors.EntityEvent, decodeErr.Entity)
		})
	}
}

func TestDecodeUserNode(t *testing.T) {
	rec := record("u", neo4j.Node{Labels: []string{"User"}, Props: map[string]any{"name": "ada"}})

	user, err := decodeUserNode(rec, "u")
	require.NoError(t, err)
	assert.Equal(t, User{Name: "ada"}, user)

	_, err = decodeUserNode(record("u", "ada"), "u")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDecode))
}
