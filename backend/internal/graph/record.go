package graph

import (
	"fmt"
	"sort"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	apperrors "eventgraph/backend/pkg/errors"
)

// ============================================================================
// Typed record accessors
// ============================================================================
//
// Every accessor fails with ErrDecodeFailed instead of falling back to a zero
// value, so a malformed row never reaches a caller as a half-filled entity.

func recordValue(record *neo4j.Record, entity apperrors.EntityKind, key string) (any, error) {
	val, ok := record.Get(key)
	if !ok {
		return nil, apperrors.NewDecodeFailed(entity, key, "column missing")
	}
	if val == nil {
		return nil, apperrors.NewDecodeFailed(entity, key, "null value")
	}
	return val, nil
}

func recordInt64(record *neo4j.Record, entity apperrors.EntityKind, key string) (int64, error) {
	val, err := recordValue(record, entity, key)
	if err != nil {
		return 0, err
	}
	switch v := val.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, apperrors.NewDecodeFailed(entity, key, fmt.Sprintf("expected integer, got %T", val))
	}
}

func recordString(record *neo4j.Record, entity apperrors.EntityKind, key string) (string, error) {
	val, err := recordValue(record, entity, key)
	if err != nil {
		return "", err
	}
	s, ok := val.(string)
	if !ok {
		return "", apperrors.NewDecodeFailed(entity, key, fmt.Sprintf("expected string, got %T", val))
	}
	return s, nil
}

func recordBool(record *neo4j.Record, entity apperrors.EntityKind, key string) (bool, error) {
	val, err := recordValue(record, entity, key)
	if err != nil {
		return false, err
	}
	b, ok := val.(bool)
	if !ok {
		return false, apperrors.NewDecodeFailed(entity, key, fmt.Sprintf("expected boolean, got %T", val))
	}
	return b, nil
}

// recordStrings decodes a list column. The result is sorted so keyword sets
// compare equal regardless of collection order.
func recordStrings(record *neo4j.Record, entity apperrors.EntityKind, key string) ([]string, error) {
	val, err := recordValue(record, entity, key)
	if err != nil {
		return nil, err
	}

	var out []string
	switch v := val.(type) {
	case []string:
		out = append(out, v...)
	case []any:
		out = make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, apperrors.NewDecodeFailed(entity, fmt.Sprintf("%s[%d]", key, i), fmt.Sprintf("expected string, got %T", item))
			}
			out = append(out, s)
		}
	default:
		return nil, apperrors.NewDecodeFailed(entity, key, fmt.Sprintf("expected list, got %T", val))
	}

	sort.Strings(out)
	return out, nil
}

func recordTime(record *neo4j.Record, entity apperrors.EntityKind, key string) (time.Time, error) {
	val, err := recordValue(record, entity, key)
	if err != nil {
		return time.Time{}, err
	}
	switch v := val.(type) {
	case time.Time:
		return v, nil
	case neo4j.LocalDateTime:
		return v.Time(), nil
	case string:
		t, perr := time.Parse(time.RFC3339Nano, v)
		if perr != nil {
			return time.Time{}, apperrors.NewDecodeFailed(entity, key, "unparseable timestamp")
		}
		return t, nil
	default:
		return time.Time{}, apperrors.NewDecodeFailed(entity, key, fmt.Sprintf("expected datetime, got %T", val))
	}
}

// ============================================================================
// Entity decoders
// ============================================================================

// Column names shared by every event projection
const (
	colEventID       = "eventId"
	colEventName     = "eventName"
	colEventStart    = "start"
	colEventKeywords = "keywords"
)

func decodeEvent(record *neo4j.Record) (Event, error) {
	id, err := recordInt64(record, apperrors.EntityEvent, colEventID)
	if err != nil {
		return Event{}, err
	}
	name, err := recordString(record, apperrors.EntityEvent, colEventName)
	if err != nil {
		return Event{}, err
	}
	start, err := recordTime(record, apperrors.EntityEvent, colEventStart)
	if err != nil {
		return Event{}, err
	}
	keywords, err := recordStrings(record, apperrors.EntityEvent, colEventKeywords)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:            id,
		Name:          name,
		StartDatetime: start,
		Keywords:      keywords,
	}, nil
}

func decodeEvents(records []*neo4j.Record) ([]Event, error) {
	events := make([]Event, 0, len(records))
	for _, record := range records {
		event, err := decodeEvent(record)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// decodeUserNode reads a User from a node column
func decodeUserNode(record *neo4j.Record, key string) (User, error) {
	val, err := recordValue(record, apperrors.EntityUser, key)
	if err != nil {
		return User{}, err
	}
	node, ok := val.(neo4j.Node)
	if !ok {
		return User{}, apperrors.NewDecodeFailed(apperrors.EntityUser, key, fmt.Sprintf("expected node, got %T", val))
	}
	name, ok := node.Props["name"].(string)
	if !ok {
		return User{}, apperrors.NewDecodeFailed(apperrors.EntityUser, "name", "missing or not a string")
	}
	return User{Name: name}, nil
}
