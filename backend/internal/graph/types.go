package graph

import (
	"strings"
	"time"
)

// Event is a scheduled occurrence tagged with keywords
type Event struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	StartDatetime time.Time `json:"start_datetime"`
	Keywords      []string  `json:"keywords"`
}

// User is identified by its unique name
type User struct {
	Name string `json:"name"`
}

// UserPage is one page of users plus the total count across all pages
type UserPage struct {
	Users []User
	Total int64
}

// PoolEvent is an event considered by the recommender: either one the user
// is registered to, or an upcoming one.
type PoolEvent struct {
	Event
	Registered bool
}

// EventInput carries the client-writable fields of an event. Any id sent
// by a client is ignored; ids are allocated by the store.
type EventInput struct {
	Name          string    `json:"name" validate:"required"`
	StartDatetime time.Time `json:"start_datetime" validate:"required"`
	Keywords      []string  `json:"keywords" validate:"required,min=1,dive,required"`
}

// Normalize trims whitespace from the name and keywords
func (in EventInput) Normalize() EventInput {
	out := EventInput{
		Name:          strings.TrimSpace(in.Name),
		StartDatetime: in.StartDatetime,
	}
	if in.Keywords != nil {
		out.Keywords = make([]string, len(in.Keywords))
		for i, k := range in.Keywords {
			out.Keywords[i] = strings.TrimSpace(k)
		}
	}
	return out
}

// UniqueKeywords returns the keywords with duplicates removed, first occurrence wins
func UniqueKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
