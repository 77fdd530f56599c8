package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "eventgraph/backend/pkg/errors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PaginationParams are the 1-based page and page size of a list request
type PaginationParams struct {
	Page  int
	Limit int
}

// Offset is the number of items before the requested page, capped at size.
// The cap keeps page numbers far past the end from overflowing.
func (p PaginationParams) Offset(size int) int {
	if p.Limit <= 0 || p.Page <= 1 {
		return 0
	}
	if p.Page-1 > size/p.Limit {
		return size
	}
	if offset := (p.Page - 1) * p.Limit; offset < size {
		return offset
	}
	return size
}

// Page is the list envelope returned inside Response.Data
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

func parsePagination(c *gin.Context) (PaginationParams, error) {
	page, err := positiveQuery(c, "page", DefaultPage)
	if err != nil {
		return PaginationParams{}, err
	}
	limit, err := positiveQuery(c, "limit", DefaultLimit)
	if err != nil {
		return PaginationParams{}, err
	}
	return PaginationParams{Page: page, Limit: limit}, nil
}

func positiveQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperrors.NewValidationFailed(key, "must be a positive integer")
	}
	return n, nil
}

// NewPage wraps one page of items that was already cut by the store
func NewPage[T any](items []T, total int64, p PaginationParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := int64(0)
	if p.Limit > 0 {
		pages = total / int64(p.Limit)
		if total%int64(p.Limit) != 0 {
			pages++
		}
	}
	return Page[T]{
		Items: items,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: pages,
	}
}

// Paginate cuts the requested page out of a full, already ordered list
func Paginate[T any](all []T, p PaginationParams) Page[T] {
	start := p.Offset(len(all))
	end := len(all)
	if p.Limit > 0 && p.Limit < end-start {
		end = start + p.Limit
	}
	return NewPage(all[start:end], int64(len(all)), p)
}
