package utils

import (
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination carries the page window requested by a list endpoint.
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination interprets raw page/limit query values, falling back to the
// defaults on absent or malformed input.
func ParsePagination(pageStr, limitStr string) Pagination {
	page := DefaultPage
	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}
	limit := DefaultLimit
	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
		limit = v
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset converts the page window into a query offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes ceil(total/limit).
func (p Pagination) TotalPages(total int64) int64 {
	if total == 0 {
		return 0
	}
	return (total + int64(p.Limit) - 1) / int64(p.Limit)
}

// PagedResult is the envelope returned by all list endpoints.
type PagedResult struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int64       `json:"total_pages"`
}

// NewPagedResult wraps a page of items with its pagination metadata.
func NewPagedResult(data interface{}, p Pagination, total int64) PagedResult {
	return PagedResult{
		Data:       data,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: p.TotalPages(total),
	}
}
