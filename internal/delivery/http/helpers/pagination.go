package helpers

import (
	"net/http"
	"strconv"

	"joiny/internal/domain"
)

// List query defaults. page_size above MaxPageSize is capped, not rejected.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads ?page= and ?page_size=. Missing, non-numeric or
// non-positive values fall back to the defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.PaginationParams{
		Page:     positiveInt(q.Get("page"), DefaultPage, 0),
		PageSize: positiveInt(q.Get("page_size"), DefaultPageSize, MaxPageSize),
	}
}

// positiveInt parses s, using fallback for anything below 1. A ceiling of 0 means unbounded.
func positiveInt(s string, fallback, ceiling int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return fallback
	}
	if ceiling > 0 && v > ceiling {
		return ceiling
	}
	return v
}

// PaginationMeta describes the window a list response covers.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta reports total_pages as ceil(total / page_size), or 0 without a page size.
func NewPaginationMeta(p domain.PaginationParams, total int) PaginationMeta {
	meta := PaginationMeta{Page: p.Page, PageSize: p.PageSize, Total: total}
	if p.PageSize > 0 {
		meta.TotalPages = (total + p.PageSize - 1) / p.PageSize
	}
	return meta
}

// Page is the body of the per-event list endpoints (participants, todos).
type Page[T any] struct {
	Results    []T            `json:"results"`
	Pagination PaginationMeta `json:"pagination"`
}

// Paginate cuts one page out of a fully loaded list. A page past the end
// yields empty results with the real total.
func Paginate[T any](items []T, p domain.PaginationParams) Page[T] {
	total := len(items)
	start := min(p.Offset(), total)
	end := total
	if limit := p.Limit(); limit >= 0 {
		end = min(start+limit, total)
	}
	results := make([]T, end-start)
	copy(results, items[start:end])
	return Page[T]{Results: results, Pagination: NewPaginationMeta(p, total)}
}
