// Package pagination reads limit/skip windows from a request and derives
// page metadata from a total count.
package pagination

import (
	"net/http"
	"strconv"
)

// MaxLimit caps any requested page size.
const MaxLimit = 100

// Params is a skip/limit window.
type Params struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
}

// FromRequest reads ?limit= and ?skip=. Missing or invalid values fall back
// to defaultLimit and 0; limit is clamped to [1, MaxLimit].
func FromRequest(r *http.Request, defaultLimit int) Params {
	return Parse(r.URL.Query().Get("limit"), r.URL.Query().Get("skip"), defaultLimit)
}

// Parse is FromRequest for raw strings.
func Parse(limit, skip string, defaultLimit int) Params {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	p := Params{Limit: defaultLimit}

	if v, err := strconv.Atoi(limit); err == nil && v > 0 {
		p.Limit = v
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if v, err := strconv.Atoi(skip); err == nil && v > 0 {
		p.Skip = v
	}
	return p
}

// Meta is the page block that accompanies a list.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	TotalPages int64 `json:"totalPages"`
}

// NewMeta computes page = floor(skip/limit)+1 and
// totalPages = ceil(total/limit).
func NewMeta(total int64, p Params) Meta {
	limit := int64(p.Limit)
	if limit <= 0 {
		limit = 1
	}
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	return Meta{
		Total:      total,
		Page:       int64(p.Skip)/limit + 1,
		TotalPages: pages,
	}
}
