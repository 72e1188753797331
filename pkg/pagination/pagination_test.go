package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		def   int
		want  Params
	}{
		{"", 20, Params{Limit: 20, Skip: 0}},
		{"?limit=5&skip=10", 20, Params{Limit: 5, Skip: 10}},
		{"?limit=0&skip=-3", 10, Params{Limit: 10, Skip: 0}},
		{"?limit=abc", 50, Params{Limit: 50, Skip: 0}},
		{"?limit=1000", 20, Params{Limit: MaxLimit, Skip: 0}},
		{"", 0, Params{Limit: 20, Skip: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/x"+tt.query, nil)
			assert.Equal(t, tt.want, FromRequest(r, tt.def))
		})
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		p     Params
		want  Meta
	}{
		{"first page", 45, Params{Limit: 20, Skip: 0}, Meta{Total: 45, Page: 1, TotalPages: 3}},
		{"second page", 45, Params{Limit: 20, Skip: 20}, Meta{Total: 45, Page: 2, TotalPages: 3}},
		{"mid-page skip floors", 45, Params{Limit: 20, Skip: 30}, Meta{Total: 45, Page: 2, TotalPages: 3}},
		{"exact multiple", 40, Params{Limit: 20, Skip: 0}, Meta{Total: 40, Page: 1, TotalPages: 2}},
		{"empty", 0, Params{Limit: 20, Skip: 0}, Meta{Total: 0, Page: 1, TotalPages: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMeta(tt.total, tt.p))
		})
	}
}
