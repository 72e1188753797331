package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"not found", NotFound("Product"), http.StatusNotFound},
		{"missing with message", Missing("Email not found in subscribers"), http.StatusNotFound},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"unauthorized", Unauthorized("no"), http.StatusUnauthorized},
		{"forbidden", Forbidden("no"), http.StatusForbidden},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("svc: %w", NotFound("Review")), http.StatusNotFound},
		{"bare sentinel", fmt.Errorf("x: %w", ErrConflict), http.StatusConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage_HidesInternalDetail(t *testing.T) {
	err := Internal(errors.New("mongo: connection refused on 10.0.0.3"))
	assert.Equal(t, "Internal server error", PublicMessage(err))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw")))
	assert.Equal(t, "Product not found", PublicMessage(NotFound("Product")))
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("duplicate key")
	err := &AppError{Kind: KindConflict, Message: "dup", Status: http.StatusConflict, Err: cause}
	assert.ErrorIs(t, err, cause)

	assert.True(t, IsNotFound(Wrap(NotFound("User"), "load")))
	assert.True(t, IsConflict(Conflict("Email already subscribed")))
	assert.Nil(t, Wrap(nil, "noop"))
}

func TestValidationFields(t *testing.T) {
	err := ValidationFields("Missing required fields", map[string]string{"name": "is required"})
	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "is required", appErr.Fields["name"])
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}
