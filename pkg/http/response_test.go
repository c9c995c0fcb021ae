package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	apperrors "stayspot/pkg/errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation error keeps field messages",
			err:        apperrors.Validation(map[string]string{"page": "Page must be greater than or equal to 1"}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Bad Request","errors":{"page":"Page must be greater than or equal to 1"}}`,
		},
		{
			name:       "not found",
			err:        apperrors.NotFound("Spot"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"Spot couldn't be found"}`,
		},
		{
			name:       "plain error is hidden",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, WriteError(rec, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"cabin"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "cabin", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	err := DecodeJSON(req, &dst)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	err = DecodeJSON(req, &dst)
	assert.Equal(t, "Request body is required", apperrors.AsAppError(err).Errors[bodyField])
}

func TestDecodeJSON_IgnoresUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"cabin","extra":true}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "cabin", dst.Name)
}
