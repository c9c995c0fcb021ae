package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	apperrors "stayspot/pkg/errors"
)

const bodyField = "body"

// DecodeJSON reads a single JSON object from the request body into dst.
// Unknown fields are ignored; malformed bodies answer 400.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperrors.Validation(map[string]string{bodyField: "Request body is required"})
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return apperrors.New(apperrors.CodeTooLarge, "Request body too large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, io.EOF):
		return apperrors.Validation(map[string]string{bodyField: "Request body is required"})
	default:
		return apperrors.Validation(map[string]string{bodyField: "Request body must be valid JSON"})
	}
}
