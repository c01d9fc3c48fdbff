package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkhromov/fittrack/internal/common"
)

func TestWriteServiceError_TaxonomyMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{common.ErrorAlreadyExists, http.StatusConflict},
		{common.ErrorUnauthorized, http.StatusUnauthorized},
		{common.ErrorNotFound, http.StatusNotFound},
		{common.ErrInvalidToken, http.StatusUnauthorized},
		{common.ErrTokenExpired, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", common.ErrorNotFound), http.StatusNotFound},
		{errors.New("raw storage detail"), http.StatusInternalServerError},
		{common.ErrCorruptHash, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		rec := httptest.NewRecorder()
		writeServiceError(rec, tc.err)
		if rec.Code != tc.want {
			t.Fatalf("error %v: got status %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}

func TestWriteServiceError_NeverLeaksDetail(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeServiceError(rec, errors.New(`pq: connection to "10.0.0.12:5432" failed`))

	if got := rec.Body.String(); got != "{\"error\":\"internal error\"}\n" {
		t.Fatalf("leaked internal detail: %s", got)
	}
}
