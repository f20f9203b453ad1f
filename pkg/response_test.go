package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", err: fmt.Errorf("%w: blog not found", ErrNotFound), wantStatus: http.StatusNotFound, wantMsg: "blog not found"},
		{name: "bad request", err: fmt.Errorf("%w: malformatted id", ErrBadRequest), wantStatus: http.StatusBadRequest, wantMsg: "malformatted id"},
		{
			name:       "too many tries",
			err:        fmt.Errorf("%w: too many login attempts, try again in 20 seconds", ErrTooManyTries),
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    "too many login attempts, try again in 20 seconds",
		},
		{name: "bare sentinel", err: ErrForbidden, wantStatus: http.StatusForbidden, wantMsg: "forbidden"},
		{name: "unknown error is hidden", err: errors.New("disk on fire"), wantStatus: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Error(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}
