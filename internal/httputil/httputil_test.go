package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"rephraser/internal/errs"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind   errs.Kind
		status int
	}{
		{errs.KindActionNotFound, http.StatusNotFound},
		{errs.KindInvalidTemplate, http.StatusUnprocessableEntity},
		{errs.KindRateLimit, http.StatusTooManyRequests},
		{errs.KindAuth, http.StatusBadGateway},
		{errs.KindNetwork, http.StatusBadGateway},
		{errs.KindService, http.StatusBadGateway},
		{errs.KindAPI, http.StatusBadGateway},
		{errs.KindConfig, http.StatusInternalServerError},
		{errs.KindUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.status, StatusForKind(tt.kind))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusTeapot, map[string]any{"ok": true})

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())
}
