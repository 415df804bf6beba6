package mux

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMux_getHealth(t *testing.T) {
	a := assert.New(t)

	m := NewMux("1.2.3")

	w := httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	a.Equal(http.StatusOK, w.Code)
	a.Equal("application/json", w.Header().Get("Content-Type"))
	a.JSONEq(`{"status":"OK","version":"1.2.3"}`, w.Body.String())
}
