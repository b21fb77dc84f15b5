package admin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regent/pkg/platform/audit"
)

func newRouter(reload Reloader, token string, sink *audit.MemorySink) *chi.Mux {
	r := chi.NewRouter()
	var auditor AuditEmitter
	if sink != nil {
		auditor = audit.NewPublisher(sink)
	}
	New(reload, token, slog.Default(), auditor).Register(r)
	return r
}

func post(router http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/reference/reload", nil)
	if token != "" {
		req.Header.Set("X-Admin-Token", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReload(t *testing.T) {
	var called bool
	sink := audit.NewMemorySink()
	router := newRouter(func(ctx context.Context) error {
		called = true
		return nil
	}, "secret", sink)

	rec := post(router, "secret")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionCatalogueReloaded, events[0].Action)
}

func TestReloadRejectsBadToken(t *testing.T) {
	router := newRouter(func(ctx context.Context) error { return nil }, "secret", nil)

	assert.Equal(t, http.StatusForbidden, post(router, "wrong").Code)
	assert.Equal(t, http.StatusForbidden, post(router, "").Code)
}

func TestReloadDisabledWithoutToken(t *testing.T) {
	router := newRouter(func(ctx context.Context) error { return nil }, "", nil)

	// An empty configured token disables the admin surface entirely.
	assert.Equal(t, http.StatusForbidden, post(router, "").Code)
}

func TestReloadFailure(t *testing.T) {
	router := newRouter(func(ctx context.Context) error {
		return errors.New("yaml: line 12: mapping values are not allowed")
	}, "secret", nil)

	rec := post(router, "secret")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
