package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(reg *Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(reg.Middleware)
	r.Get("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", reg.Handler())
	return r
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	router := newRouter(reg)

	for _, path := range []string{"/tasks/1", "/tasks/2", "/ok", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.RequestsTotal.WithLabelValues("GET", "/tasks/{id}", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.RequestsTotal.WithLabelValues("GET", "/ok", "200")))
	assert.Zero(t, testutil.ToFloat64(reg.RequestsInFlight))

	families, err := reg.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "tasks_api_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "route" {
					assert.NotContains(t, lp.GetValue(), "/tasks/1")
				}
			}
		}
	}
}

func TestHandlerServesExposition(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	router := newRouter(reg)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "go_goroutines"))
	assert.True(t, strings.Contains(body, `tasks_api_http_requests_total{method="GET",route="/ok",status="200"} 1`))
}

func TestRegistriesAreIndependent(t *testing.T) {
	t.Parallel()

	a, b := NewRegistry(), NewRegistry()
	newRouter(a).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(a.RequestsTotal.WithLabelValues("GET", "/ok", "200")))
	assert.Zero(t, testutil.ToFloat64(b.RequestsTotal.WithLabelValues("GET", "/ok", "200")))
}
