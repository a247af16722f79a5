package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.IdentityEvent("login", "success")
	r.IdentityEvent("login", "success")
	r.IdentityEvent("login", "invalid credentials")
	r.NotificationFailed("otp")
	r.ContentEvent("fetch_document", "forbidden")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.identityEvents.WithLabelValues("login", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.identityEvents.WithLabelValues("login", "invalid credentials")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.notificationFailures.WithLabelValues("otp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.contentEvents.WithLabelValues("fetch_document", "forbidden")))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.ObserveRequest(http.MethodGet, "/lawyers", http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `legalplatform_http_requests_total{method="GET",route="/lawyers",status="200"} 1`)
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.IdentityEvent("login", "success")
		r.ContentEvent("store_document", "success")
		r.NotificationFailed("otp")
		r.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
