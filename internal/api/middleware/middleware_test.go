package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	var got int64
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUserID(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		status int
		userID int64
	}{
		{name: "valid", header: "42", status: http.StatusOK, userID: 42},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "not a number", header: "abc", status: http.StatusUnauthorized},
		{name: "negative", header: "-1", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.userID, got)
		})
	}
}

func TestRequestID(t *testing.T) {
	var fromCtx string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, fromCtx)

	const incoming = "7f1c1f5e-5d3a-4a57-9e55-2f0f2b8a3c11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2, time.Minute, false)
	rl.now = func() time.Time { return now }
	h := rl.Limit(http.HandlerFunc(okHandler))

	do := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(UserIDHeader, user)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("1"))
	assert.Equal(t, http.StatusOK, do("1"))
	assert.Equal(t, http.StatusTooManyRequests, do("1"))
	assert.Equal(t, http.StatusOK, do("2"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, do("1"))

	now = now.Add(2 * time.Minute)
	do("3")
	rl.mu.Lock()
	_, kept := rl.visitors["user:1"]
	rl.mu.Unlock()
	assert.True(t, kept, "requests do not evict other clients")

	rl.sweep()
	rl.mu.Lock()
	_, kept = rl.visitors["user:1"]
	_, active := rl.visitors["user:3"]
	rl.mu.Unlock()
	assert.False(t, kept)
	assert.True(t, active)
}

func TestRateLimiter_ForwardedForRequiresTrustedProxy(t *testing.T) {
	do := func(rl *RateLimiter, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.5:41234"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		rl.Limit(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)
		return rec.Code
	}

	direct := NewRateLimiter(1, 1, time.Minute, false)
	assert.Equal(t, http.StatusOK, do(direct, "1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, do(direct, "2.2.2.2"), "spoofed header must not reset the limit")

	proxied := NewRateLimiter(1, 1, time.Minute, true)
	assert.Equal(t, http.StatusOK, do(proxied, "1.1.1.1"))
	assert.Equal(t, http.StatusOK, do(proxied, "2.2.2.2, 10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do(proxied, "1.1.1.1"))
}

func TestRateLimiter_CleanupStops(t *testing.T) {
	rl := NewRateLimiter(1, 1, time.Millisecond, false)
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		rl.Cleanup(stop)
		close(done)
	}()
	close(stop)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop")
	}
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "test"))
	r.HandleFunc("/appointments/{appointmentId}", okHandler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments/17", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/appointments/{appointmentId}", "200")))
}
