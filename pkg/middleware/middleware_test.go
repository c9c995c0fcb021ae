package middleware

import (
	"net/http"
	"net/http/httptest"
	"stayspot/pkg/logger"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spots", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}

func TestRequestLogging_SetsRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	incoming := "6f1c2a7e-2d5b-4c1e-9a3b-1f2e3d4c5b6a"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, incoming, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "not-a-uuid", seen)
}

func TestContentTypeValidation(t *testing.T) {
	h := ContentTypeValidation(logger.Discard())(okHandler())

	tests := []struct {
		name        string
		method      string
		body        string
		contentType string
		want        int
	}{
		{"json post", http.MethodPost, `{}`, "application/json; charset=utf-8", http.StatusOK},
		{"form post", http.MethodPost, `a=b`, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"missing header", http.MethodPut, `{}`, "", http.StatusUnsupportedMediaType},
		{"empty post", http.MethodPost, ``, "", http.StatusOK},
		{"get", http.MethodGet, ``, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/spots", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestMaxRequestSize(t *testing.T) {
	h := MaxRequestSize(8)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"0123456789"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientRateLimit(t *testing.T) {
	limiter := NewClientRateLimiter(2, time.Minute, nil, logger.Discard())
	defer limiter.Stop()
	h := ClientRateLimit(limiter)(okHandler())

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/spots", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.10:5555"
	assert.Equal(t, "192.168.1.10", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "192.168.1.10", ClientIP(req))
}

func TestClientRateLimit_IgnoresForwardedForFromClients(t *testing.T) {
	limiter := NewClientRateLimiter(1, time.Minute, nil, logger.Discard())
	defer limiter.Stop()
	h := ClientRateLimit(limiter)(okHandler())

	codes := make([]int, 0, 3)
	for _, forwarded := range []string{"", "1.1.1.1", "2.2.2.2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/spots", nil)
		req.RemoteAddr = "10.0.0.9:4000"
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestTrustedProxyIP(t *testing.T) {
	extract := TrustedProxyIP([]string{"10.0.0.0/8", "192.168.1.1", "not-an-ip"}, logger.Discard())

	tests := []struct {
		name      string
		remote    string
		forwarded string
		want      string
	}{
		{"untrusted peer keeps its own address", "203.0.113.50:1234", "1.1.1.1", "203.0.113.50"},
		{"trusted peer without header", "10.1.2.3:1234", "", "10.1.2.3"},
		{"trusted peer forwards the client", "10.1.2.3:1234", "198.51.100.4", "198.51.100.4"},
		{"spoofed left hops are skipped", "10.1.2.3:1234", "1.1.1.1, 198.51.100.4", "198.51.100.4"},
		{"trusted hops are walked over", "192.168.1.1:80", "198.51.100.4, 10.9.9.9", "198.51.100.4"},
		{"garbage hop stops the walk", "10.1.2.3:1234", "198.51.100.4, junk", "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, extract(req))
		})
	}
}

func TestTrustedProxyIP_EmptyListUsesConnection(t *testing.T) {
	extract := TrustedProxyIP(nil, logger.Discard())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:1234"
	req.Header.Set("X-Forwarded-For", "198.51.100.4")
	assert.Equal(t, "10.1.2.3", extract(req))
}

func TestRequestTimeout(t *testing.T) {
	h := RequestTimeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.JSONEq(t, `{"message":"Request timeout"}`, rec.Body.String())
}

func TestIdempotency(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls int32
	h := Idempotency(store, "", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/spots", nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send("abc")
	second := send("abc")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	send("")
	send("")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestIdempotency_ScopedPerCaller(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls int32
	scope := func(r *http.Request) string { return r.Header.Get("X-Caller") }
	h := Idempotency(store, "", scope)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
	}))

	for _, caller := range []string{"alice", "bob", "alice"} {
		req := httptest.NewRequest(http.MethodPost, "/api/spots", nil)
		req.Header.Set(IdempotencyKeyHeader, "same-key")
		req.Header.Set("X-Caller", caller)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_AnonymousCallersPassThrough(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls int32
	scope := func(r *http.Request) string { return r.Header.Get("X-Caller") }
	h := Idempotency(store, "", scope)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/session", nil)
		req.Header.Set(IdempotencyKeyHeader, "shared-key")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Idempotent-Replayed"))
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_DoesNotReplayCookies(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	h := Idempotency(store, "", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "secret"})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/spots", nil)
		req.Header.Set(IdempotencyKeyHeader, "cookie-key")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	assert.NotEmpty(t, first.Header().Get("Set-Cookie"))

	second := send()
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Empty(t, second.Header().Get("Set-Cookie"))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
}
