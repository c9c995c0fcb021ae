package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"stayspot/pkg/auth"
	"stayspot/pkg/client"
	"stayspot/pkg/config"
	"stayspot/pkg/events"
	"stayspot/pkg/logger"
	"stayspot/pkg/model"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type echoHandler struct {
	posts  int
	logins int
}

func (h *echoHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/open", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})
	router.POST("/api/private", auth.RequireAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		h.posts++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"user":"` + auth.UserID(r.Context()) + `"}`))
	}))
	router.POST("/api/session", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		h.logins++
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), "wrong") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: auth.CookieName, Value: "session-for-owner"})
		w.WriteHeader(http.StatusOK)
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		RateLimitRequests:  100,
		RateLimitWindow:    time.Minute,
		RequestTimeout:     5 * time.Second,
		IdempotencyTTL:     time.Minute,
		MaxRequestSize:     1 << 20,
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		IdleTimeout:        time.Second,
		ShutdownTimeout:    time.Second,
		Log:                logger.Discard(),
		Client:             client.NewClient(),
	}
}

func newTestApp(t *testing.T) (*Application, *auth.TokenManager, *echoHandler) {
	t.Helper()
	tokens := auth.NewTokenManager(testSecret, time.Hour, false)
	h := &echoHandler{}
	a := NewApplication(testConfig())
	a.SetApp(tokens, events.NewMemoryPublisher(), h)
	t.Cleanup(a.Stop)
	return a, tokens, h
}

func serve(a *Application, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestApplication_HealthEndpoints(t *testing.T) {
	a, _, _ := newTestApp(t)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestApplication_UnknownRoute(t *testing.T) {
	a, _, _ := newTestApp(t)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/api/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, MessageRouteNotFound, body["message"])
}

func TestApplication_RequestIDHeader(t *testing.T) {
	a, _, _ := newTestApp(t)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/api/open", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApplication_CORSPreflight(t *testing.T) {
	a, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/private", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(a, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestApplication_RequiresJSONBody(t *testing.T) {
	a, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/private", strings.NewReader("x=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(a, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestApplication_Authentication(t *testing.T) {
	a, tokens, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/private", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(a, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := tokens.Issue(&model.User{ID: "user-1", Email: "a@b.io", Username: "demo-user"})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/api/private", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec = serve(a, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"user":"user-1"}`, rec.Body.String())
}

func TestApplication_IdempotentReplay(t *testing.T) {
	a, tokens, h := newTestApp(t)

	token, _, err := tokens.Issue(&model.User{ID: "user-1", Email: "a@b.io", Username: "demo-user"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/private", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Idempotency-Key", "key-1")
		rec := serve(a, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	assert.Equal(t, 1, h.posts)
}

func TestApplication_AnonymousRequestsAreNotReplayed(t *testing.T) {
	a, _, h := newTestApp(t)

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "login-1")
		return serve(a, req)
	}

	owner := login(`{"password":"right"}`)
	assert.Equal(t, http.StatusOK, owner.Code)
	assert.NotEmpty(t, owner.Header().Get("Set-Cookie"))

	other := login(`{"password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, other.Code)
	assert.Empty(t, other.Header().Get("Set-Cookie"))
	assert.Empty(t, other.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, 2, h.logins)
}

func TestApplication_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRequests = 1
	a := NewApplication(cfg)
	a.SetApp(auth.NewTokenManager(testSecret, time.Hour, false), events.NewMemoryPublisher(), &echoHandler{})
	t.Cleanup(a.Stop)

	codes := make([]int, 0, 3)
	for _, forwarded := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/open", nil)
		req.RemoteAddr = "203.0.113.9:5000"
		req.Header.Set("X-Forwarded-For", forwarded)
		codes = append(codes, serve(a, req).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestApplication_RateLimitBehindTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRequests = 1
	cfg.TrustedProxies = []string{"10.0.0.0/8"}
	a := NewApplication(cfg)
	a.SetApp(auth.NewTokenManager(testSecret, time.Hour, false), events.NewMemoryPublisher(), &echoHandler{})
	t.Cleanup(a.Stop)

	send := func(client string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/open", nil)
		req.RemoteAddr = "10.0.0.2:5000"
		req.Header.Set("X-Forwarded-For", client)
		return serve(a, req).Code
	}

	assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
	assert.Equal(t, http.StatusOK, send("198.51.100.2"))
}
