package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/config"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/sangkips/remodela-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryKeys struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemoryKeys() *memoryKeys {
	return &memoryKeys{keys: map[string]*entity.IdempotencyKey{}}
}

func (m *memoryKeys) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[userID.String()+key], nil
}

func (m *memoryKeys) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[ikey.UserID.String()+ikey.Key] = ikey
	return nil
}

func (m *memoryKeys) DeleteExpired(context.Context) error { return nil }

func (m *memoryKeys) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.keys)
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()
	tokens, err := jwt.Issue(userID, "admin@lasabana.cr")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("user_id"), "email": c.GetString("user_email")})
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + tokens.AccessToken, http.StatusUnauthorized},
		{"refresh token", "Bearer " + tokens.RefreshToken, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid", "Bearer " + tokens.AccessToken, http.StatusOK},
		{"lowercase scheme", "bearer " + tokens.AccessToken, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.header != "" {
				headers["Authorization"] = tc.header
			}
			w := serve(r, http.MethodGet, "/me", headers)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
				assert.Contains(t, w.Body.String(), "admin@lasabana.cr")
			}
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	limiter := NewIPRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2}, done)
	r := gin.New()
	r.GET("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/login", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/login", nil).Code)

	w := serve(r, http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// other clients keep their own budget
	other := httptest.NewRequest(http.MethodGet, "/login", nil)
	other.RemoteAddr = "10.0.0.9:5555"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIPRateLimiterCleanup(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	limiter := NewIPRateLimiter(RateLimiterConfig{EntryTTL: time.Millisecond}, done)
	limiter.getLimiter("192.0.2.1")
	time.Sleep(5 * time.Millisecond)
	limiter.cleanup()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Empty(t, limiter.limiters)
}

func idempotentRouter(repo *memoryKeys, status *int, calls *int) *gin.Engine {
	userID := uuid.MustParse("5f0c7a51-0000-4000-8000-000000000001")
	r := gin.New()
	r.POST("/quotes",
		func(c *gin.Context) { c.Set("user_id", userID) },
		Idempotency(IdempotencyConfig{Repo: repo, TTL: time.Hour}),
		func(c *gin.Context) {
			*calls++
			c.JSON(*status, gin.H{"call": *calls})
		})
	return r
}

func TestIdempotencyReplaysSuccessfulResponse(t *testing.T) {
	repo := newMemoryKeys()
	status, calls := http.StatusCreated, 0
	r := idempotentRouter(repo, &status, &calls)
	key := map[string]string{IdempotencyKeyHeader: "k-1"}

	first := serve(r, http.MethodPost, "/quotes", key)
	second := serve(r, http.MethodPost, "/quotes", key)

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))

	serve(r, http.MethodPost, "/quotes", nil)
	assert.Equal(t, 2, calls, "requests without a key always run")
}

func TestIdempotencySkipsFailedResponses(t *testing.T) {
	repo := newMemoryKeys()
	status, calls := http.StatusUnprocessableEntity, 0
	r := idempotentRouter(repo, &status, &calls)
	key := map[string]string{IdempotencyKeyHeader: "k-2"}

	serve(r, http.MethodPost, "/quotes", key)
	assert.Zero(t, repo.len())

	status = http.StatusCreated
	w := serve(r, http.MethodPost, "/quotes", key)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, repo.len())
}

func TestIdempotencyIgnoresExpiredKeys(t *testing.T) {
	repo := newMemoryKeys()
	status, calls := http.StatusCreated, 0
	r := idempotentRouter(repo, &status, &calls)
	key := map[string]string{IdempotencyKeyHeader: "k-3"}

	serve(r, http.MethodPost, "/quotes", key)
	for _, k := range repo.keys {
		k.ExpiresAt = time.Now().Add(-time.Minute)
	}

	serve(r, http.MethodPost, "/quotes", key)
	assert.Equal(t, 2, calls)
}

func TestCORSMiddlewareAddsIdempotencyHeader(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{
		AllowedOrigins: []string{"https://admin.lasabana.cr"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.POST("/quotes", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/quotes", map[string]string{
		"Origin":                         "https://admin.lasabana.cr",
		"Access-Control-Request-Method":  "POST",
		"Access-Control-Request-Headers": "Idempotency-Key",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")
}

func TestCORSMiddlewareExposesDocumentAndReplayHeaders(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"https://admin.lasabana.cr"}}))
	r.GET("/quotes/1/pdf", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/quotes/1/pdf", map[string]string{"Origin": "https://admin.lasabana.cr"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://admin.lasabana.cr", w.Header().Get("Access-Control-Allow-Origin"))
	exposed := w.Header().Get("Access-Control-Expose-Headers")
	for _, h := range []string{"Content-Disposition", "Retry-After", "X-Idempotency-Replayed"} {
		assert.Contains(t, exposed, h)
	}

	w = serve(r, http.MethodGet, "/quotes/1/pdf", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWithRequiredHeaders(t *testing.T) {
	got := withRequiredHeaders([]string{"Origin", "idempotency-key", "authorization"})

	assert.Equal(t, []string{"Origin", "idempotency-key", "authorization", "Accept", "Content-Type", "X-Request-ID"}, got)
	assert.ElementsMatch(t, requiredHeaders, withRequiredHeaders(nil))
}
