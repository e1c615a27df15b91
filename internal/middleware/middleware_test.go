package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
)

type stubVerifier struct {
	claims *models.AccessClaims
	err    error
	seen   string
}

func (s *stubVerifier) Verify(token string) (*models.AccessClaims, error) {
	s.seen = token
	return s.claims, s.err
}

type stubCounter struct{ paths []string }

func (s *stubCounter) RecordRequest(path string) { s.paths = append(s.paths, path) }

type stubObserver struct{ routes []string }

func (s *stubObserver) ObserveHTTPRequest(_, path string, _ int, _ time.Duration) {
	s.routes = append(s.routes, path)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(verifier TokenVerifier, roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/tables", JWT(verifier), RequireRoles(roles...), func(c *gin.Context) {
		claims, _ := ClaimsFromContext(c)
		c.String(http.StatusOK, claims.Role)
	})
	return r
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	r := protectedRouter(&stubVerifier{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tables", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTRejectsInvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")}
	r := protectedRouter(verifier)
	req := httptest.NewRequest(http.MethodGet, "/tables", nil)
	req.Header.Set("Authorization", "Bearer abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "abc", verifier.seen)
}

func TestJWTAndRoles(t *testing.T) {
	cases := []struct {
		role  string
		roles []string
		code  int
	}{
		{"authenticated", []string{"service_role", "authenticated"}, http.StatusOK},
		{"anon", []string{"service_role", "authenticated"}, http.StatusForbidden},
		{"anon", nil, http.StatusOK},
	}
	for _, tc := range cases {
		r := protectedRouter(&stubVerifier{claims: &models.AccessClaims{Role: tc.role}}, tc.roles...)
		req := httptest.NewRequest(http.MethodGet, "/tables", nil)
		req.Header.Set("Authorization", "bearer token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.code, w.Code, tc.role)
	}
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireRoles("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMetricsSkipsMetricsPaths(t *testing.T) {
	counter := &stubCounter{}
	observer := &stubObserver{}
	r := gin.New()
	r.Use(Metrics(counter, observer, "/api/metrics", "/metrics"))
	r.GET("/api/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/teachers", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/teachers?search=a", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/also-missing", nil))

	assert.Equal(t, []string{"/api/teachers", UnmatchedRoute, UnmatchedRoute}, counter.paths)
	assert.Equal(t, []string{"/api/teachers", UnmatchedRoute, UnmatchedRoute}, observer.routes)
}

func TestResponseMeta(t *testing.T) {
	r := gin.New()
	var meta map[string]interface{}
	r.GET("/x", WithResponseMeta(), func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	require.NotNil(t, meta)
	assert.Equal(t, true, meta["cache_hit"])
	assert.Contains(t, meta, "processing_time_ms")
	assert.NotContains(t, meta, "started_at")
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer  abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = bearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
}
