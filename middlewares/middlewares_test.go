package middlewares

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediTrack/authz"
	"MediTrack/models"
	"MediTrack/repositories"
	"MediTrack/services"
	"MediTrack/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testKey = "0123456789abcdef0123456789abcdef"

func newTokens(t *testing.T) *utils.TokenMaker {
	t.Helper()
	tokens, err := utils.NewTokenMaker(testKey, time.Hour)
	require.NoError(t, err)
	return tokens
}

func perform(r http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func protectedRouter(t *testing.T, tokens *utils.TokenMaker) *gin.Engine {
	authorizer, err := authz.NewAuthorizer()
	require.NoError(t, err)

	r := gin.New()
	r.Use(TokenAuthMiddleware(tokens))
	r.GET("/me", func(c *gin.Context) {
		p, err := ExtractPrincipalFromContext(c.Request.Context())
		require.NoError(t, err)
		c.JSON(http.StatusOK, p)
	})
	r.DELETE("/patients/:id", Authorize(authorizer, authz.ResourcePatient, authz.ActionDelete), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestTokenAuthMiddleware(t *testing.T) {
	tokens := newTokens(t)
	r := protectedRouter(t, tokens)
	token, _, err := tokens.GenerateAccessToken(5, "nurse", models.RoleClinician)
	require.NoError(t, err)

	w := perform(r, http.MethodGet, "/me", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"nurse"`)

	w = perform(r, http.MethodGet, "/me?accessToken="+token, nil)
	assert.Equal(t, http.StatusOK, w.Code, "query parameter is accepted for download links")

	w = perform(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodGet, "/me", http.Header{"Authorization": {"Bearer nope"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize(t *testing.T) {
	tokens := newTokens(t)
	r := protectedRouter(t, tokens)
	clinician, _, err := tokens.GenerateAccessToken(5, "nurse", models.RoleClinician)
	require.NoError(t, err)
	admin, _, err := tokens.GenerateAccessToken(1, "admin", models.RoleAdmin)
	require.NoError(t, err)

	w := perform(r, http.MethodDelete, "/patients/1", http.Header{"Authorization": {"Bearer " + clinician}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, http.MethodDelete, "/patients/1", http.Header{"Authorization": {"Bearer " + admin}})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHttpError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{&services.ValidationError{Err: validation.Errors{"name": validation.ErrRequired}}, http.StatusBadRequest},
		{authz.Unauthenticated("no"), http.StatusUnauthorized},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{authz.Forbidden("no"), http.StatusForbidden},
		{fmt.Errorf("wrapped: %w", repositories.ErrPatientNotFound), http.StatusNotFound},
		{repositories.ErrDuplicateMRN, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			HttpError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HttpError(c, &services.ValidationError{Err: validation.Errors{"name": validation.ErrRequired}})
	assert.Contains(t, w.Body.String(), `"fields":{"name":"cannot be blank"}`)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HttpError(c, errors.New("pq: password authentication failed"))
	assert.NotContains(t, w.Body.String(), "pq:", "internal details are not leaked")
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiterMiddleware(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 1}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(r, http.MethodGet, "/", nil).Code)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.9:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code, "limits are per client")
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	d := &rateLimiterData{
		config:  RateLimiterConfig{RequestsPerSecond: 1, Burst: 1, IdleTTL: time.Minute},
		clients: map[string]*clientLimiter{},
	}
	start := time.Now()
	assert.True(t, d.allow("a", start))
	assert.True(t, d.allow("b", start.Add(2*time.Minute)))
	assert.NotContains(t, d.clients, "a")
}

func TestRequestIDAndLogging(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID(), LoggingMiddleware(logger), Recovery(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := perform(r, http.MethodGet, "/ok", http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"abc-123"`)

	w = perform(r, http.MethodGet, "/ok", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	w = perform(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/patients/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	perform(r, http.MethodGet, "/patients/7", nil)
	m.ReportGenerated("overdue", "csv")

	w := perform(r, http.MethodGet, "/metrics", nil)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `meditrack_http_requests_total{method="GET",route="/patients/:id",status="200"} 1`)
	assert.Contains(t, string(body), `meditrack_reports_generated_total{format="csv",report="overdue"} 1`)
}

func TestCorsMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CorsMiddleware([]string{"https://clinic.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/", http.Header{"Origin": {"https://clinic.example"}})
	assert.Equal(t, "https://clinic.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(r, http.MethodGet, "/", http.Header{"Origin": {"https://evil.example"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
