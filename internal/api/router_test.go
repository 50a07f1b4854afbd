package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type listOnlyUsers struct {
	user.Service
}

func (listOnlyUsers) List(context.Context) ([]*user.User, error) {
	return []*user.User{{ID: 1, Name: "Ann", Email: "ann@example.com"}}, nil
}

func newTestRouter(tm *auth.TokenManager, health func(context.Context) error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Config{
		Logger:       zerolog.Nop(),
		UserService:  listOnlyUsers{},
		TokenManager: tm,
		Health:       health,
	})
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	ok := newTestRouter(nil, func(context.Context) error { return nil })
	w := serve(ok, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	down := newTestRouter(nil, func(context.Context) error { return errors.New("db down") })
	w = serve(down, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(nil, nil)
	serve(r, httptest.NewRequest(http.MethodGet, "/users", nil))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shareit_http_requests_total")
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(nil, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/users", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Ann","email":"ann@example.com"}]`, w.Body.String())

	// Actor header is required outside /users.
	for _, path := range []string{"/items", "/bookings", "/requests"} {
		w := serve(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestGatewayTokenRequired(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Minute)
	r := newTestRouter(tm, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := tm.Generate("")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(auth.TokenHeader, token)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Health stays open for probes.
	w = serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
