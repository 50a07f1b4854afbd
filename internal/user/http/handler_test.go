package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, name, email string) (*user.User, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id int64, req user.UpdateRequest) (*user.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockService) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func setupRouter(t *testing.T) (*gin.Engine, *mockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := new(mockService)
	r := gin.New()
	RegisterRoutes(r.Group(""), NewHandler(svc))
	return r, svc
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.On("Create", mock.Anything, "Ann", "ann@example.com").
			Return(&user.User{ID: 1, Name: "Ann", Email: "ann@example.com"}, nil)

		w := do(r, http.MethodPost, "/users", `{"name":"Ann","email":"ann@example.com"}`)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.JSONEq(t, `{"id":1,"name":"Ann","email":"ann@example.com"}`, w.Body.String())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.On("Create", mock.Anything, "Ann", "ann@example.com").Return(nil, user.ErrDuplicateEmail)

		w := do(r, http.MethodPost, "/users", `{"name":"Ann","email":"ann@example.com"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error":"email already used"}`, w.Body.String())
	})

	for name, body := range map[string]string{
		"MissingName":  `{"email":"ann@example.com"}`,
		"InvalidEmail": `{"name":"Ann","email":"not-an-email"}`,
		"MissingEmail": `{"name":"Ann"}`,
		"Malformed":    `{"name":`,
	} {
		t.Run(name, func(t *testing.T) {
			r, svc := setupRouter(t)
			w := do(r, http.MethodPost, "/users", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdate(t *testing.T) {
	t.Run("PartialBody", func(t *testing.T) {
		r, svc := setupRouter(t)
		name := "Annie"
		svc.On("Update", mock.Anything, int64(1), user.UpdateRequest{Name: &name}).
			Return(&user.User{ID: 1, Name: "Annie", Email: "ann@example.com"}, nil)

		w := do(r, http.MethodPatch, "/users/1", `{"name":"Annie"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"name":"Annie"`)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		r, svc := setupRouter(t)
		w := do(r, http.MethodPatch, "/users/1", `{"email":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.On("Update", mock.Anything, int64(9), user.UpdateRequest{}).Return(nil, user.ErrNotFound)

		w := do(r, http.MethodPatch, "/users/9", `{}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetAndList(t *testing.T) {
	r, svc := setupRouter(t)
	svc.On("GetByID", mock.Anything, int64(1)).Return(&user.User{ID: 1, Name: "Ann", Email: "ann@example.com"}, nil)
	svc.On("List", mock.Anything).Return([]*user.User{}, nil)

	w := do(r, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ann","email":"ann@example.com"}`, w.Body.String())

	w = do(r, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = do(r, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete(t *testing.T) {
	r, svc := setupRouter(t)
	svc.On("Delete", mock.Anything, int64(1)).Return(nil)
	svc.On("Delete", mock.Anything, int64(2)).Return(errors.New("db down"))

	w := do(r, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/users/2", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
