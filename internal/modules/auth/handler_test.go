package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hoteldash/internal/middleware"
	"hoteldash/internal/pkg/jwt"
	"hoteldash/internal/session"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *session.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	staff := new(mockStaff)
	staff.On("GetByUsername", mock.Anything, "rina").Return(activeStaff(t, "hunter22"), nil)

	store := session.NewMemoryStore()
	jwtService := jwt.New("test-secret", time.Hour)
	h := NewHandler(NewService(NewLocalAuthenticator(staff), store, jwtService))

	router := gin.New()
	v1 := router.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService, store))
	h.RegisterProtectedRoutes(protected)
	return router, store
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_LoginMeLogout(t *testing.T) {
	router, store := newAuthRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Username: "rina", Password: "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.Token)

	w = doJSON(router, http.MethodGet, "/api/v1/auth/me", login.Data.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"rina"`)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/logout", login.Data.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/auth/me", login.Data.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
	assert.Equal(t, 0, store.Sweep())
}

func TestHandler_LoginErrors(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "rina"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Username: "rina", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}
