package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"mindscan_backend/internal/feature/auth/domain/entity"
	"mindscan_backend/internal/feature/auth/usecase"
	jwtmw "mindscan_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	SignupFunc      func(ctx context.Context, email, password string) error
	LoginFunc       func(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error)
	RefreshFunc     func(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error)
	LogoutFunc      func(ctx context.Context, refreshToken string) error
	CurrentUserFunc func(ctx context.Context, userID uint) (*entity.User, error)
}

// Signup is the mock implementation of the Signup method.
func (m *mockAuthUsecase) Signup(ctx context.Context, email, password string) error {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, email, password)
	}
	return nil // Default: success
}

// Login is the mock implementation of the Login method.
func (m *mockAuthUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, userAgent, ipAddress)
	}
	return nil, errors.New("login failed") // Default: failure
}

// Refresh is the mock implementation of the Refresh method.
func (m *mockAuthUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken, userAgent, ipAddress)
	}
	return nil, usecase.ErrInvalidRefreshToken // Default: failure
}

// Logout is the mock implementation of the Logout method.
func (m *mockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil // Default: success
}

// CurrentUser is the mock implementation of the CurrentUser method.
func (m *mockAuthUsecase) CurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, userID)
	}
	return nil, usecase.ErrUserNotFound // Default: not found
}

// postJSON sends a JSON POST request to the router and records the response.
func postJSON(router *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockSignupFunc func(ctx context.Context, email, password string) error
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:           "success: user registration",
			requestBody:    gin.H{"email": "test@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, email, password string) error { return nil },
			expectedStatus: http.StatusCreated,
			expectedBody:   gin.H{"message": "ok"},
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"email": "invalid-email", "password": "password123"},
			mockSignupFunc: nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"email": "test@example.com", "password": "short"},
			mockSignupFunc: nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: duplicate email hides the reason",
			requestBody: gin.H{"email": "existing@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, email, password string) error {
				return usecase.ErrEmailAlreadyExists
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   gin.H{"error": "signup failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{SignupFunc: tt.mockSignupFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/signup", handler.Signup)

			w := postJSON(router, "/signup", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testPair := &usecase.TokenPair{
		AccessToken:  "dummy-jwt-token",
		RefreshToken: "dummy-refresh-token",
		ExpiresIn:    900,
	}

	tests := []struct {
		name           string
		requestBody    gin.H
		mockLoginFunc  func(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:        "success: user login",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error) {
				return testPair, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: gin.H{
				"access_token":  "dummy-jwt-token",
				"refresh_token": "dummy-refresh-token",
				"expires_in":    float64(900),
			},
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"email": "invalid-email", "password": "password123"},
			mockLoginFunc:  nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"email": "test@example.com"},
			mockLoginFunc:  nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: invalid credentials (usecase error)",
			requestBody: gin.H{"email": "wrong@example.com", "password": "wrong-password"},
			mockLoginFunc: func(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error) {
				return nil, errors.New("invalid email or password")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid email or password"},
		},
		{
			name:        "failure: internal error is hidden",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error) {
				return nil, errors.New("failed to generate token: signing error")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid email or password"}, // Usecase error message is hidden
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LoginFunc: tt.mockLoginFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/login", handler.Login)

			w := postJSON(router, "/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Login_PassesClientMetadata(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotUserAgent string
	mockUC := &mockAuthUsecase{
		LoginFunc: func(ctx context.Context, email, password, userAgent, ipAddress string) (*usecase.TokenPair, error) {
			gotUserAgent = userAgent
			return &usecase.TokenPair{AccessToken: "t", RefreshToken: "r", ExpiresIn: 900}, nil
		},
	}
	handler := NewAuthHandler(mockUC)

	router := gin.New()
	router.POST("/login", handler.Login)

	body, _ := json.Marshal(gin.H{"email": "test@example.com", "password": "password123"})
	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-browser/1.0")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-browser/1.0", gotUserAgent)
}

func TestAuthHandler_Refresh(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		requestBody     gin.H
		mockRefreshFunc func(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error)
		expectedStatus  int
		expectedBody    gin.H
	}{
		{
			name:        "success: token refresh",
			requestBody: gin.H{"refresh_token": "valid-refresh-token"},
			mockRefreshFunc: func(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error) {
				return &usecase.TokenPair{
					AccessToken:  "new-jwt-token",
					RefreshToken: "new-refresh-token",
					ExpiresIn:    900,
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: gin.H{
				"access_token":  "new-jwt-token",
				"refresh_token": "new-refresh-token",
				"expires_in":    float64(900),
			},
		},
		{
			name:            "failure: missing refresh token",
			requestBody:     gin.H{},
			mockRefreshFunc: nil, // Usecase is not called
			expectedStatus:  http.StatusBadRequest,
			expectedBody:    gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: expired session is hidden behind a generic message",
			requestBody: gin.H{"refresh_token": "expired-token"},
			mockRefreshFunc: func(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error) {
				return nil, usecase.ErrSessionExpired
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid refresh token"},
		},
		{
			name:        "failure: revoked session",
			requestBody: gin.H{"refresh_token": "revoked-token"},
			mockRefreshFunc: func(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.TokenPair, error) {
				return nil, usecase.ErrSessionRevoked
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid refresh token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{RefreshFunc: tt.mockRefreshFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/refresh", handler.Refresh)

			w := postJSON(router, "/refresh", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockLogoutFunc func(ctx context.Context, refreshToken string) error
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:           "success: logout revokes the session",
			requestBody:    gin.H{"refresh_token": "some-token"},
			mockLogoutFunc: func(ctx context.Context, refreshToken string) error { return nil },
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"message": "ok"},
		},
		{
			name:           "success: unknown token is idempotent",
			requestBody:    gin.H{"refresh_token": "already-gone"},
			mockLogoutFunc: func(ctx context.Context, refreshToken string) error { return nil },
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"message": "ok"},
		},
		{
			name:           "failure: missing refresh token",
			requestBody:    gin.H{},
			mockLogoutFunc: nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:           "failure: storage error",
			requestBody:    gin.H{"refresh_token": "some-token"},
			mockLogoutFunc: func(ctx context.Context, refreshToken string) error { return errors.New("storage down") },
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "logout failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LogoutFunc: tt.mockLogoutFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/logout", handler.Logout)

			w := postJSON(router, "/logout", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: returns the user profile", func(t *testing.T) {
		created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		mockUC := &mockAuthUsecase{
			CurrentUserFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
				assert.Equal(t, uint(42), userID)
				return &entity.User{ID: 42, Email: "me@example.com", CreatedAt: created}, nil
			},
		}
		handler := NewAuthHandler(mockUC)

		router := gin.New()
		// Simulate the JWT middleware populating the user ID
		router.GET("/me", func(c *gin.Context) {
			c.Set(jwtmw.ContextUserID, uint(42))
			handler.Me(c)
		})

		req, _ := http.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var responseBody gin.H
		err := json.Unmarshal(w.Body.Bytes(), &responseBody)
		assert.NoError(t, err)
		assert.Equal(t, float64(42), responseBody["id"])
		assert.Equal(t, "me@example.com", responseBody["email"])
	})

	t.Run("failure: missing user ID in context", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthUsecase{})

		router := gin.New()
		router.GET("/me", handler.Me)

		req, _ := http.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("failure: user no longer exists", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			CurrentUserFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
				return nil, usecase.ErrUserNotFound
			},
		}
		handler := NewAuthHandler(mockUC)

		router := gin.New()
		router.GET("/me", func(c *gin.Context) {
			c.Set(jwtmw.ContextUserID, uint(7))
			handler.Me(c)
		})

		req, _ := http.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
