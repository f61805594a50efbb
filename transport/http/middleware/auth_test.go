package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cowork/config"
	"cowork/infras/jwt"
	jwtMocks "cowork/infras/jwt/mocks"
	"cowork/infras/otel/mocks"
	"cowork/permissions"
	"cowork/shared/constant"
	"cowork/transport/http/middleware"
)

// Public endpoints skip enforcement but still pick up the caller's identity
// when a valid token is sent, so listings can widen visibility for the
// caller's own resources.
func TestAuth_PublicEndpointIdentifiesCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	perms := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/offices", Method: http.MethodGet, Skip: true},
		},
	}

	authRole := middleware.NewAuthRoleMiddleware(mockJWT, mockOtel, perms, &config.Config{})

	var gotUserID string

	router := chi.NewRouter()
	router.Use(authRole.Auth)
	router.Get("/offices", func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(constant.ContextKeyUserID).(string)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		setupMock  func()
		wantUserID string
	}{
		{
			name:       "valid token identifies the caller",
			authHeader: "Bearer valid-token",
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateToken("valid-token", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "user-1", Email: "user@example.com", Role: "user", TokenID: "token-1"}, nil)
			},
			wantUserID: "user-1",
		},
		{
			name:       "no token stays anonymous",
			authHeader: "",
			setupMock:  func() {},
			wantUserID: "",
		},
		{
			name:       "invalid token stays anonymous instead of rejecting",
			authHeader: "Bearer bad-token",
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateToken("bad-token", jwt.AccessToken).
					Return(nil, jwt.ErrInvalidToken)
			},
			wantUserID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			gotUserID = ""

			req := httptest.NewRequest(http.MethodGet, "/offices", nil)
			if tt.authHeader != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, tt.authHeader)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
		})
	}
}

// Protected endpoints still reject missing and invalid tokens outright.
func TestAuth_ProtectedEndpointRejectsMissingToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	perms := &permissions.PermissionData{}

	authRole := middleware.NewAuthRoleMiddleware(mockJWT, mockOtel, perms, &config.Config{})

	router := chi.NewRouter()
	router.Use(authRole.Auth)
	router.Post("/reservations", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/reservations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
