package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(auth *Authenticator, mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/test", mw, func(c *gin.Context) {
		id, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "authenticated": ok})
	})
	return r
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthenticator_Required(t *testing.T) {
	auth := NewAuthenticator(testSecret, time.Hour)
	r := newAuthRouter(auth, auth.Required())

	valid, err := auth.IssueToken(&models.User{ID: 123, Username: "ada", Email: "ada@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID int
	}{
		{"happy path", "Bearer " + valid, http.StatusOK, 123},
		{"missing header", "", http.StatusUnauthorized, 0},
		{"invalid format", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, 0},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, 0},
		{"wrong secret", "Bearer " + signed(t, "other-secret", jwt.MapClaims{
			"user_id": 123, "exp": time.Now().Add(time.Hour).Unix(),
		}), http.StatusUnauthorized, 0},
		{"expired", "Bearer " + signed(t, testSecret, jwt.MapClaims{
			"user_id": 123, "exp": time.Now().Add(-time.Hour).Unix(),
		}), http.StatusUnauthorized, 0},
		{"missing exp", "Bearer " + signed(t, testSecret, jwt.MapClaims{"user_id": 123}), http.StatusUnauthorized, 0},
		{"missing user id", "Bearer " + signed(t, testSecret, jwt.MapClaims{
			"sub": "123", "exp": time.Now().Add(time.Hour).Unix(),
		}), http.StatusUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var body struct {
					UserID int `json:"user_id"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedUserID, body.UserID)
				return
			}
			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, models.CodeUnauthenticated, body.Code)
		})
	}
}

func TestAuthenticator_Optional(t *testing.T) {
	auth := NewAuthenticator(testSecret, time.Hour)
	r := newAuthRouter(auth, auth.Optional())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0,"authenticated":false}`, w.Body.String())

	token, err := auth.IssueToken(&models.User{ID: 7})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"authenticated":true}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
