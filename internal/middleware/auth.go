// Package middleware provides the gin middleware of the API: authentication,
// request ids, structured logging, timeouts, metrics and tracing.
package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
)

// userIDKey is the gin key holding the authenticated user's id.
const userIDKey = "user_id"

// Authenticator issues and verifies HS256 bearer tokens.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthenticator(secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Authenticator{secret: []byte(secret), ttl: ttl}
}

// IssueToken signs a token for user.
func (a *Authenticator) IssueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"exp":      time.Now().Add(a.ttl).Unix(),
	})
	return token.SignedString(a.secret)
}

// ParseToken validates tokenString and returns the user id it carries.
func (a *Authenticator) ParseToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return a.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	// JSON numbers decode as float64.
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 || raw != float64(int(raw)) {
		return 0, errors.New("invalid user id in token")
	}
	return int(raw), nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error: message,
		Code:  models.CodeUnauthenticated,
	})
}

func (a *Authenticator) setUser(c *gin.Context, userID int) {
	c.Set(userIDKey, userID)
	withValue(c, UserIDKey, userID)
}

// Required rejects requests without a valid bearer token.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthenticated(c, "Authorization header required")
			return
		}
		userID, err := a.ParseToken(tokenString)
		if err != nil {
			abortUnauthenticated(c, err.Error())
			return
		}
		a.setUser(c, userID)
		c.Next()
	}
}

// Optional identifies the caller when a valid token is present and lets
// anonymous requests through. A malformed or expired token is still rejected.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		userID, err := a.ParseToken(tokenString)
		if err != nil {
			abortUnauthenticated(c, err.Error())
			return
		}
		a.setUser(c, userID)
		c.Next()
	}
}

// UserID returns the authenticated user's id, if any.
func UserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := raw.(int)
	return id, ok
}
