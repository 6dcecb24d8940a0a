package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hoteldash/internal/pkg/jwt"
	"hoteldash/internal/pkg/response"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
)

const sessionKey = "session"

// JWTAuth validates the bearer token and loads the session it points to.
// Browsers cannot set headers on websocket upgrades, so a "token" query parameter is accepted too.
func JWTAuth(jwtService *jwt.Service, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
				return
			}
			tokenStr = parts[1]
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		sess, err := store.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.Error().Err(err).Str("request_id", requestID(c)).Msg("session lookup failed")
			}
			response.Abort(c, http.StatusUnauthorized, response.CodeSessionExpired, "Session expired, please sign in again")
			return
		}

		c.Set(sessionKey, sess)
		c.Set("username", sess.Username)
		c.Set("role", sess.Role)
		c.Request = c.Request.WithContext(session.WithContext(c.Request.Context(), sess))
		c.Next()
	}
}

// CurrentSession returns the session loaded by JWTAuth.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok && sess != nil
}

// DropRejectedSession deletes the session once a handler reports that the backend rejected its credentials.
func DropRejectedSession(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			if !errors.Is(e.Err, source.ErrUnauthorized) {
				continue
			}
			sess, ok := CurrentSession(c)
			if !ok {
				return
			}
			if err := store.Delete(context.WithoutCancel(c.Request.Context()), sess.ID); err != nil {
				log.Error().Err(err).Str("request_id", requestID(c)).Msg("drop rejected session")
				return
			}
			log.Info().Str("username", sess.Username).Msg("session cleared after upstream 401")
			return
		}
	}
}
