package middleware

import (
	"errors"
	"net/http"
	"strings"

	"procurement-service/pkg/config"
	"procurement-service/pkg/jwtutil"
	"procurement-service/pkg/logger"
	appmetrics "procurement-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
)

var errNoSession = errors.New("no session token")

// sessionToken reads the session from the cookie, falling back to a Bearer header
func sessionToken(c echo.Context, cookieName string) (string, error) {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	tokenString := c.Request().Header.Get("Authorization")
	if tokenString == "" {
		return "", errNoSession
	}
	// Remove "Bearer " prefix if present
	if len(tokenString) > 7 && strings.ToUpper(tokenString[0:7]) == "BEARER " {
		tokenString = tokenString[7:]
	}
	return strings.TrimSpace(tokenString), nil
}

// AuthMiddleware rejects requests without a valid session. The 401 body names
// the sign-in page so the client can redirect.
func AuthMiddleware(jwtUtil *jwtutil.JWTUtil, cfg config.SessionConfig, metrics *appmetrics.Metrics) echo.MiddlewareFunc {
	unauthorized := func(c echo.Context, message string) error {
		metrics.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error":    message,
			"redirect": cfg.SignInURL,
		})
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			// Track authentication attempts
			metrics.AuthAttemptsCounter.Inc()

			tokenString, err := sessionToken(c, cfg.CookieName)
			if err != nil {
				log.Debug("Missing session token", zap.String("path", c.Request().URL.Path))
				return unauthorized(c, "Authentication required")
			}

			claims, err := jwtUtil.ValidateToken(tokenString)
			if err != nil {
				log.Warn("Invalid session token", zap.Error(err))
				return unauthorized(c, "Session expired or invalid")
			}

			metrics.AuthSuccessCounter.Inc()

			// Store user information in the context
			c.Set(UserIDKey, claims.UserID)
			c.Set(EmailKey, claims.Email)

			// Update logger with user information
			logger.SetEcho(c, log.With(
				zap.String("user_id", claims.UserID),
				zap.String("email", claims.Email),
			))

			return next(c)
		}
	}
}
