package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suteetoe/productdesk/pkg/jwtutil"
	"github.com/suteetoe/productdesk/pkg/logger"
)

// loggerFrom retrieves the request-scoped logger set by requestLogger
func (s *Server) loggerFrom(c echo.Context) *zap.Logger {
	if l, ok := logger.Lookup(c.Request().Context()); ok {
		return l
	}
	return s.log
}

func setLogger(c echo.Context, l *zap.Logger) {
	req := c.Request()
	c.SetRequest(req.WithContext(logger.WithContext(req.Context(), l)))
}

// requestLogger tags each request with an X-Request-ID and logs it once handled
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request().Header.Set("X-Request-ID", requestID)
		}
		c.Response().Header().Set("X-Request-ID", requestID)

		ctxLogger := s.log.With(zap.String("request_id", requestID))
		setLogger(c, ctxLogger)

		err := next(c)

		ctxLogger.Info("HTTP Request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.RealIP()),
		)

		return err
	}
}

// requireBearer validates the JWT issued by /login
func (s *Server) requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := s.loggerFrom(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		claims, err := s.jwt.ValidateToken(parts[1])
		if err != nil {
			log.Warn("Invalid or expired token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		c.Set("user", claims)
		setLogger(c, log.With(zap.String("email", claims.Email)))
		return next(c)
	}
}

func userFrom(c echo.Context) *jwtutil.UserClaims {
	claims, _ := c.Get("user").(*jwtutil.UserClaims)
	return claims
}
