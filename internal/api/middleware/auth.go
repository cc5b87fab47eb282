package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
	"github.com/stefanramac/online-cv-verison2/internal/core/ports"
	"github.com/stefanramac/online-cv-verison2/internal/pkg/metrics"
)

// ClaimsKey is the echo context key holding the verified *domain.Claims.
const ClaimsKey = "claims"

// Auth validates the bearer token and injects its claims into the context.
// A request without a credential is rejected as unauthenticated. A credential
// that is present but cannot be verified, including one sent under another
// scheme, is rejected as forbidden. The user record is not re-read.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, token, ok := credential(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}
			if !strings.EqualFold(scheme, "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_scheme").Inc()
				return domain.ErrForbidden
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrForbidden
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// credential splits an Authorization header into scheme and token. ok is
// false when no token follows the scheme. Extra words are kept in the token
// so they fail verification.
func credential(header string) (scheme, token string, ok bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", "", false
	}
	return scheme, token, true
}
