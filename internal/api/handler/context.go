package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/stefanramac/online-cv-verison2/internal/api/middleware"
	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
)

// ctxClaims returns the claims injected by the Auth middleware. Their absence
// means the route was mounted without it, so the request is unauthenticated.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*domain.Claims)
	if claims == nil || claims.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}

// bindError turns a c.Bind failure into a client error. Field-level errors
// raised while decoding are kept; anything else is a malformed body.
func bindError(err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return domain.NewValidationError("invalid payload")
}

// unexpected wraps store failures with a client-safe message. Errors already
// in the domain taxonomy pass through unchanged.
func unexpected(err error, msg string) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrUserExists):
		return err
	}
	return domain.NewServerError(msg, err)
}
