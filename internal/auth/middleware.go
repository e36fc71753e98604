package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
)

// principalKey is the echo context key the resolved user is stored under.
const principalKey = "principal"

// Middleware authenticates requests on a route group. The bearer token is
// extracted from the Authorization header and resolved to a full principal
// exactly once per request; handlers read it back with CurrentUser.
func Middleware(resolver *Resolver) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: principalKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return resolver.Resolve(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// Storage failures surface as a generic 500. Everything else,
			// missing header, decode failure and deleted principal alike,
			// collapses to the same 401 body.
			var storageErr *StorageError
			if errors.As(err, &storageErr) {
				c.Logger().Error(storageErr)
				httpErr := apperrors.MapErrorToHTTP(storageErr)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// AdminOnly applies the authorization gate on top of an authenticated
// group. It must be registered after Middleware, never instead of it.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := RequireAdmin(CurrentUser(c)); err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// CurrentUser returns the principal resolved by Middleware, or nil on
// routes that were not registered behind it.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(principalKey).(*model.User)
	return user
}
