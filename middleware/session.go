package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/recipeapi/session"
)

// Context keys set by Session.
const (
	UserIDKey = "user_id"
)

// Session returns an Echo middleware that rejects requests without a live
// server-side session and stores the session's user id in the context.
func Session(mgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := mgr.Resolve(c)
			if err != nil {
				if session.IsNoSession(err) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed").SetInternal(err)
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the session user id set by Session, or 0.
func UserID(c echo.Context) int {
	id, _ := c.Get(UserIDKey).(int)
	return id
}
