package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/recipeapi/auth"
	mw "github.com/padraicbc/recipeapi/middleware"
	"github.com/padraicbc/recipeapi/models"
	"github.com/padraicbc/recipeapi/session"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	credentials
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
}

var errInvalidCredentials = echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")

// checkMissingUser burns a password comparison for logins to unknown users.
var checkMissingUser = auth.CheckDummyPassword

// Signup creates a user and logs it in.
func (h *Handler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Username and password are required.")
	}

	user, err := models.NewUser(req.Username, req.Password, req.Bio, req.ImageURL)
	if err != nil {
		return err
	}
	if err := h.store.CreateUser(c.Request().Context(), user); err != nil {
		return err
	}

	if err := h.sessions.Begin(c, user.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// CheckSession returns the user of the current session.
func (h *Handler) CheckSession(c echo.Context) error {
	user, err := h.store.FindUserByID(c.Request().Context(), mw.UserID(c))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Login validates credentials and starts a session. Unknown usernames and
// wrong passwords fail identically, and both pay for a bcrypt comparison.
func (h *Handler) Login(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	creds.Username = strings.TrimSpace(creds.Username)

	user, err := h.store.FindUserByUsername(c.Request().Context(), creds.Username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			checkMissingUser(creds.Password)
			return errInvalidCredentials
		}
		return err
	}

	if !user.Authenticate(creds.Password) {
		return errInvalidCredentials
	}

	if err := h.sessions.Begin(c, user.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Logout ends the current session.
func (h *Handler) Logout(c echo.Context) error {
	if err := h.sessions.End(c); err != nil {
		if session.IsNoSession(err) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
