package handlers

import (
	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/recipeapi/middleware"
)

// Register mounts the API on e and installs the JSON error handler.
func (h *Handler) Register(e *echo.Echo) {
	e.HTTPErrorHandler = h.ErrorHandler

	// Public
	e.GET("/healthz", h.Health)
	e.POST("/signup", h.Signup)
	e.POST("/login", h.Login)

	// Protected – require a live session
	authed := mw.Session(h.sessions)
	e.GET("/check_session", h.CheckSession, authed)
	e.DELETE("/logout", h.Logout, authed)
	e.GET("/recipes", h.ListRecipes, authed)
	e.POST("/recipes", h.CreateRecipe, authed)
}
