package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mw "github.com/padraicbc/recipeapi/middleware"
	"github.com/padraicbc/recipeapi/models"
)

type createRecipeRequest struct {
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
}

// ListRecipes returns the recipes owned by the session user.
func (h *Handler) ListRecipes(c echo.Context) error {
	recipes, err := h.store.ListRecipesForUser(c.Request().Context(), mw.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, recipes)
}

// CreateRecipe inserts a recipe owned by the session user. Every failure to
// save is reported as 422 with its reason.
func (h *Handler) CreateRecipe(c echo.Context) error {
	var req createRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Invalid recipe payload.")
	}

	recipe, err := models.NewRecipe(req.Title, req.Instructions, req.MinutesToComplete, mw.UserID(c))
	if err != nil {
		return err
	}

	if err := h.store.CreateRecipe(c.Request().Context(), recipe); err != nil {
		var pe *models.PersistenceError
		if errors.As(err, &pe) {
			h.log.Error("create recipe", zap.Int("user_id", recipe.UserID), zap.Error(err))
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Recipe could not be saved.")
		}
		return err
	}

	return c.JSON(http.StatusCreated, recipe)
}
