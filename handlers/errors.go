package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/recipeapi/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler renders every failure as {"error": message}. Validation
// failures keep their message; internal errors are logged and replaced by a
// generic one.
func (h *Handler) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, msg := h.describe(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, errorResponse{Error: msg})
	}
	if werr != nil {
		h.log.Warn("write error response", zap.Error(werr))
	}
}

func (h *Handler) describe(err error) (int, string) {
	var (
		ve *models.ValidationError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, ve.Message
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.As(err, &he):
		if he.Code >= http.StatusInternalServerError {
			return he.Code, http.StatusText(he.Code)
		}
		return he.Code, fmt.Sprint(he.Message)
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
