// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripzen/internal/ai"
	"tripzen/internal/modules/quota"
	"tripzen/internal/modules/suggestion"
	"tripzen/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps module errors onto HTTP statuses. Provider failures
// surface as gateway errors: the request was fine, the upstream model was not.
func writeServiceError(c *gin.Context, err error) {
	var genErr *suggestion.GenerationError
	var shapeErr *suggestion.ShapeError

	switch {
	case errors.Is(err, trip.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, quota.ErrQuotaExhausted):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, ai.ErrTimeout):
		writeError(c, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &genErr), errors.As(err, &shapeErr):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
