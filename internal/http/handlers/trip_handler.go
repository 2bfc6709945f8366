// README: Trip handlers for create/list/get/delete and plan generation.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripzen/internal/http/middleware"
	"tripzen/internal/modules/suggestion"
	"tripzen/internal/modules/trip"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(svc *trip.Service) *TripHandler {
	return &TripHandler{trips: svc}
}

type createTripReq struct {
	Title       string                     `json:"title"`
	Preferences suggestion.TripPreferences `json:"preferences"`
}

// Create handles POST /api/trips.
func (h *TripHandler) Create(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	t, err := h.trips.Create(c.Request.Context(), middleware.CallerUID(c), req.Title, req.Preferences)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, t)
}

// List handles GET /api/trips.
func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.trips.List(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if trips == nil {
		trips = []*trip.Trip{}
	}
	writeJSON(c, http.StatusOK, trips)
}

// Get handles GET /api/trips/:id.
func (h *TripHandler) Get(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	t, err := h.trips.Get(c.Request.Context(), middleware.CallerUID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

// Delete handles DELETE /api/trips/:id.
func (h *TripHandler) Delete(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	if err := h.trips.Delete(c.Request.Context(), middleware.CallerUID(c), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerateSuggestion handles POST /api/trips/:id/suggestion. The pipeline can
// take most of a minute under retries, so no extra timeout is layered on top
// of the provider's own.
func (h *TripHandler) GenerateSuggestion(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	t, err := h.trips.GenerateSuggestion(c.Request.Context(), middleware.CallerUID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func tripID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return uuid.Nil, false
	}
	return id, true
}
