// README: Chat handlers for trip revision conversations.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripzen/internal/http/middleware"
	"tripzen/internal/modules/chat"
	"tripzen/internal/modules/trip"
)

type ChatHandler struct {
	trips *trip.Service
	chat  *chat.Service
}

func NewChatHandler(trips *trip.Service, chatSvc *chat.Service) *ChatHandler {
	return &ChatHandler{trips: trips, chat: chatSvc}
}

type sendMessageReq struct {
	Message string `json:"message"`
}

// History handles GET /api/trips/:id/chat.
func (h *ChatHandler) History(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	// Ownership check; the conversation is as private as the trip.
	if _, err := h.trips.Get(c.Request.Context(), middleware.CallerUID(c), id); err != nil {
		writeServiceError(c, err)
		return
	}

	history, err := h.chat.History(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if history == nil {
		history = []chat.Message{}
	}
	writeJSON(c, http.StatusOK, history)
}

// Send handles POST /api/trips/:id/chat.
func (h *ChatHandler) Send(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}

	uid := middleware.CallerUID(c)
	t, err := h.trips.Get(c.Request.Context(), uid, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	reply, err := h.chat.Send(c.Request.Context(), uid, id, t.Suggestion, req.Message)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, reply)
}
