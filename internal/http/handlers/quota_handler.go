// README: Quota handler exposing the caller's remaining monthly AI requests.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripzen/internal/http/middleware"
	"tripzen/internal/modules/quota"
)

type QuotaHandler struct {
	quota *quota.Service
}

func NewQuotaHandler(svc *quota.Service) *QuotaHandler {
	return &QuotaHandler{quota: svc}
}

// Remaining handles GET /api/ai/quota.
func (h *QuotaHandler) Remaining(c *gin.Context) {
	n, err := h.quota.Remaining(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"requests_remaining": n})
}
