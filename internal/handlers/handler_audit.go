package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(auditService portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: auditService}
}

// registerAuditRoutes registers the audit trail query route. The trail
// itself is written by the services; there is no write endpoint.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	rg.GET("/audit", h.listRecords)
}

// listRecords godoc
// @Summary      Query the audit trail
// @Description  Retrieves audit records newest first, filtered by actor, action, entry or date range. Pages are linked by an opaque nextToken.
// @Tags         audit
// @Produce      json
// @Param        actor      query     string  false  "Acting user ID"
// @Param        action     query     string  false  "Action (CREATE, UPDATE, VALIDATE, DELETE, CLOSE, GENERATE)"
// @Param        entryID    query     string  false  "Restrict to one entry"
// @Param        from       query     string  false  "Action date lower bound (YYYY-MM-DD)"
// @Param        to         query     string  false  "Action date upper bound (YYYY-MM-DD)"
// @Param        limit      query     int     false  "Page size (default 50)"
// @Param        nextToken  query     string  false  "Token from the previous page"
// @Success      200  {object}  dto.ListAuditResponse
// @Failure      400  {object}  map[string]string "Invalid query parameters or token"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /audit [get]
func (h *auditHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	var params dto.ListAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid audit query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.auditService.ListRecords(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to query audit trail")
		return
	}

	c.JSON(http.StatusOK, page)
}
