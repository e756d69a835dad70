package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

type sourceHandler struct {
	sourceService portssvc.SourceSvcFacade
}

func newSourceHandler(sourceService portssvc.SourceSvcFacade) *sourceHandler {
	return &sourceHandler{sourceService: sourceService}
}

// registerSourceRoutes registers the source document routes.
func registerSourceRoutes(rg *gin.RouterGroup, sourceService portssvc.SourceSvcFacade) {
	h := newSourceHandler(sourceService)

	sources := rg.Group("/sources")
	{
		sources.POST("", h.registerSource)
		sources.GET("/:docID", h.getSource)
	}
}

// registerSource godoc
// @Summary      Register a source document
// @Description  Records the business document (transaction, invoice or stock movement) that automatic entry generation consumes. Stock documents require a direction; invoice net amounts must not exceed the gross amount.
// @Tags         sources
// @Accept       json
// @Produce      json
// @Param        source  body      dto.CreateSourceRequest  true  "Source document details"
// @Success      201     {object}  dto.SourceResponse
// @Failure      400     {object}  map[string]string "Invalid amount, VAT rate or missing direction"
// @Failure      500     {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /sources [post]
func (h *sourceHandler) registerSource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid source registration request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	doc, err := h.sourceService.RegisterSource(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to register source document")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSourceResponse(doc))
}

// getSource godoc
// @Summary      Get a source document
// @Tags         sources
// @Produce      json
// @Param        docID  path      string  true  "Source document ID"
// @Success      200  {object}  dto.SourceResponse
// @Failure      404  {object}  map[string]string "Source document not found"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /sources/{docID} [get]
func (h *sourceHandler) getSource(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	doc, err := h.sourceService.GetSourceByID(c.Request.Context(), tenantID, c.Param("docID"))
	if err != nil {
		respondServiceError(c, err, "Failed to get source document")
		return
	}

	c.JSON(http.StatusOK, dto.ToSourceResponse(doc))
}
