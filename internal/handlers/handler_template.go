package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

type templateHandler struct {
	templateService portssvc.TemplateSvcFacade
}

func newTemplateHandler(templateService portssvc.TemplateSvcFacade) *templateHandler {
	return &templateHandler{templateService: templateService}
}

// registerTemplateRoutes registers the operation template routes.
func registerTemplateRoutes(rg *gin.RouterGroup, templateService portssvc.TemplateSvcFacade) {
	h := newTemplateHandler(templateService)

	templates := rg.Group("/templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("", h.listTemplates)
		templates.GET("/:templateID", h.getTemplate)
		templates.PUT("/:templateID", h.updateTemplate)
		templates.DELETE("/:templateID", h.deleteTemplate)
	}
}

// createTemplate godoc
// @Summary      Create an operation template
// @Description  Registers the posting scheme for an (operation type, payment mode) pair. The pair is unique per tenant; the principal account and journal must exist and be active.
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        template  body      dto.CreateTemplateRequest  true  "Template details"
// @Success      201       {object}  dto.TemplateResponse
// @Failure      400       {object}  map[string]string "Invalid account, journal or ceiling"
// @Failure      409       {object}  map[string]string "Pair already has a template"
// @Failure      500       {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /templates [post]
func (h *templateHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid template creation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}

// listTemplates godoc
// @Summary      List operation templates
// @Tags         templates
// @Produce      json
// @Param        type     query     string  false  "Operation type"
// @Param        mode     query     string  false  "Payment mode"
// @Param        account  query     string  false  "Principal account number"
// @Param        limit    query     int     false  "Page size (default 50)"
// @Param        offset   query     int     false  "Page offset"
// @Success      200  {array}   dto.TemplateResponse
// @Failure      400  {object}  map[string]string "Invalid query parameters"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /templates [get]
func (h *templateHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	var params dto.ListTemplatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid template list parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list templates")
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponses(templates))
}

// getTemplate godoc
// @Summary      Get an operation template
// @Tags         templates
// @Produce      json
// @Param        templateID  path      string  true  "Template ID"
// @Success      200  {object}  dto.TemplateResponse
// @Failure      404  {object}  map[string]string "Template not found"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /templates/{templateID} [get]
func (h *templateHandler) getTemplate(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplateByID(c.Request.Context(), tenantID, c.Param("templateID"))
	if err != nil {
		respondServiceError(c, err, "Failed to get template")
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

// updateTemplate godoc
// @Summary      Update an operation template
// @Description  Updates template fields. Account and journal changes are re-validated against the registry.
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        templateID  path      string                     true  "Template ID"
// @Param        template    body      dto.UpdateTemplateRequest  true  "Fields to update"
// @Success      200  {object}  dto.TemplateResponse
// @Failure      400  {object}  map[string]string "Invalid input"
// @Failure      404  {object}  map[string]string "Template not found"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /templates/{templateID} [put]
func (h *templateHandler) updateTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid template update request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), tenantID, c.Param("templateID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

// deleteTemplate godoc
// @Summary      Delete an operation template
// @Tags         templates
// @Param        templateID  path  string  true  "Template ID"
// @Success      204  "Template deleted"
// @Failure      404  {object}  map[string]string "Template not found"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /templates/{templateID} [delete]
func (h *templateHandler) deleteTemplate(c *gin.Context) {
	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), tenantID, c.Param("templateID"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete template")
		return
	}

	c.Status(http.StatusNoContent)
}
