package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

type entryHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newEntryHandler(postingService portssvc.PostingSvcFacade) *entryHandler {
	return &entryHandler{postingService: postingService}
}

// registerEntryRoutes registers the posting engine routes.
func registerEntryRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newEntryHandler(postingService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.POST("/generate", h.generateEntry)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/validate", h.validateEntry)
		entries.POST("/:entryID/lines", h.addLine)
		entries.PUT("/:entryID/lines/:lineID", h.updateLine)
		entries.DELETE("/:entryID/lines/:lineID", h.deleteLine)
	}
}

// createEntry godoc
// @Summary      Create a draft entry
// @Description  Creates an empty draft entry after checking that the journal is active, the period is open and the entry date falls inside it. Lines are added through the line endpoint.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        entry  body      dto.CreateEntryRequest  true  "Entry details"
// @Success      201    {object}  dto.EntryResponse
// @Failure      400    {object}  map[string]string "Invalid date, number or inactive journal"
// @Failure      404    {object}  map[string]string "Journal or period not found"
// @Failure      409    {object}  map[string]string "Period closed or number already used"
// @Failure      500    {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid entry creation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.postingService.CreateEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary      List entries
// @Description  Retrieves a page of entries newest first. Pages are linked by an opaque nextToken; pass it back to fetch the next page.
// @Tags         entries
// @Produce      json
// @Param        from         query     string  false  "Entry date lower bound (YYYY-MM-DD)"
// @Param        to           query     string  false  "Entry date upper bound (YYYY-MM-DD)"
// @Param        journalID    query     string  false  "Restrict to one journal"
// @Param        unvalidated  query     bool    false  "Only draft entries"
// @Param        limit        query     int     false  "Page size (default 20)"
// @Param        nextToken    query     string  false  "Token from the previous page"
// @Success      200  {object}  dto.ListEntriesResponse
// @Failure      400  {object}  map[string]string "Invalid query parameters or token"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid entry list parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.postingService.ListEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, page)
}

// getEntry godoc
// @Summary      Get an entry with its lines
// @Tags         entries
// @Produce      json
// @Param        entryID  path      string  true  "Entry ID"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  map[string]string "Entry not found"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	entry, err := h.postingService.GetEntryByID(c.Request.Context(), tenantID, c.Param("entryID"))
	if err != nil {
		respondServiceError(c, err, "Failed to get entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// addLine godoc
// @Summary      Add a line to a draft entry
// @Description  Appends one line. The account must exist and be active, the amount must be positive, and the side opposite to the sense is forced to zero.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        entryID  path      string              true  "Entry ID"
// @Param        line     body      dto.AddLineRequest  true  "Line details"
// @Success      201      {object}  dto.LineResponse
// @Failure      400      {object}  map[string]string "Invalid account, sense or amount"
// @Failure      404      {object}  map[string]string "Entry not found"
// @Failure      409      {object}  map[string]string "Entry already validated"
// @Failure      500      {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /entries/{entryID}/lines [post]
func (h *entryHandler) addLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid line creation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	line, err := h.postingService.AddLine(c.Request.Context(), tenantID, c.Param("entryID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to add line")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLineResponse(line))
}

// updateLine godoc
// @Summary      Update a line of a draft entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        entryID  path      string                 true  "Entry ID"
// @Param        lineID   path      string                 true  "Line ID"
// @Param        line     body      dto.UpdateLineRequest  true  "Fields to update"
// @Success      200      {object}  dto.LineResponse
// @Failure      400      {object}  map[string]string "Invalid input"
// @Failure      404      {object}  map[string]string "Entry or line not found"
// @Failure      409      {object}  map[string]string "Entry already validated"
// @Failure      500      {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /entries/{entryID}/lines/{lineID} [put]
func (h *entryHandler) updateLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid line update request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	line, err := h.postingService.UpdateLine(c.Request.Context(), tenantID, c.Param("entryID"), c.Param("lineID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update line")
		return
	}

	c.JSON(http.StatusOK, dto.ToLineResponse(line))
}

// deleteLine godoc
// @Summary      Delete a line of a draft entry
// @Tags         entries
// @Param        entryID  path  string  true  "Entry ID"
// @Param        lineID   path  string  true  "Line ID"
// @Success      204  "Line deleted"
// @Failure      404  {object}  map[string]string "Entry or line not found"
// @Failure      409  {object}  map[string]string "Entry already validated"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /entries/{entryID}/lines/{lineID} [delete]
func (h *entryHandler) deleteLine(c *gin.Context) {
	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	if err := h.postingService.DeleteLine(c.Request.Context(), tenantID, c.Param("entryID"), c.Param("lineID"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete line")
		return
	}

	c.Status(http.StatusNoContent)
}

// validateEntry godoc
// @Summary      Validate an entry
// @Description  Irreversibly locks a draft entry. Requires at least two lines, balanced debits and credits within a 0.01 tolerance, and an open period.
// @Tags         entries
// @Produce      json
// @Param        entryID  path      string  true  "Entry ID"
// @Success      200  {object}  dto.EntryResponse
// @Failure      400  {object}  map[string]string "Unbalanced or too few lines"
// @Failure      404  {object}  map[string]string "Entry not found"
// @Failure      409  {object}  map[string]string "Already validated or period closed"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /entries/{entryID}/validate [post]
func (h *entryHandler) validateEntry(c *gin.Context) {
	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	entry, err := h.postingService.ValidateEntry(c.Request.Context(), tenantID, c.Param("entryID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to validate entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// generateEntry godoc
// @Summary      Generate an entry from a source document
// @Description  Builds and persists a balanced draft entry by applying an operation template to a source document. Invoices split VAT onto a dedicated line; stock movements flip the line senses by direction.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        request  body      dto.GenerateEntryRequest  true  "Source document and template"
// @Success      201      {object}  dto.EntryResponse
// @Failure      400      {object}  map[string]string "Inactive template, ceiling exceeded or no open period"
// @Failure      404      {object}  map[string]string "Source document or template not found"
// @Failure      500      {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /entries/generate [post]
func (h *entryHandler) generateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.GenerateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid entry generation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.postingService.GenerateEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
