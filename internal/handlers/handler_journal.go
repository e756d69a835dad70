package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// registerJournalRoutes registers the journal registry routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.PUT("/:journalID", h.updateJournal)
		journals.DELETE("/:journalID", h.deleteJournal)
	}
}

// createJournal godoc
// @Summary      Create a journal
// @Description  Registers a new journal. The code must be 1 to 5 uppercase letters and unique per tenant.
// @Tags         journals
// @Accept       json
// @Produce      json
// @Param        journal  body      dto.CreateJournalRequest  true  "Journal details"
// @Success      201      {object}  dto.JournalResponse
// @Failure      400      {object}  map[string]string "Invalid code or type"
// @Failure      409      {object}  map[string]string "Journal code already exists"
// @Failure      500      {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid journal creation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create journal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary      List journals
// @Tags         journals
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 50)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200  {array}   dto.JournalResponse
// @Failure      400  {object}  map[string]string "Invalid query parameters"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid journal list parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	journals, err := h.journalService.ListJournals(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list journals")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponses(journals))
}

// getJournal godoc
// @Summary      Get a journal
// @Tags         journals
// @Produce      json
// @Param        journalID  path      string  true  "Journal ID"
// @Success      200  {object}  dto.JournalResponse
// @Failure      404  {object}  map[string]string "Journal not found"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), tenantID, c.Param("journalID"))
	if err != nil {
		respondServiceError(c, err, "Failed to get journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// updateJournal godoc
// @Summary      Update a journal
// @Description  Updates the label, type or active flag of a journal. The code is immutable.
// @Tags         journals
// @Accept       json
// @Produce      json
// @Param        journalID  path      string                    true  "Journal ID"
// @Param        journal    body      dto.UpdateJournalRequest  true  "Fields to update"
// @Success      200  {object}  dto.JournalResponse
// @Failure      400  {object}  map[string]string "Invalid input"
// @Failure      404  {object}  map[string]string "Journal not found"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /journals/{journalID} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid journal update request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), tenantID, c.Param("journalID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary      Delete a journal
// @Description  Removes a journal. Fails when any entry references it.
// @Tags         journals
// @Param        journalID  path  string  true  "Journal ID"
// @Success      204  "Journal deleted"
// @Failure      404  {object}  map[string]string "Journal not found"
// @Failure      409  {object}  map[string]string "Journal is referenced by entries"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /journals/{journalID} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	if err := h.journalService.DeleteJournal(c.Request.Context(), tenantID, c.Param("journalID"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete journal")
		return
	}

	c.Status(http.StatusNoContent)
}
