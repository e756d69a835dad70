package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: periodService}
}

// registerPeriodRoutes registers the fiscal period routes.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:periodID", h.getPeriod)
		periods.PUT("/:periodID", h.updatePeriod)
		periods.POST("/:periodID/close", h.closePeriod)
		periods.DELETE("/:periodID", h.deletePeriod)
	}
}

// createPeriod godoc
// @Summary      Create a fiscal period
// @Description  Opens a new fiscal period. The code must be of the form YYYY-MM and the date range must not overlap an existing period.
// @Tags         periods
// @Accept       json
// @Produce      json
// @Param        period  body      dto.CreatePeriodRequest  true  "Period details"
// @Success      201     {object}  dto.PeriodResponse
// @Failure      400     {object}  map[string]string "Invalid code or date range"
// @Failure      409     {object}  map[string]string "Code already used or range overlaps"
// @Failure      500     {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid period creation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create period")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary      List fiscal periods
// @Tags         periods
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 50)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200  {array}   dto.PeriodResponse
// @Failure      400  {object}  map[string]string "Invalid query parameters"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	var params dto.ListPeriodsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid period list parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list periods")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// getPeriod godoc
// @Summary      Get a fiscal period
// @Tags         periods
// @Produce      json
// @Param        periodID  path      string  true  "Period ID"
// @Success      200  {object}  dto.PeriodResponse
// @Failure      404  {object}  map[string]string "Period not found"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /periods/{periodID} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), tenantID, c.Param("periodID"))
	if err != nil {
		respondServiceError(c, err, "Failed to get period")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// updatePeriod godoc
// @Summary      Update a fiscal period
// @Description  Updates the code or date range of an open period. Closed periods cannot be modified.
// @Tags         periods
// @Accept       json
// @Produce      json
// @Param        periodID  path      string                   true  "Period ID"
// @Param        period    body      dto.UpdatePeriodRequest  true  "Fields to update"
// @Success      200  {object}  dto.PeriodResponse
// @Failure      400  {object}  map[string]string "Invalid input"
// @Failure      404  {object}  map[string]string "Period not found"
// @Failure      409  {object}  map[string]string "Period closed or range overlaps"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /periods/{periodID} [put]
func (h *periodHandler) updatePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid period update request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	period, err := h.periodService.UpdatePeriod(c.Request.Context(), tenantID, c.Param("periodID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update period")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary      Close a fiscal period
// @Description  Transitions a period to closed. The transition is terminal; a closed period never reopens and rejects all further postings.
// @Tags         periods
// @Produce      json
// @Param        periodID  path      string  true  "Period ID"
// @Success      200  {object}  dto.PeriodResponse
// @Failure      404  {object}  map[string]string "Period not found"
// @Failure      409  {object}  map[string]string "Period already closed"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /periods/{periodID}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), tenantID, c.Param("periodID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to close period")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// deletePeriod godoc
// @Summary      Delete a fiscal period
// @Description  Removes an open period. Fails when any entry references it or the period is closed.
// @Tags         periods
// @Param        periodID  path  string  true  "Period ID"
// @Success      204  "Period deleted"
// @Failure      404  {object}  map[string]string "Period not found"
// @Failure      409  {object}  map[string]string "Period closed or referenced by entries"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /periods/{periodID} [delete]
func (h *periodHandler) deletePeriod(c *gin.Context) {
	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	if err := h.periodService.DeletePeriod(c.Request.Context(), tenantID, c.Param("periodID"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete period")
		return
	}

	c.Status(http.StatusNoContent)
}
