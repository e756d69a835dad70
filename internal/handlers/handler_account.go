package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

// registerAccountRoutes registers the chart-of-accounts routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary      Create an account
// @Description  Adds a new account to the tenant's chart of accounts. The number must start with an OHADA class digit (1-8) and contain 5 to 8 digits.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        account  body      dto.CreateAccountRequest  true  "Account details"
// @Success      201      {object}  dto.AccountResponse
// @Failure      400      {object}  map[string]string "Invalid input or account number"
// @Failure      409      {object}  map[string]string "Account number already exists"
// @Failure      500      {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid account creation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary      List accounts
// @Description  Retrieves the tenant's accounts, optionally filtered by number prefix or OHADA class.
// @Tags         accounts
// @Produce      json
// @Param        prefix      query     string  false  "Account number prefix"
// @Param        class       query     int     false  "OHADA class (1-8)"
// @Param        onlyActive  query     bool    false  "Only active accounts (default true)"
// @Param        limit       query     int     false  "Page size (default 50)"
// @Param        offset      query     int     false  "Page offset"
// @Success      200  {array}   dto.AccountResponse
// @Failure      400  {object}  map[string]string "Invalid query parameters"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid account list parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getAccount godoc
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Param        accountID  path      string  true  "Account ID"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  map[string]string "Account not found"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), tenantID, c.Param("accountID"))
	if err != nil {
		respondServiceError(c, err, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary      Update an account
// @Description  Updates the label or notes of an account. The number is immutable.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        accountID  path      string                   true  "Account ID"
// @Param        account    body      dto.UpdateAccountRequest  true  "Fields to update"
// @Success      200  {object}  dto.AccountResponse
// @Failure      400  {object}  map[string]string "Invalid input"
// @Failure      404  {object}  map[string]string "Account not found"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid account update request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), tenantID, c.Param("accountID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary      Deactivate an account
// @Description  Marks an account inactive so it can no longer receive entry lines. Accounts are never hard-deleted.
// @Tags         accounts
// @Param        accountID  path  string  true  "Account ID"
// @Success      204  "Account deactivated"
// @Failure      404  {object}  map[string]string "Account not found"
// @Failure      500  {object}  map[string]string "Internal server error"
// @Security     BearerAuth
// @Router       /accounts/{accountID} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), tenantID, c.Param("accountID"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate account")
		return
	}

	c.Status(http.StatusNoContent)
}
