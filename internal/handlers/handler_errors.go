package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkamgno/ohada_ledger/internal/apperrors"
	"github.com/mkamgno/ohada_ledger/internal/core/services"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

// conflictErrors map to 409: the request was well-formed but collides
// with the current state of the resource.
var conflictErrors = []error{
	apperrors.ErrDuplicate,
	apperrors.ErrConflict,
	services.ErrPeriodClosed,
	services.ErrPeriodOverlap,
	services.ErrPeriodReferenced,
	services.ErrJournalReferenced,
	services.ErrEntryValidated,
	services.ErrEntryAlreadyValidated,
	services.ErrTemplatePairExists,
}

// rejectionErrors map to 400: the request itself violates a business rule.
var rejectionErrors = []error{
	apperrors.ErrValidation,
	services.ErrAccountNumberInvalid,
	services.ErrAccountInactive,
	services.ErrJournalCodeInvalid,
	services.ErrJournalTypeInvalid,
	services.ErrJournalInactive,
	services.ErrPeriodCodeInvalid,
	services.ErrPeriodRangeInvalid,
	services.ErrNoOpenPeriod,
	services.ErrDateOutsidePeriod,
	services.ErrEntryNumberInvalid,
	services.ErrEntryMinLines,
	services.ErrUnbalancedEntry,
	services.ErrTemplateInactive,
	services.ErrTemplateAccountNumber,
	services.ErrCeilingNotPositive,
	services.ErrCeilingExceeded,
	services.ErrSourceAmountNotPositive,
	services.ErrSourceNetExceedsGross,
	services.ErrSourceVATRateInvalid,
	services.ErrStockDirectionMissing,
}

// respondServiceError translates a service error into an HTTP response.
// fallback is the message returned on unexpected failures, which are
// never echoed to the client verbatim.
func respondServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	for _, sentinel := range conflictErrors {
		if errors.Is(err, sentinel) {
			logger.Warn("State conflict", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
	}
	for _, sentinel := range rejectionErrors {
		if errors.Is(err, sentinel) {
			logger.Warn("Business rule rejection", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	logger.Error(fallback, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

// requestIdentity extracts the tenant and user established by the
// middleware chain. It writes the error response itself when either is
// missing, which only happens on a route wiring mistake.
func requestIdentity(c *gin.Context) (tenantID, userID string, ok bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok = middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing tenant"})
		return "", "", false
	}
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return tenantID, userID, true
}
