package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
	portssvc "github.com/corebanking/gl_backend/internal/core/ports/services"
	"github.com/corebanking/gl_backend/internal/dto"
	"github.com/corebanking/gl_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for balance and activity queries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers balance and activity routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id/balance", h.getAccountBalance)
		accounts.GET("/:id/activity", h.getAccountActivity)
		accounts.GET("/:id/lines", h.listAccountLines)
	}

	balances := rg.Group("/balances")
	{
		balances.GET("/classification/:classification", h.getBalancesByClassification)
		balances.GET("/type/:type", h.getBalancesByType)
	}
}

// getAccountBalance godoc
// @Summary Get an account's balance
// @Description Returns the current balance, or the balance as of a historical date when asOf is given
// @Tags ledger
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   asOf query string false "Historical balance date (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve balance"
// @Security BearerAuth
// @Router /accounts/{id}/balance [get]
func (h *ledgerHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var asOf *time.Time
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := parseDateQuery(raw, time.Time{})
		if err != nil {
			logger.Warn("Invalid asOf date for balance query", slog.String("asOf", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date: " + raw})
			return
		}
		asOf = &parsed
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request for account balance", slog.Any("as_of", asOf))

	balance, err := h.ledgerService.GetAccountBalance(c.Request.Context(), accountID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for balance query")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account balance from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(balance))
}

// getAccountActivity godoc
// @Summary Get an account's activity statement
// @Description Returns the posted lines touching the account within an inclusive date range
// @Tags ledger
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   from query string true "Range start (YYYY-MM-DD or RFC3339)"
// @Param   to query string true "Range end (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} dto.AccountActivityResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve activity"
// @Security BearerAuth
// @Router /accounts/{id}/activity [get]
func (h *ledgerHandler) getAccountActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	from, err := parseDateQuery(c.Query("from"), time.Time{})
	if err != nil || from.IsZero() {
		logger.Warn("Invalid or missing from date for activity query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid from date required"})
		return
	}
	to, err := parseDateQuery(c.Query("to"), time.Time{})
	if err != nil || to.IsZero() {
		logger.Warn("Invalid or missing to date for activity query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid to date required"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to date must not be before from date"})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request for account activity", slog.Time("from", from), slog.Time("to", to))

	activity, err := h.ledgerService.GetAccountActivity(c.Request.Context(), accountID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for activity query")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account activity from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activity"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountActivityResponse(activity))
}

// listAccountLines godoc
// @Summary List an account's posting lines
// @Description Returns a token-paginated list of posting lines for the account, newest first
// @Tags ledger
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListLinesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list posting lines"
// @Security BearerAuth
// @Router /accounts/{id}/lines [get]
func (h *ledgerHandler) listAccountLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.ListLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAccountLines", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to list account lines")

	resp, err := h.ledgerService.ListAccountLines(c.Request.Context(), accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for line listing")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token for ListAccountLines", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list account lines from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posting lines"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getBalancesByClassification godoc
// @Summary List balances by classification
// @Description Returns current balances of active accounts with the given classification
// @Tags ledger
// @Produce  json
// @Param   classification path string true "Account classification" Enums(ASSET, LIABILITY, EQUITY, INCOME, EXPENSE)
// @Success 200 {array} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Unknown classification"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve balances"
// @Security BearerAuth
// @Router /balances/classification/{classification} [get]
func (h *ledgerHandler) getBalancesByClassification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	classification := domain.AccountClassification(c.Param("classification"))
	if _, err := domain.NormalBalanceFor(classification); err != nil {
		logger.Warn("Unknown account classification", slog.String("classification", string(classification)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown classification: " + string(classification)})
		return
	}

	logger.Info("Received request for balances by classification", slog.String("classification", string(classification)))

	balances, err := h.ledgerService.GetBalancesByClassification(c.Request.Context(), classification)
	if err != nil {
		logger.Error("Failed to get balances by classification from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalanceResponses(balances))
}

// getBalancesByType godoc
// @Summary List balances by account type
// @Description Returns current balances of active accounts with the given detailed type
// @Tags ledger
// @Produce  json
// @Param   type path string true "Account type" Enums(CURRENT_ASSET, FIXED_ASSET, CURRENT_LIABILITY, LONG_TERM_LIABILITY, EQUITY_CAPITAL, OPERATING_INCOME, OTHER_INCOME, OPERATING_EXPENSE, OTHER_EXPENSE)
// @Success 200 {array} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Unknown account type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve balances"
// @Security BearerAuth
// @Router /balances/type/{type} [get]
func (h *ledgerHandler) getBalancesByType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountType := domain.AccountType(c.Param("type"))
	if _, err := domain.ClassificationForType(accountType); err != nil {
		logger.Warn("Unknown account type", slog.String("type", string(accountType)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown account type: " + string(accountType)})
		return
	}

	logger.Info("Received request for balances by type", slog.String("type", string(accountType)))

	balances, err := h.ledgerService.GetBalancesByType(c.Request.Context(), accountType)
	if err != nil {
		logger.Error("Failed to get balances by type from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalanceResponses(balances))
}
