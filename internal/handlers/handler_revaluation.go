package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/corebanking/gl_backend/internal/apperrors"
	portssvc "github.com/corebanking/gl_backend/internal/core/ports/services"
	"github.com/corebanking/gl_backend/internal/dto"
	"github.com/corebanking/gl_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// revaluationHandler handles HTTP requests for currency revaluations.
type revaluationHandler struct {
	revaluationService portssvc.RevaluationSvcFacade
}

// newRevaluationHandler creates a new revaluationHandler.
func newRevaluationHandler(rs portssvc.RevaluationSvcFacade) *revaluationHandler {
	return &revaluationHandler{
		revaluationService: rs,
	}
}

// registerRevaluationRoutes registers revaluation routes.
func registerRevaluationRoutes(rg *gin.RouterGroup, revaluationService portssvc.RevaluationSvcFacade) {
	h := newRevaluationHandler(revaluationService)

	revaluations := rg.Group("/revaluations")
	{
		revaluations.POST("", h.runRevaluation)
		revaluations.GET("", h.listRevaluations)
	}
}

// runRevaluation godoc
// @Summary Run a currency revaluation
// @Description Revalues all foreign currency exposure into the base currency as of the requested date
// @Tags revaluations
// @Accept  json
// @Produce  json
// @Param   revaluation body dto.RunRevaluationRequest true "Revaluation parameters"
// @Success 200 {object} dto.RevaluationResultResponse
// @Failure 400 {object} map[string]string "Invalid input or closed period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Financial period not found"
// @Failure 500 {object} map[string]string "Failed to run revaluation"
// @Security BearerAuth
// @Router /revaluations [post]
func (h *revaluationHandler) runRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RunRevaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RunRevaluation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("financial_period_id", req.FinancialPeriodID), slog.String("requesting_user_id", requestingUserID))
	logger.Info("Received request to run revaluation", slog.Time("revaluation_date", req.RevaluationDate), slog.Bool("book_postings", req.BookPostings))

	result, err := h.revaluationService.RunRevaluation(c.Request.Context(), req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Financial period not found for revaluation")
			c.JSON(http.StatusNotFound, gin.H{"error": "Financial period not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Period closed, revaluation rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error running revaluation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to run revaluation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run revaluation"})
		}
		return
	}

	logger.Info("Revaluation completed",
		slog.Int("currencies_revalued", len(result.Revaluations)),
		slog.Int("currencies_skipped", len(result.SkippedCurrencies)))
	c.JSON(http.StatusOK, dto.ToRevaluationResultResponse(result))
}

// listRevaluations godoc
// @Summary List revaluations for a period
// @Description Retrieves the revaluation records saved for a financial period
// @Tags revaluations
// @Produce  json
// @Param   periodID query string true "Financial period ID"
// @Success 200 {array} dto.CurrencyRevaluationResponse
// @Failure 400 {object} map[string]string "Missing period ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list revaluations"
// @Security BearerAuth
// @Router /revaluations [get]
func (h *revaluationHandler) listRevaluations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periodID := c.Query("periodID")
	if periodID == "" {
		logger.Warn("Missing periodID for listRevaluations")
		c.JSON(http.StatusBadRequest, gin.H{"error": "periodID query parameter required"})
		return
	}

	logger = logger.With(slog.String("financial_period_id", periodID))
	logger.Info("Received request to list revaluations")

	revaluations, err := h.revaluationService.ListRevaluations(c.Request.Context(), periodID)
	if err != nil {
		logger.Error("Failed to list revaluations from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list revaluations"})
		return
	}

	responses := make([]dto.CurrencyRevaluationResponse, len(revaluations))
	for i, r := range revaluations {
		responses[i] = dto.ToCurrencyRevaluationResponse(&r)
	}
	c.JSON(http.StatusOK, responses)
}
