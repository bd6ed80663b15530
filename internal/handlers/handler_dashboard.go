package handlers

import (
	"net/http"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dashboardHandler handles the read-only aggregation endpoints.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

// registerDashboardRoutes registers routes related to the dashboard.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := &dashboardHandler{dashboardService: dashboardService}

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/summary", h.getSummary)
		dashboard.GET("/expenses-by-category", h.getExpensesByCategory)
		dashboard.GET("/recent", h.getRecentMovements)
	}
}

// competenceOrCurrent resolves the month query parameter, defaulting to the
// current calendar month.
func competenceOrCurrent(c *gin.Context) (string, bool) {
	var params dto.DashboardPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return "", false
	}
	if params.Month == "" {
		return domain.CompetenceFromDate(time.Now()), true
	}
	return params.Month, true
}

// getSummary godoc
// @Summary Period summary
// @Description Totals income, expense and balance for one competence month. Defaults to the current month.
// @Tags dashboard
// @Produce json
// @Param month query string false "Competence period (YYYY-MM)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *dashboardHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	competence, ok := competenceOrCurrent(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), ownerID, competence)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// getExpensesByCategory godoc
// @Summary Expense breakdown by category
// @Description Breaks one month's expenses down by category, largest first. Uncategorized movements are grouped in a synthetic bucket.
// @Tags dashboard
// @Produce json
// @Param month query string false "Competence period (YYYY-MM)"
// @Success 200 {array} dto.CategoryExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/expenses-by-category [get]
func (h *dashboardHandler) getExpensesByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	competence, ok := competenceOrCurrent(c)
	if !ok {
		return
	}

	rows, err := h.dashboardService.GetExpensesByCategory(c.Request.Context(), ownerID, competence)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get expense breakdown")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryExpenseResponse(rows))
}

// getRecentMovements godoc
// @Summary Recent movements
// @Description Lists the most recent movements with account and category names resolved.
// @Tags dashboard
// @Produce json
// @Param limit query int false "Number of movements" default(5)
// @Success 200 {array} dto.RecentMovementResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/recent [get]
func (h *dashboardHandler) getRecentMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	var params dto.RecentMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.dashboardService.GetRecentMovements(c.Request.Context(), ownerID, params.Limit)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get recent movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRecentMovementResponse(rows))
}
