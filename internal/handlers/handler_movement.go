package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// defaultExpandHorizonMonths bounds an ad-hoc expansion when the request
// does not say how far ahead to generate.
const defaultExpandHorizonMonths = 3

// movementHandler handles HTTP requests related to movements.
type movementHandler struct {
	movementService   portssvc.MovementSvcFacade
	recurrenceService portssvc.RecurrenceSvcFacade
}

// registerMovementRoutes registers routes related to movements.
func registerMovementRoutes(rg *gin.RouterGroup, movementService portssvc.MovementSvcFacade, recurrenceService portssvc.RecurrenceSvcFacade) {
	h := &movementHandler{movementService: movementService, recurrenceService: recurrenceService}

	movements := rg.Group("/movements")
	{
		movements.POST("", h.createMovement)
		movements.GET("", h.listMovements)
		movements.GET("/:id", h.getMovement)
		movements.PUT("/:id", h.updateMovement)
		movements.DELETE("/:id", h.deleteMovement)
		movements.POST("/:id/expand", h.expandMovement)
	}
}

// createMovement godoc
// @Summary Create a movement
// @Description Records an income or expense. With autoCategorize set and no category supplied, the rule matcher classifies it.
// @Tags movements
// @Accept json
// @Produce json
// @Param movement body dto.CreateMovementRequest true "Movement details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Account or category belongs to another user"
// @Failure 409 {object} ErrorResponse "Duplicate external id on the account"
// @Security BearerAuth
// @Router /movements [post]
func (h *movementHandler) createMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.CreateMovement(c.Request.Context(), ownerID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create movement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List movements
// @Description Retrieves a filtered page of the logged-in user's movements, most recent first. Pass nextToken to continue a previous page.
// @Tags movements
// @Produce json
// @Param competence query string false "Competence period (YYYY-MM)"
// @Param accountID query string false "Filter by account"
// @Param categoryID query string false "Filter by category"
// @Param kind query string false "Filter by kind" Enums(INCOME, EXPENSE)
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movements, nextToken, err := h.movementService.ListMovements(c.Request.Context(), ownerID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, dto.ListMovementsResponse{
		Movements: dto.ToListMovementResponse(movements),
		NextToken: nextToken,
	})
}

// getMovement godoc
// @Summary Get a movement by ID
// @Tags movements
// @Produce json
// @Param id path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/{id} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.GetMovementByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// updateMovement godoc
// @Summary Update a movement
// @Description Applies a partial patch. Setting a category manually clears the auto-categorized flag; changing the date re-derives competence unless one is supplied.
// @Tags movements
// @Accept json
// @Produce json
// @Param id path string true "Movement ID"
// @Param movement body dto.UpdateMovementRequest true "Fields to update"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/{id} [put]
func (h *movementHandler) updateMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.UpdateMovement(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// deleteMovement godoc
// @Summary Delete a movement
// @Tags movements
// @Param id path string true "Movement ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/{id} [delete]
func (h *movementHandler) deleteMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.movementService.DeleteMovement(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete movement")
		return
	}
	c.Status(http.StatusNoContent)
}

// expandMovement godoc
// @Summary Expand a recurrence template
// @Description Materializes future occurrences of a recurring movement up to the requested horizon. Safe to re-run: already-materialized occurrences are skipped.
// @Tags movements
// @Accept json
// @Produce json
// @Param id path string true "Movement ID"
// @Param expand body dto.ExpandMovementRequest false "Expansion parameters"
// @Success 200 {object} dto.ExpansionResultResponse
// @Failure 400 {object} ErrorResponse "Movement is not recurring"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/{id}/expand [post]
func (h *movementHandler) expandMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	// Body is optional; an empty one falls back to the default horizon.
	var req dto.ExpandMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	months := req.HorizonMonths
	if months <= 0 {
		months = defaultExpandHorizonMonths
	}
	horizon := time.Now().AddDate(0, months, 0)

	result, err := h.recurrenceService.ExpandMovement(c.Request.Context(), ownerID, c.Param("id"), horizon)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to expand movement")
		return
	}
	c.JSON(http.StatusOK, dto.ExpansionResultResponse{
		Generated: result.Generated,
		Skipped:   result.Skipped,
	})
}
