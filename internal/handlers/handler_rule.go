package handlers

import (
	"net/http"

	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ruleHandler handles HTTP requests related to category rules.
type ruleHandler struct {
	ruleService portssvc.CategoryRuleSvcFacade
}

// registerRuleRoutes registers routes related to category rules.
func registerRuleRoutes(rg *gin.RouterGroup, ruleService portssvc.CategoryRuleSvcFacade) {
	h := &ruleHandler{ruleService: ruleService}

	rules := rg.Group("/rules")
	{
		rules.POST("", h.createRule)
		rules.GET("", h.listRules)
		rules.GET("/:id", h.getRule)
		rules.PUT("/:id", h.updateRule)
		rules.DELETE("/:id", h.deleteRule)
		rules.POST("/match", h.matchRule)
	}
}

// createRule godoc
// @Summary Create a categorization rule
// @Description Creates a keyword rule. The keyword is lower-cased and trimmed before save.
// @Tags rules
// @Accept json
// @Produce json
// @Param rule body dto.CreateCategoryRuleRequest true "Rule details"
// @Success 201 {object} dto.CategoryRuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate keyword"
// @Security BearerAuth
// @Router /rules [post]
func (h *ruleHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rule, err := h.ruleService.CreateRule(c.Request.Context(), ownerID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create rule")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryRuleResponse(rule))
}

// listRules godoc
// @Summary List the logged-in user's rules
// @Description Rules are returned in matching order: priority ascending, then creation time.
// @Tags rules
// @Produce json
// @Success 200 {array} dto.CategoryRuleResponse
// @Security BearerAuth
// @Router /rules [get]
func (h *ruleHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rules, err := h.ruleService.ListRules(c.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list rules")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryRuleResponse(rules))
}

// getRule godoc
// @Summary Get a rule by ID
// @Tags rules
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} dto.CategoryRuleResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules/{id} [get]
func (h *ruleHandler) getRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rule, err := h.ruleService.GetRuleByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve rule")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryRuleResponse(rule))
}

// updateRule godoc
// @Summary Update a rule
// @Tags rules
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param rule body dto.UpdateCategoryRuleRequest true "Fields to update"
// @Success 200 {object} dto.CategoryRuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules/{id} [put]
func (h *ruleHandler) updateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCategoryRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rule, err := h.ruleService.UpdateRule(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update rule")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryRuleResponse(rule))
}

// deleteRule godoc
// @Summary Delete a rule
// @Tags rules
// @Param id path string true "Rule ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules/{id} [delete]
func (h *ruleHandler) deleteRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.ruleService.DeleteRule(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete rule")
		return
	}
	c.Status(http.StatusNoContent)
}

// matchRule godoc
// @Summary Dry-run the rule matcher
// @Description Resolves a description against the rule set without creating anything. Returns 204 when no rule matches.
// @Tags rules
// @Accept json
// @Produce json
// @Param match body dto.MatchRuleRequest true "Description to classify"
// @Success 200 {object} dto.RuleMatchResponse
// @Success 204 "No rule matched"
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules/match [post]
func (h *ruleHandler) matchRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MatchRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	match, err := h.ruleService.MatchRule(c.Request.Context(), ownerID, req.Description)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to match rule")
		return
	}
	if match == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.RuleMatchResponse{
		RuleID:     match.RuleID,
		CategoryID: match.CategoryID,
		Confidence: match.Confidence,
	})
}
