package dto

import (
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardPeriodParams carries the competence period of a dashboard query.
// An absent month defaults to the current calendar month.
type DashboardPeriodParams struct {
	Month string `form:"month" binding:"omitempty,competence"`
}

// RecentMovementsParams carries the page size of the recent movements query.
type RecentMovementsParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// SummaryResponse is the period summary for the dashboard header.
type SummaryResponse struct {
	Competence string          `json:"competence"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Balance    decimal.Decimal `json:"balance"`
}

// ToSummaryResponse converts a domain.PeriodSummary to its DTO
func ToSummaryResponse(s *domain.PeriodSummary) SummaryResponse {
	return SummaryResponse{
		Competence: s.Competence,
		Income:     s.Income,
		Expense:    s.Expense,
		Balance:    s.Balance,
	}
}

// CategoryExpenseResponse is one row of the expense breakdown chart.
type CategoryExpenseResponse struct {
	CategoryID   string          `json:"categoryID,omitempty"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// ToListCategoryExpenseResponse converts breakdown rows to response DTOs
func ToListCategoryExpenseResponse(rows []domain.CategoryExpense) []CategoryExpenseResponse {
	res := make([]CategoryExpenseResponse, len(rows))
	for i, row := range rows {
		res[i] = CategoryExpenseResponse{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Total:        row.Total,
		}
	}
	return res
}

// RecentMovementResponse is a dashboard row with names resolved.
type RecentMovementResponse struct {
	MovementID   string                `json:"movementID"`
	Description  string                `json:"description"`
	Amount       decimal.Decimal       `json:"amount"`
	Date         time.Time             `json:"date"`
	Kind         domain.MovementKind   `json:"kind"`
	Origin       domain.MovementOrigin `json:"origin"`
	Competence   string                `json:"competence"`
	Notes        string                `json:"notes,omitempty"`
	AccountID    string                `json:"accountID"`
	AccountName  string                `json:"accountName"`
	CategoryID   string                `json:"categoryID,omitempty"`
	CategoryName string                `json:"categoryName,omitempty"`
}

// ToListRecentMovementResponse converts dashboard projections to DTOs
func ToListRecentMovementResponse(rows []domain.RecentMovement) []RecentMovementResponse {
	res := make([]RecentMovementResponse, len(rows))
	for i, row := range rows {
		res[i] = RecentMovementResponse{
			MovementID:   row.MovementID,
			Description:  row.Description,
			Amount:       row.Amount,
			Date:         row.Date,
			Kind:         row.Kind,
			Origin:       row.Origin,
			Competence:   row.Competence,
			Notes:        row.Notes,
			AccountID:    row.AccountID,
			AccountName:  row.AccountName,
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
		}
	}
	return res
}
