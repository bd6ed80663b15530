package dto

import (
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMovementRequest defines the data needed to create a new movement.
// Structural invariants (positive amount, recurrence consistency, ownership
// of account and category) are enforced by the movement service.
type CreateMovementRequest struct {
	AccountID   string                `json:"accountID" binding:"required,uuid"`
	CategoryID  *string               `json:"categoryID" binding:"omitempty,uuid"`
	Description string                `json:"description" binding:"required"`
	Amount      decimal.Decimal       `json:"amount" binding:"required"`
	Date        time.Time             `json:"date" binding:"required"`
	Kind        domain.MovementKind   `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Origin      domain.MovementOrigin `json:"origin" binding:"omitempty,oneof=MANUAL STATEMENT_IMPORT EXTERNAL_MESSAGE"`
	ExternalID  *string               `json:"externalID"`
	Competence  *string               `json:"competence" binding:"omitempty,competence"` // Derived from Date when absent
	Notes       string                `json:"notes"`

	// AutoCategorize asks the rule matcher to classify the movement when no
	// category is supplied.
	AutoCategorize bool `json:"autoCategorize"`

	IsRecurring        bool                   `json:"isRecurring"`
	RecurrenceKind     *domain.RecurrenceKind `json:"recurrenceKind" binding:"omitempty,oneof=WEEKLY MONTHLY YEARLY"`
	RecurrenceInterval *int                   `json:"recurrenceInterval" binding:"omitempty,min=1"`
	RecurrenceEndDate  *time.Time             `json:"recurrenceEndDate"`
}

// UpdateMovementRequest defines the fields allowed when patching a movement.
// AccountID and ExternalID are immutable and deliberately absent. An empty
// CategoryID string clears the category.
type UpdateMovementRequest struct {
	CategoryID  *string                `json:"categoryID"`
	Description *string                `json:"description"`
	Amount      *decimal.Decimal       `json:"amount"`
	Date        *time.Time             `json:"date"`
	Kind        *domain.MovementKind   `json:"kind" binding:"omitempty,oneof=INCOME EXPENSE"`
	Competence  *string                `json:"competence" binding:"omitempty,competence"`
	Notes       *string                `json:"notes"`
	IsRecurring *bool                  `json:"isRecurring"`

	RecurrenceKind     *domain.RecurrenceKind `json:"recurrenceKind" binding:"omitempty,oneof=WEEKLY MONTHLY YEARLY"`
	RecurrenceInterval *int                   `json:"recurrenceInterval" binding:"omitempty,min=1"`
	RecurrenceEndDate  *time.Time             `json:"recurrenceEndDate"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID  string                `json:"movementID"`
	AccountID   string                `json:"accountID"`
	CategoryID  string                `json:"categoryID,omitempty"`
	Description string                `json:"description"`
	Amount      decimal.Decimal       `json:"amount"`
	Date        time.Time             `json:"date"`
	Kind        domain.MovementKind   `json:"kind"`
	Origin      domain.MovementOrigin `json:"origin"`

	AutoCategorized bool    `json:"autoCategorized"`
	Confidence      float64 `json:"confidence,omitempty"`

	ExternalID string `json:"externalID,omitempty"`
	Competence string `json:"competence"`
	Notes      string `json:"notes,omitempty"`

	IsRecurring        bool                  `json:"isRecurring"`
	RecurrenceKind     domain.RecurrenceKind `json:"recurrenceKind,omitempty"`
	RecurrenceInterval int                   `json:"recurrenceInterval,omitempty"`
	RecurrenceEndDate  *time.Time            `json:"recurrenceEndDate,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse DTO
func ToMovementResponse(m *domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:         m.MovementID,
		AccountID:          m.AccountID,
		CategoryID:         m.CategoryID,
		Description:        m.Description,
		Amount:             m.Amount,
		Date:               m.Date,
		Kind:               m.Kind,
		Origin:             m.Origin,
		AutoCategorized:    m.AutoCategorized,
		Confidence:         m.Confidence,
		ExternalID:         m.ExternalID,
		Competence:         m.Competence,
		Notes:              m.Notes,
		IsRecurring:        m.IsRecurring,
		RecurrenceKind:     m.RecurrenceKind,
		RecurrenceInterval: m.RecurrenceInterval,
		RecurrenceEndDate:  m.RecurrenceEndDate,
		CreatedAt:          m.CreatedAt,
		LastUpdatedAt:      m.LastUpdatedAt,
	}
}

// ToListMovementResponse converts a slice of domain.Movement to response DTOs
func ToListMovementResponse(movements []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i := range movements {
		res[i] = ToMovementResponse(&movements[i])
	}
	return res
}

// ListMovementsParams defines query parameters for listing movements.
type ListMovementsParams struct {
	Competence string  `form:"competence" binding:"omitempty,competence"`
	AccountID  string  `form:"accountID"`
	CategoryID string  `form:"categoryID"`
	Kind       string  `form:"kind" binding:"omitempty,oneof=INCOME EXPENSE"`
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
}

// ListMovementsResponse wraps a movement page with its pagination token.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ExpandMovementRequest defines parameters for an ad-hoc expansion of one
// recurrence template.
type ExpandMovementRequest struct {
	// HorizonMonths bounds generation when the template has no end date.
	HorizonMonths int `json:"horizonMonths" binding:"omitempty,min=1,max=36"`
}

// ExpansionResultResponse reports what an expansion run produced.
type ExpansionResultResponse struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"` // Already-materialized occurrences
}
