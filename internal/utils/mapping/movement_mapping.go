package mapping

import (
	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/models"
)

// ToModelMovement converts a domain Movement to a model Movement
func ToModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:         d.MovementID,
		OwnerID:            d.OwnerID,
		AccountID:          d.AccountID,
		CategoryID:         d.CategoryID,
		Description:        d.Description,
		Amount:             d.Amount,
		Date:               d.Date,
		Kind:               models.MovementKind(d.Kind),
		Origin:             models.MovementOrigin(d.Origin),
		AutoCategorized:    d.AutoCategorized,
		Confidence:         d.Confidence,
		ExternalID:         d.ExternalID,
		Competence:         d.Competence,
		Notes:              d.Notes,
		IsRecurring:        d.IsRecurring,
		RecurrenceKind:     string(d.RecurrenceKind),
		RecurrenceInterval: d.RecurrenceInterval,
		RecurrenceEndDate:  d.RecurrenceEndDate,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMovement converts a model Movement to a domain Movement
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:         m.MovementID,
		OwnerID:            m.OwnerID,
		AccountID:          m.AccountID,
		CategoryID:         m.CategoryID,
		Description:        m.Description,
		Amount:             m.Amount,
		Date:               m.Date,
		Kind:               domain.MovementKind(m.Kind),
		Origin:             domain.MovementOrigin(m.Origin),
		AutoCategorized:    m.AutoCategorized,
		Confidence:         m.Confidence,
		ExternalID:         m.ExternalID,
		Competence:         m.Competence,
		Notes:              m.Notes,
		IsRecurring:        m.IsRecurring,
		RecurrenceKind:     domain.RecurrenceKind(m.RecurrenceKind),
		RecurrenceInterval: m.RecurrenceInterval,
		RecurrenceEndDate:  m.RecurrenceEndDate,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMovementSlice converts a slice of model Movements to domain Movements
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
