package domain_test

import (
	"testing"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidCompetence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "valid january", input: "2025-01", want: true},
		{name: "valid december", input: "2025-12", want: true},
		{name: "month zero", input: "2025-00", want: false},
		{name: "month thirteen", input: "2025-13", want: false},
		{name: "missing month", input: "2025", want: false},
		{name: "full date", input: "2025-01-31", want: false},
		{name: "empty", input: "", want: false},
		{name: "non-numeric", input: "abcd-ef", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ValidCompetence(tt.input))
		})
	}
}

func TestCompetenceFromDate(t *testing.T) {
	d := time.Date(2025, time.March, 9, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2025-03", domain.CompetenceFromDate(d))

	first := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01", domain.CompetenceFromDate(first))
}

func TestMovement_ClearRecurrence(t *testing.T) {
	end := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	m := domain.Movement{
		IsRecurring:        true,
		RecurrenceKind:     domain.Monthly,
		RecurrenceInterval: 2,
		RecurrenceEndDate:  &end,
	}

	m.ClearRecurrence()

	assert.False(t, m.IsRecurring)
	assert.Empty(t, m.RecurrenceKind)
	assert.Zero(t, m.RecurrenceInterval)
	assert.Nil(t, m.RecurrenceEndDate)
}

func TestValidMovementOrigin(t *testing.T) {
	assert.True(t, domain.ValidMovementOrigin(domain.OriginManual))
	assert.True(t, domain.ValidMovementOrigin(domain.OriginStatementImport))
	assert.True(t, domain.ValidMovementOrigin(domain.OriginExternalMessage))
	assert.False(t, domain.ValidMovementOrigin("WHATSAPP"))
	assert.False(t, domain.ValidMovementOrigin(""))
}
