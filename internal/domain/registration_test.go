package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonsz1/vehicle-catalog/internal/domain"
)

func TestNewRegistrationNumber_NormalizesInput(t *testing.T) {
	reg, err := domain.NewRegistrationNumber("  abc123  ")

	require.NoError(t, err)
	assert.Equal(t, "ABC123", reg.Value())
}

func TestNewRegistrationNumber_EqualityByValue(t *testing.T) {
	a, err := domain.NewRegistrationNumber("wx12345")
	require.NoError(t, err)
	b, err := domain.NewRegistrationNumber("  WX12345")
	require.NoError(t, err)

	// Value objects compare by normalized content, not by construction input.
	assert.Equal(t, a, b)
}

func TestNewRegistrationNumber_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short", "AB1"},
		{"too short after trim", "  AB1  "},
		{"too long", "ABCDEFGH123456789"},
		{"hyphen", "AB-1234"},
		{"space inside", "AB 1234"},
		{"lowercase symbol", "abc12!"},
		{"unicode letter", "ZĄB1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewRegistrationNumber(tt.raw)

			assert.ErrorIs(t, err, domain.ErrInvalidFormat)
		})
	}
}

func TestNewRegistrationNumber_BoundaryLengths(t *testing.T) {
	// 4 and 16 characters are the inclusive limits.
	_, err := domain.NewRegistrationNumber("AB12")
	assert.NoError(t, err)

	_, err = domain.NewRegistrationNumber("ABCDEFGH12345678")
	assert.NoError(t, err)
}
