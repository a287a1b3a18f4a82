package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCommissionAmount(t *testing.T) {
	tests := []struct {
		sale, pct, want string
	}{
		{"1000", "10", "100"},
		{"1000", "5", "50"},
		{"1000", "2", "20"},
		{"999.99", "3.333", "33.33"},
		{"0.15", "10", "0.02"},
		{"100", "0", "0"},
	}

	for _, tt := range tests {
		got := CommissionAmount(decimal.RequireFromString(tt.sale), decimal.RequireFromString(tt.pct))
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "%s * %s%% = %s, want %s", tt.sale, tt.pct, got, tt.want)
	}
}

func TestCommissionValidation(t *testing.T) {
	assert.True(t, IsValidCommissionLevel(1))
	assert.True(t, IsValidCommissionLevel(MaxCommissionLevels))
	assert.False(t, IsValidCommissionLevel(0))
	assert.False(t, IsValidCommissionLevel(MaxCommissionLevels+1))

	assert.True(t, IsValidPercentage(decimal.Zero))
	assert.True(t, IsValidPercentage(decimal.NewFromInt(100)))
	assert.False(t, IsValidPercentage(decimal.NewFromInt(-1)))
	assert.False(t, IsValidPercentage(decimal.RequireFromString("100.01")))
}
