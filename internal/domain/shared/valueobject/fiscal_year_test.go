package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFiscalYearOf(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want FiscalYear
	}{
		{"start of April belongs to the new year", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 2025},
		{"late March belongs to the previous year", time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC), 2024},
		{"mid year", time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), 2025},
		{"January straddles", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FiscalYearOf(tt.date, time.April))
		})
	}
}

func TestFiscalYearRange(t *testing.T) {
	fy := FiscalYear(2025)

	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), fy.Start(time.April))
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), fy.End(time.April))

	assert.True(t, fy.Contains(fy.Start(time.April), time.April))
	assert.True(t, fy.Contains(time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC), time.April))
	assert.False(t, fy.Contains(fy.End(time.April), time.April))
	assert.False(t, fy.Contains(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), time.April))
}

func TestFiscalYearLabel(t *testing.T) {
	assert.Equal(t, "2025-26", FiscalYear(2025).Label())
	assert.Equal(t, "2099-00", FiscalYear(2099).Label())
}

func TestFiscalYearIsValid(t *testing.T) {
	assert.True(t, FiscalYear(2025).IsValid())
	assert.False(t, FiscalYear(0).IsValid())
	assert.False(t, FiscalYear(3500).IsValid())
}
