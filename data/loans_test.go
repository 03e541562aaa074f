package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueDate(t *testing.T) {
	tests := []struct {
		name       string
		borrowedOn string
		want       string
	}{
		{"mid-month", "2024-03-15", "2024-04-15"},
		{"across a year boundary", "2024-12-02", "2025-01-02"},
		{"normalizes a short month", "2024-01-31", "2024-03-02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			borrowedOn, err := time.Parse(time.DateOnly, tt.borrowedOn)
			assert.NoError(t, err)
			want, err := time.Parse(time.DateOnly, tt.want)
			assert.NoError(t, err)
			assert.Equal(t, want, DueDate(borrowedOn))
		})
	}
}
