package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"VALIDATION_FAILED", http.StatusBadRequest},
		{"MISSING_COUNTERPARTY", http.StatusBadRequest},
		{"INVALID_FISCAL_YEAR", http.StatusBadRequest},
		{"ALLOCATION_MISMATCH", http.StatusUnprocessableEntity},
		{"EXCEEDS_BUYER_DUE", http.StatusUnprocessableEntity},
		{"SAME_POOL_TRANSFER", http.StatusUnprocessableEntity},
		{"ALREADY_REVERSED", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"ACCOUNT_IN_USE", http.StatusConflict},
		{"NOT_FOUND", http.StatusNotFound},
		{"ENTRY_NOT_FOUND", http.StatusNotFound},
		{"CONSISTENCY_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestGetHTTPStatusUnknownCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_NEW"))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(""))
}
