package dto

import "net/http"

// domainErrorStatus maps domain error codes to HTTP status codes.
// Codes missing from the map fall through to 500.
var domainErrorStatus = map[string]int{
	// Malformed or incomplete input
	"VALIDATION_FAILED":          http.StatusBadRequest,
	"INVALID_INPUT":              http.StatusBadRequest,
	"INVALID_AMOUNT":             http.StatusBadRequest,
	"INVALID_DATE":               http.StatusBadRequest,
	"INVALID_POOL":               http.StatusBadRequest,
	"INVALID_NAME":               http.StatusBadRequest,
	"INVALID_TRANSACTION_NUMBER": http.StatusBadRequest,
	"INVALID_FISCAL_YEAR":        http.StatusBadRequest,
	"INVALID_ACCOUNT_NAME":       http.StatusBadRequest,
	"INVALID_RECEIVABLES":        http.StatusBadRequest,
	"INVALID_SALE_NUMBER":        http.StatusBadRequest,
	"MISSING_COUNTERPARTY":       http.StatusBadRequest,

	// Well-formed but rejected by ledger rules
	"ALLOCATION_MISMATCH": http.StatusUnprocessableEntity,
	"EXCEEDS_BUYER_DUE":   http.StatusUnprocessableEntity,
	"EXCEEDS_FARMER_DUE":  http.StatusUnprocessableEntity,
	"EMPTY_ALLOCATION":    http.StatusUnprocessableEntity,
	"SAME_POOL_TRANSFER":  http.StatusUnprocessableEntity,
	"INVALID_STATE":       http.StatusUnprocessableEntity,

	// Conflicts with current resource state
	"ALREADY_REVERSED":     http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"ACCOUNT_IN_USE":       http.StatusConflict,
	"ALREADY_EXISTS":       http.StatusConflict,

	"NOT_FOUND":       http.StatusNotFound,
	"ENTRY_NOT_FOUND": http.StatusNotFound,

	"CONSISTENCY_ERROR": http.StatusInternalServerError,
	"INTERNAL":          http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
