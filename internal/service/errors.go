package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors returned by the approval workflow.
var (
	ErrNotFound          = errors.New("not found")
	ErrNoMatchingRecords = errors.New("no matching records")
	ErrStorageFailure    = errors.New("storage failure")
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Failure codes reported per item in a BatchResult.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeNoMatchingRecords = "NO_MATCHING_RECORDS"
	CodeInvalidID         = "INVALID_ID"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeStorageFailure    = "STORAGE_FAILURE"
)

// ErrorCode classifies err into one of the failure codes.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrNoMatchingRecords):
		return CodeNoMatchingRecords
	case errors.Is(err, ErrValidation):
		return CodeInvalidID
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	default:
		return CodeStorageFailure
	}
}

func lookupErr(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s not found: %w", what, ErrNotFound)
	}
	return storageErr("load "+what, err)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, ErrStorageFailure, err)
}

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
