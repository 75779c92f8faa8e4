package domain

import "errors"

// ============================================================================
// Artifact Errors
// ============================================================================

var (
	ErrArtifactMissing  = errors.New("model artifact not found or unreadable")
	ErrPredictionFailed = errors.New("model prediction failed")
)

// ============================================================================
// Input Errors
// ============================================================================

// Recoverable: the caller has not supplied anything yet.
var (
	ErrEmptyInput = errors.New("no dataset or record supplied")
)

// Validation errors
var (
	ErrMalformedDataset = errors.New("dataset is not valid CSV")
	ErrInvalidRecord    = errors.New("record contains an unsupported value")
	ErrRowOutOfRange    = errors.New("row index out of range")
	ErrUploadTooLarge   = errors.New("upload exceeds the size limit")
	ErrSchemaMismatch   = errors.New("record does not provide every model feature")
)

// ============================================================================
// Analytics Errors
// ============================================================================

var (
	ErrColumnNotFound   = errors.New("column not found")
	ErrColumnNotNumeric = errors.New("column is not numeric")
	ErrNoNumericColumns = errors.New("no numeric columns found for visualization")
	ErrInvalidBins      = errors.New("histogram bins must be a positive integer")
)

// ============================================================================
// View Errors
// ============================================================================

var (
	ErrUnknownView = errors.New("unknown view")
)

// ============================================================================
// Config Errors
// ============================================================================

var (
	ErrInvalidSchemaPolicy     = errors.New("invalid schema policy")
	ErrInvalidEncodingStrategy = errors.New("invalid encoding strategy")
)
