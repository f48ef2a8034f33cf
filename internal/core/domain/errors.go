package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Image URL Errors
// ============================================================================

var (
	ErrInvalidURL    = errors.New("image is not a valid absolute url")
	ErrMalformedPath = errors.New("image path must have folder, stage and file segments")
	ErrHostRewrite   = errors.New("could not set a new host for image")
)

// ============================================================================
// Metadata Errors
// ============================================================================

// Not found errors
var (
	ErrRecordNotFound      = errors.New("metadata record not found")
	ErrCurrentStageMissing = errors.New("current stage row not found")
)

// Conflict errors
var (
	ErrEditionConflict = errors.New("metadata with this edition already exists")
)

// Validation errors
var (
	ErrInvalidOpacity = errors.New("opacity can be 35, 45 and 100 only")
	ErrInvalidHost    = errors.New("host is required")
	ErrInvalidSource  = errors.New("import source is required")
)

// Business rule errors
var (
	ErrReportConsumed = errors.New("frozen report has already been read")
)

// ============================================================================
// Infrastructure Errors
// ============================================================================

var (
	ErrStore           = errors.New("metadata store failure")
	ErrImportParse     = errors.New("import feed is not a valid metadata array")
	ErrFeedUnavailable = errors.New("import feed request failed")
	ErrFileSystem      = errors.New("export file system failure")
)

// RecordError reports the record a batch operation stopped at.
type RecordError struct {
	Operation string
	Edition   int
	Err       error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: edition %d: %v", e.Operation, e.Edition, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
