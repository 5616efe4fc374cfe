package platform

import (
	"errors"
)

var (
	// ErrTaskNotFound is returned when import task with provided ID doesn't exist.
	ErrTaskNotFound = errors.New("import task not found")
	// ErrTaskFinished is returned when finished import task is modified.
	ErrTaskFinished = errors.New("import task already finished")
	// ErrNoDataRows is returned when spreadsheet has no rows besides the header.
	ErrNoDataRows = errors.New("spreadsheet is empty or has no data rows")
	// ErrSpreadsheetRequired is returned when import is submitted without spreadsheet.
	ErrSpreadsheetRequired = errors.New("spreadsheet file is required")
	// ErrSyntheticReviewsNotAllowed is returned when review generation is requested
	// in environment which doesn't allow it.
	ErrSyntheticReviewsNotAllowed = errors.New("synthetic reviews are disabled in this environment")
	// ErrSyntheticReviewsNotConfirmed is returned when review generation is requested without explicit confirmation.
	ErrSyntheticReviewsNotConfirmed = errors.New("synthetic reviews must be confirmed explicitly")
)
