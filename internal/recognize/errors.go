package recognize

import (
	"errors"
	"fmt"
)

// Common recognition errors
var (
	// ErrInitFailed is returned when the OCR engine cannot be initialized.
	// Fatal for the call; the caller may retry with backoff.
	ErrInitFailed = errors.New("OCR engine initialization failed")

	// ErrRecognitionFailed is returned when the engine fails during
	// recognition. Fatal for that call; the caller may retry, optionally
	// bypassing preprocessing.
	ErrRecognitionFailed = errors.New("OCR recognition failed")

	// ErrEmptyImage is returned when no image bytes were supplied.
	ErrEmptyImage = errors.New("empty image input")

	// ErrMissingCredentials is returned when the Google Vision engine is
	// selected but neither GOOGLE_APPLICATION_CREDENTIALS nor
	// GOOGLE_CREDENTIALS is configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")
)

// OCRError wraps errors with additional context about the recognition failure.
type OCRError struct {
	// Op is the operation that failed (e.g., "Recognize", "NewVisionEngine").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *OCRError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("recognize: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("recognize: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *OCRError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *OCRError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewOCRError creates a new OCRError with the specified operation and underlying error.
func NewOCRError(op string, err error, details string) *OCRError {
	return &OCRError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapOCRError wraps an error as an OCRError if it isn't already one.
func WrapOCRError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var ocrErr *OCRError
	if errors.As(err, &ocrErr) {
		return err // Already wrapped
	}

	return NewOCRError(op, err, details)
}
