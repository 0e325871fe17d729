// Package recognize bridges binarized card rasters to an OCR engine and
// normalizes the result shape.
//
// Two engines are provided:
//   - Tesseract (default): local recognition via the gosseract bindings,
//     requires the tesseract library plus the chi_tra and eng trained data.
//   - Google Vision: cloud recognition via the Vision API, requires
//     GOOGLE_APPLICATION_CREDENTIALS (service account file path) or
//     GOOGLE_CREDENTIALS (inline JSON) in the environment.
//
// Both engines are configured for combined Latin + Traditional-Chinese
// recognition of a single uniform text block; business cards are one dense
// block, not a multi-column layout.
//
// Concurrency: a recognition call may take hundreds of milliseconds to tens
// of seconds. At most one recognition is in flight per engine instance;
// concurrent cards must queue or use independent instances.
package recognize

import (
	"context"
	"time"
)

// Result is the normalized output of one recognition call. It is created
// once per call and read-only afterward.
type Result struct {
	// Text is the recognized text, newline-delimited in reading order.
	// Empty text is a valid result, not an error.
	Text string `json:"text"`

	// Confidence is the engine-reported confidence in [0, 100]. It is
	// passed through as reported, not reinterpreted.
	Confidence float64 `json:"confidence"`

	// ProcessedAt is when the recognition completed.
	ProcessedAt time.Time `json:"processed_at"`

	// ProcessingDuration is how long the engine call took.
	ProcessingDuration time.Duration `json:"processing_duration"`
}

// Engine is the OCR provider contract: one encoded image in, one result out.
type Engine interface {
	// Name identifies the engine, e.g. "tesseract".
	Name() string

	// Recognize runs OCR over an encoded image (PNG or JPEG bytes).
	Recognize(ctx context.Context, image []byte) (*Result, error)
}

// Config holds engine tuning shared by implementations.
type Config struct {
	// Languages lists trained-data/language hints, most significant first.
	Languages []string

	// PageSegMode is the Tesseract page segmentation mode. Mode 6 assumes
	// a single uniform block of text.
	PageSegMode int

	// EngineMode is the Tesseract OCR engine mode. Mode 1 is LSTM neural
	// nets only.
	EngineMode int
}

// DefaultConfig returns the configuration tuned for business cards:
// Traditional Chinese first (better for Chinese-heavy cards) plus English,
// single-block segmentation, neural recognition.
func DefaultConfig() Config {
	return Config{
		Languages:   []string{"chi_tra", "eng"},
		PageSegMode: 6,
		EngineMode:  1,
	}
}
