// Package scanner wires the card pipeline together: image bytes are
// binarized, handed to the recognition engine, and the recognized text is
// parsed into structured contact fields. Each image is processed
// independently; the scanner keeps no state across calls.
//
// Whether binarization helps or hurts a given photo is image-dependent:
// over-aggressive thresholding can reduce accuracy on already-clean images.
// The preprocessing strategy is therefore configurable rather than a silent
// toggle — "best" runs both passes and keeps the higher-confidence result.
package scanner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"cardscan/internal/binarize"
	"cardscan/internal/logger"
	"cardscan/internal/parse"
	"cardscan/internal/recognize"
	"cardscan/pkg/models"
)

// Strategy selects how the input image is preprocessed before recognition.
type Strategy string

const (
	// StrategyBinarized runs recognition on the binarized raster.
	StrategyBinarized Strategy = "binarized"

	// StrategyRaw bypasses preprocessing and recognizes the original image.
	StrategyRaw Strategy = "raw"

	// StrategyBest runs both passes and keeps the higher-confidence result.
	StrategyBest Strategy = "best"
)

// ParseStrategy converts a configuration string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyBinarized, StrategyRaw, StrategyBest:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown preprocessing strategy %q (want binarized, raw or best)", s)
}

// ScanResult is the outcome of one full pipeline run.
type ScanResult struct {
	// Record holds the extracted contact fields.
	Record models.CardData `json:"record"`

	// RawText is the recognized text the record was parsed from.
	RawText string `json:"raw_text"`

	// Confidence is the engine-reported confidence of the kept pass (0-100).
	Confidence float64 `json:"confidence"`

	// Strategy names the pass that produced the kept result, "binarized"
	// or "raw".
	Strategy Strategy `json:"strategy"`
}

// Scanner runs the scan pipeline against a recognition engine. A Scanner
// must not be shared across concurrent scans of the same engine instance;
// the engines serialize recognition themselves.
type Scanner struct {
	engine   recognize.Engine
	strategy Strategy
	log      zerolog.Logger
}

// New creates a Scanner for the given engine and preprocessing strategy.
func New(engine recognize.Engine, strategy Strategy) *Scanner {
	return &Scanner{
		engine:   engine,
		strategy: strategy,
		log:      logger.WithComponent("scanner"),
	}
}

// Scan runs the pipeline over one encoded card photo. A failed recognition
// is surfaced as-is; there is no retry policy here — the caller decides
// whether to retry, with or without preprocessing.
func (s *Scanner) Scan(ctx context.Context, image []byte) (*ScanResult, error) {
	switch s.strategy {
	case StrategyRaw:
		return s.scanPass(ctx, image, StrategyRaw)
	case StrategyBest:
		return s.scanBest(ctx, image)
	default:
		return s.scanBinarized(ctx, image)
	}
}

func (s *Scanner) scanBinarized(ctx context.Context, image []byte) (*ScanResult, error) {
	processed, err := binarize.BinarizeBytes(image)
	if err != nil {
		return nil, err
	}
	return s.scanPass(ctx, processed, StrategyBinarized)
}

// scanBest runs the binarized and raw passes and keeps whichever the engine
// was more confident about. Any failed pass fails the scan.
func (s *Scanner) scanBest(ctx context.Context, image []byte) (*ScanResult, error) {
	binarized, err := s.scanBinarized(ctx, image)
	if err != nil {
		return nil, err
	}
	raw, err := s.scanPass(ctx, image, StrategyRaw)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Float64("binarized_confidence", binarized.Confidence).
		Float64("raw_confidence", raw.Confidence).
		Msg("Comparing preprocessing passes")

	if raw.Confidence > binarized.Confidence {
		return raw, nil
	}
	return binarized, nil
}

func (s *Scanner) scanPass(ctx context.Context, image []byte, pass Strategy) (*ScanResult, error) {
	result, err := s.engine.Recognize(ctx, image)
	if err != nil {
		return nil, err
	}

	record := parse.CardFields(result.Text)

	s.log.Debug().
		Str("engine", s.engine.Name()).
		Str("pass", string(pass)).
		Float64("confidence", result.Confidence).
		Int("text_length", len(result.Text)).
		Bool("empty_record", record.IsEmpty()).
		Msg("Scan pass completed")

	return &ScanResult{
		Record:     record,
		RawText:    result.Text,
		Confidence: result.Confidence,
		Strategy:   pass,
	}, nil
}
