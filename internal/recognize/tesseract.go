package recognize

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements Engine with a local Tesseract instance via the
// gosseract client. A fresh client is created per call; the engine serializes
// calls so shared Tesseract state is never touched concurrently.
type TesseractEngine struct {
	cfg Config

	mu            sync.Mutex
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed engine with the given
// configuration.
func NewTesseractEngine(cfg Config) *TesseractEngine {
	if len(cfg.Languages) == 0 {
		cfg = DefaultConfig()
	}
	return &TesseractEngine{
		cfg:           cfg,
		clientFactory: gosseract.NewClient,
	}
}

// Name identifies the engine.
func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize runs OCR over the encoded image. Zero recognized characters is
// not an error; the result simply carries empty text.
func (e *TesseractEngine) Recognize(ctx context.Context, image []byte) (*Result, error) {
	const op = "Recognize"

	if len(image) == 0 {
		return nil, NewOCRError(op, ErrEmptyImage, "")
	}

	// One recognition in flight per engine instance.
	e.mu.Lock()
	defer e.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, WrapOCRError(op, ctx.Err(), "canceled before recognition")
	default:
	}

	startTime := time.Now()

	client := e.clientFactory()
	defer client.Close()

	if err := e.configure(client); err != nil {
		return nil, WrapOCRError(op, ErrInitFailed, err.Error())
	}

	if err := client.SetImageFromBytes(image); err != nil {
		return nil, WrapOCRError(op, ErrRecognitionFailed, fmt.Sprintf("set image: %v", err))
	}

	text, err := client.Text()
	if err != nil {
		return nil, WrapOCRError(op, ErrRecognitionFailed, fmt.Sprintf("recognize text: %v", err))
	}

	result := &Result{
		Text:       text,
		Confidence: wordConfidence(client),
	}
	result.ProcessedAt = time.Now()
	result.ProcessingDuration = result.ProcessedAt.Sub(startTime)
	return result, nil
}

// configure applies languages, segmentation mode and engine variables to a
// fresh client.
func (e *TesseractEngine) configure(client *gosseract.Client) error {
	if err := client.SetLanguage(e.cfg.Languages...); err != nil {
		return fmt.Errorf("set languages: %w", err)
	}
	if e.cfg.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(e.cfg.PageSegMode)); err != nil {
			return fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	if e.cfg.EngineMode > 0 {
		if err := client.SetVariable("tessedit_ocr_engine_mode", strconv.Itoa(e.cfg.EngineMode)); err != nil {
			return fmt.Errorf("set engine mode: %w", err)
		}
	}
	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return fmt.Errorf("set interword spaces: %w", err)
	}
	return nil
}

// wordConfidence averages per-word confidences from the word bounding boxes.
// Tesseract reports them in [0, 100] already.
func wordConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	return sum / float64(len(boxes))
}
