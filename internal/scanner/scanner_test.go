package scanner

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardscan/internal/recognize"
)

// fakeEngine returns canned results in call order and records the images it
// was handed.
type fakeEngine struct {
	results []*recognize.Result
	errs    []error
	images  [][]byte
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(_ context.Context, img []byte) (*recognize.Result, error) {
	call := len(f.images)
	f.images = append(f.images, img)
	if call < len(f.errs) && f.errs[call] != nil {
		return nil, f.errs[call]
	}
	if call < len(f.results) {
		return f.results[call], nil
	}
	return &recognize.Result{}, nil
}

func testPhoto(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			if x%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{R: 230, G: 230, B: 230, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestScanRawPassesOriginalImage(t *testing.T) {
	engine := &fakeEngine{results: []*recognize.Result{
		{Text: "John Doe\nCEO", Confidence: 90},
	}}
	photo := testPhoto(t)

	result, err := New(engine, StrategyRaw).Scan(context.Background(), photo)

	require.NoError(t, err)
	require.Len(t, engine.images, 1)
	assert.Equal(t, photo, engine.images[0], "raw strategy must bypass preprocessing")
	assert.Equal(t, StrategyRaw, result.Strategy)
	assert.Equal(t, "John Doe", result.Record.Name)
}

func TestScanBinarizedTransformsImage(t *testing.T) {
	engine := &fakeEngine{results: []*recognize.Result{
		{Text: "", Confidence: 0},
	}}
	photo := testPhoto(t)

	result, err := New(engine, StrategyBinarized).Scan(context.Background(), photo)

	require.NoError(t, err)
	require.Len(t, engine.images, 1)
	assert.NotEqual(t, photo, engine.images[0], "binarized strategy must hand the engine the processed raster")
	assert.Equal(t, StrategyBinarized, result.Strategy)
}

func TestScanEmptyTextYieldsEmptyRecord(t *testing.T) {
	engine := &fakeEngine{results: []*recognize.Result{
		{Text: "", Confidence: 42},
	}}

	result, err := New(engine, StrategyRaw).Scan(context.Background(), testPhoto(t))

	require.NoError(t, err, "zero recognized characters is not an error")
	assert.True(t, result.Record.IsEmpty())
	assert.Equal(t, 42.0, result.Confidence)
}

func TestScanBestKeepsHigherConfidence(t *testing.T) {
	// Binarized pass runs first, raw second.
	engine := &fakeEngine{results: []*recognize.Result{
		{Text: "garbled", Confidence: 40},
		{Text: "John Doe\nCEO", Confidence: 85},
	}}

	result, err := New(engine, StrategyBest).Scan(context.Background(), testPhoto(t))

	require.NoError(t, err)
	require.Len(t, engine.images, 2)
	assert.Equal(t, StrategyRaw, result.Strategy)
	assert.Equal(t, 85.0, result.Confidence)
	assert.Equal(t, "John Doe", result.Record.Name)
}

func TestScanBestTiePrefersBinarized(t *testing.T) {
	engine := &fakeEngine{results: []*recognize.Result{
		{Text: "binarized pass", Confidence: 70},
		{Text: "raw pass", Confidence: 70},
	}}

	result, err := New(engine, StrategyBest).Scan(context.Background(), testPhoto(t))

	require.NoError(t, err)
	assert.Equal(t, StrategyBinarized, result.Strategy)
}

func TestScanSurfacesEngineErrorWithoutRetry(t *testing.T) {
	engineErr := recognize.NewOCRError("Recognize", recognize.ErrRecognitionFailed, "boom")
	engine := &fakeEngine{errs: []error{engineErr}}

	_, err := New(engine, StrategyRaw).Scan(context.Background(), testPhoto(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, recognize.ErrRecognitionFailed)
	assert.Len(t, engine.images, 1, "the pipeline has no retry policy")
}

func TestScanRejectsUndecodableImage(t *testing.T) {
	engine := &fakeEngine{}

	_, err := New(engine, StrategyBinarized).Scan(context.Background(), []byte("not an image"))

	require.Error(t, err)
	assert.Empty(t, engine.images, "a decode failure must not reach the engine")
}

func TestParseStrategy(t *testing.T) {
	for _, valid := range []string{"binarized", "raw", "best"} {
		s, err := ParseStrategy(valid)
		require.NoError(t, err)
		assert.Equal(t, Strategy(valid), s)
	}

	_, err := ParseStrategy("otsu")
	assert.Error(t, err)
}

func TestScanSurfacesErrorOnAnyBestPass(t *testing.T) {
	engine := &fakeEngine{
		results: []*recognize.Result{{Text: "ok", Confidence: 50}},
		errs:    []error{nil, errors.New("engine crashed")},
	}

	_, err := New(engine, StrategyBest).Scan(context.Background(), testPhoto(t))

	assert.Error(t, err)
}
