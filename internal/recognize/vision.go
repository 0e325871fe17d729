package recognize

import (
	"context"
	"fmt"
	"os"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// visionLanguageHints are the BCP-47 hints matching the Latin +
// Traditional-Chinese card mix.
var visionLanguageHints = []string{"zh-Hant", "en"}

// VisionEngine implements Engine using the Google Cloud Vision API's
// document text detection. It is an alternative to the local Tesseract
// engine for deployments where installing trained data is impractical.
type VisionEngine struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionEngine creates a Vision-backed engine with credentials from the
// environment. It expects either GOOGLE_APPLICATION_CREDENTIALS (path) or
// GOOGLE_CREDENTIALS (inline JSON), falling back to the default chain.
func NewVisionEngine(ctx context.Context) (*VisionEngine, error) {
	const op = "NewVisionEngine"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, ErrInitFailed, fmt.Sprintf("create client with GOOGLE_CREDENTIALS: %v", err))
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, ErrInitFailed, fmt.Sprintf("create client with GOOGLE_APPLICATION_CREDENTIALS: %v", err))
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &VisionEngine{client: client}, nil
}

// Name identifies the engine.
func (e *VisionEngine) Name() string { return "google-vision" }

// Recognize runs document text detection over the encoded image.
func (e *VisionEngine) Recognize(ctx context.Context, image []byte) (*Result, error) {
	const op = "Recognize"

	if len(image) == 0 {
		return nil, NewOCRError(op, ErrEmptyImage, "")
	}

	startTime := time.Now()

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				ImageContext: &visionpb.ImageContext{
					LanguageHints: visionLanguageHints,
				},
			},
		},
	}

	resp, err := e.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, WrapOCRError(op, ErrRecognitionFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return nil, WrapOCRError(op, ErrRecognitionFailed, "no response from Vision API")
	}

	annotation := resp.Responses[0]
	if annotation.Error != nil {
		return nil, WrapOCRError(op, ErrRecognitionFailed, fmt.Sprintf("Vision API error: %s", annotation.Error.Message))
	}

	result := &Result{}
	if annotation.FullTextAnnotation != nil {
		result.Text = annotation.FullTextAnnotation.Text
		result.Confidence = annotationConfidence(annotation.FullTextAnnotation)
	}
	result.ProcessedAt = time.Now()
	result.ProcessingDuration = result.ProcessedAt.Sub(startTime)
	return result, nil
}

// annotationConfidence averages block confidences across all pages, scaled
// to [0, 100] to match the Result contract.
func annotationConfidence(annotation *visionpb.TextAnnotation) float64 {
	var sum float64
	var count int
	for _, page := range annotation.Pages {
		for _, block := range page.Blocks {
			if block.Confidence > 0 {
				sum += float64(block.Confidence)
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count) * 100
}

// Close closes the underlying Vision client.
func (e *VisionEngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
