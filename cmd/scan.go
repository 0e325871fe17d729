package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cardscan/internal/binarize"
	"cardscan/internal/config"
	"cardscan/internal/logger"
	"cardscan/internal/recognize"
	"cardscan/internal/scanner"
	"cardscan/pkg/models"
)

// maxImageSizeBytes bounds the input photo size; card photos beyond this are
// almost certainly misuse.
const maxImageSizeBytes = 20 * 1024 * 1024

var scanCmd = &cobra.Command{
	Use:   "scan [image-file]",
	Short: "Scan a business card photo into a structured contact record",
	Long: `Run the full pipeline over a card photo: binarize the image for
legibility, recognize the text (Tesseract by default, Google Cloud Vision
with --engine vision), and parse the result into contact fields.

Extraction is heuristic and best-effort. A failed recognition means the card
could not be read — try again, possibly with --strategy raw; it never blocks
entering the fields manually.

Environment variables (flags take precedence):
  OCR_ENGINE     - "tesseract" (default) or "vision"
  OCR_LANGUAGES  - trained data / language hints (default "chi_tra,eng")
  SCAN_STRATEGY  - "binarized" (default), "raw" or "best"

The vision engine additionally requires GOOGLE_APPLICATION_CREDENTIALS or
GOOGLE_CREDENTIALS.`,
	Example: `  # Scan a card photo and print the extracted fields
  cardscan scan card.jpg

  # Full record as JSON, written to a file
  cardscan scan card.jpg --json -o record.json

  # Skip binarization (helps on already-clean photos)
  cardscan scan card.jpg --strategy raw

  # Run both passes and keep the higher-confidence result
  cardscan scan card.jpg --strategy best

  # Use the Google Vision engine
  cardscan scan card.jpg --engine vision`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	scanCmd.Flags().Bool("json", false, "Output the full record as JSON")
	scanCmd.Flags().String("engine", "", "OCR engine: tesseract or vision (default from OCR_ENGINE)")
	scanCmd.Flags().String("strategy", "", "Preprocessing strategy: binarized, raw or best (default from SCAN_STRATEGY)")
	scanCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("scan")

	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	engineName, _ := cmd.Flags().GetString("engine")
	strategyName, _ := cmd.Flags().GetString("strategy")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	imagePath := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if engineName == "" {
		engineName = cfg.OCREngine
	}
	if strategyName == "" {
		strategyName = cfg.ScanStrategy
	}

	strategy, err := scanner.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", imagePath).
		Str("engine", engineName).
		Str("strategy", string(strategy)).
		Int("timeout", timeoutSecs).
		Msg("Starting card scan")

	imageData, err := readImageFile(imagePath, log)
	if err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	engine, cleanup, err := createEngine(ctx, cfg, engineName, log)
	if err != nil {
		return err
	}
	defer cleanup()

	startTime := time.Now()
	result, err := scanner.New(engine, strategy).Scan(ctx, imageData)
	if err != nil {
		return handleScanError(err, log)
	}

	log.Info().
		Float64("confidence", result.Confidence).
		Str("kept_pass", string(result.Strategy)).
		Dur("duration", time.Since(startTime)).
		Bool("empty_record", result.Record.IsEmpty()).
		Msg("Card scan completed successfully")

	card := models.NewBusinessCard(result.Record, result.RawText, result.Confidence)
	return outputCard(card, outputPath, jsonOutput, log)
}

// readImageFile validates the input path and loads the photo bytes.
func readImageFile(imagePath string, log zerolog.Logger) ([]byte, error) {
	fileInfo, err := os.Stat(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().Str("file", imagePath).Msg("Image file not found")
			return nil, fmt.Errorf("image file not found: %s", imagePath)
		}
		return nil, fmt.Errorf("error accessing image file: %w", err)
	}
	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("path is not a regular file: %s", imagePath)
	}
	if fileInfo.Size() == 0 {
		return nil, fmt.Errorf("image file is empty: %s", imagePath)
	}
	if fileInfo.Size() > maxImageSizeBytes {
		log.Error().
			Str("file", imagePath).
			Int64("size", fileInfo.Size()).
			Msg("Image file exceeds maximum size limit")
		return nil, fmt.Errorf("image file too large (%d bytes). Maximum size is %d bytes", fileInfo.Size(), maxImageSizeBytes)
	}

	return os.ReadFile(imagePath)
}

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling scan")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}

// createEngine builds the configured recognition engine. The returned cleanup
// releases engine resources.
func createEngine(ctx context.Context, cfg *config.Config, engineName string, log zerolog.Logger) (recognize.Engine, func(), error) {
	engineCfg := recognize.Config{
		Languages:   cfg.OCRLanguages,
		PageSegMode: cfg.PageSegMode,
		EngineMode:  cfg.EngineMode,
	}

	switch engineName {
	case "tesseract":
		return recognize.NewTesseractEngine(engineCfg), func() {}, nil
	case "vision":
		engine, err := recognize.NewVisionEngine(ctx)
		if err != nil {
			if errors.Is(err, recognize.ErrMissingCredentials) {
				log.Error().Err(err).Msg("Google Cloud credentials not configured")
				return nil, nil, fmt.Errorf("Google Cloud credentials not configured. Please set one of:\n\n"+
					"1. GOOGLE_APPLICATION_CREDENTIALS with path to service account JSON\n"+
					"2. GOOGLE_CREDENTIALS with inline JSON\n\n"+
					"Original error: %w", err)
			}
			return nil, nil, fmt.Errorf("failed to create vision engine: %w", err)
		}
		return engine, func() {
			if closeErr := engine.Close(); closeErr != nil {
				log.Warn().Err(closeErr).Msg("Failed to close vision engine")
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown OCR engine %q (want tesseract or vision)", engineName)
	}
}

// handleScanError provides user-friendly error messages for scan failures
func handleScanError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Card scan failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("scan timed out. Try increasing --timeout or a smaller photo")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("scan was canceled")
	case errors.Is(err, binarize.ErrImageDecode):
		return fmt.Errorf("could not decode the photo. Supported formats are JPEG, PNG and WebP")
	case errors.Is(err, recognize.ErrInitFailed):
		return fmt.Errorf("could not initialize the OCR engine. Check that tesseract and the chi_tra/eng trained data are installed: %w", err)
	case errors.Is(err, recognize.ErrRecognitionFailed):
		return fmt.Errorf("could not read the card, try again (a retry with --strategy raw sometimes helps): %w", err)
	default:
		return fmt.Errorf("card scan failed: %w", err)
	}
}

// outputCard formats and writes the scanned record.
func outputCard(card models.BusinessCard, outputPath string, jsonOutput bool, log zerolog.Logger) error {
	var outputData []byte
	var err error

	if jsonOutput {
		outputData, err = json.MarshalIndent(card, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
	} else {
		var b strings.Builder
		writeField := func(label, value string) {
			if value != "" {
				fmt.Fprintf(&b, "%-13s %s\n", label+":", value)
			}
		}
		writeField("Name", card.Data.Name)
		writeField("Title", card.Data.Title)
		writeField("Company", card.Data.Company)
		writeField("Phone", card.Data.Phone)
		writeField("Fax", card.Data.Fax)
		writeField("Email", card.Data.Email)
		writeField("Website", card.Data.Website)
		writeField("Social media", card.Data.SocialMedia)
		writeField("Address", card.Data.Address)
		if card.Data.IsEmpty() {
			b.WriteString("No fields extracted. Enter the contact details manually.\n")
		}
		fmt.Fprintf(&b, "%-13s %.1f%%\n", "Confidence:", card.Confidence)
		outputData = []byte(b.String())
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(outputData)).
			Msg("Scan results written to file")
		return nil
	}

	if _, err := os.Stdout.Write(outputData); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if jsonOutput {
		fmt.Println()
	}
	return nil
}
