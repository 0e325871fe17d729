package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cardscan/internal/binarize"
	"cardscan/internal/logger"
)

var binarizeCmd = &cobra.Command{
	Use:   "binarize [image-file]",
	Short: "Binarize a card photo without running OCR",
	Long: `Run only the preprocessing stage: upscale the photo 2x, compute the
Otsu threshold over its luminance histogram, and write a pure black/white
PNG. Useful for inspecting what the OCR engine would actually see.`,
	Example: `  # Write card.bw.png next to the input
  cardscan binarize card.jpg

  # Choose the output path
  cardscan binarize card.jpg -o preprocessed.png`,
	Args: cobra.ExactArgs(1),
	RunE: runBinarize,
}

func init() {
	rootCmd.AddCommand(binarizeCmd)

	binarizeCmd.Flags().StringP("output", "o", "", "Output PNG path (default: <input>.bw.png)")
}

func runBinarize(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("binarize")

	outputPath, _ := cmd.Flags().GetString("output")
	imagePath := args[0]

	imageData, err := readImageFile(imagePath, log)
	if err != nil {
		return err
	}

	processed, err := binarize.BinarizeBytes(imageData)
	if err != nil {
		if errors.Is(err, binarize.ErrImageDecode) {
			return fmt.Errorf("could not decode the photo. Supported formats are JPEG, PNG and WebP")
		}
		return fmt.Errorf("binarization failed: %w", err)
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".bw.png"
	}
	if err := os.WriteFile(outputPath, processed, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Info().
		Str("input", imagePath).
		Str("output", outputPath).
		Int("bytes", len(processed)).
		Msg("Binarized image written")
	fmt.Printf("Binarized image written to %s\n", outputPath)
	return nil
}
