package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardscan/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "cardscan",
	Short: "cardscan - turn photographed business cards into structured contact records",
	Long: `cardscan reads a photographed business card and produces clean, typed
contact fields (name, title, company, phone, fax, email, website, social
handle, address), tolerant of mixed Latin/Chinese text and noisy input.

The pipeline binarizes the photo for legibility, runs OCR (local Tesseract
or Google Cloud Vision) and parses the recognized text with layout
heuristics. Extraction is best-effort: missing fields can always be filled
in manually.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to cardscan!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
