package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cardscan/internal/logger"
	"cardscan/internal/parse"
	"cardscan/pkg/models"
)

var parseCmd = &cobra.Command{
	Use:   "parse [text-file]",
	Short: "Parse raw OCR text into contact fields",
	Long: `Run only the field extractor: parse newline-delimited OCR text into
structured contact fields, without touching an image or an OCR engine.
Reads from the given file, or from stdin when no file is supplied.

Manual corrections can be merged over the extracted fields with --set and
--clear; manual values win field by field.`,
	Example: `  # Parse OCR output from a file
  cardscan parse ocr-output.txt

  # Parse from stdin
  pbpaste | cardscan parse

  # Override the extracted title and drop a bogus fax number
  cardscan parse ocr-output.txt --set title="General Manager" --clear fax`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().Bool("json", false, "Output the record as JSON")
	parseCmd.Flags().StringArray("set", nil, "Manual field override, field=value (repeatable)")
	parseCmd.Flags().StringArray("clear", nil, "Field to clear even if extracted (repeatable)")
}

func runParse(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("parse")

	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	setFlags, _ := cmd.Flags().GetStringArray("set")
	clearFlags, _ := cmd.Flags().GetStringArray("clear")

	text, err := readText(args)
	if err != nil {
		return err
	}

	record := parse.CardFields(text)

	patch, err := buildPatch(setFlags, clearFlags)
	if err != nil {
		return err
	}
	record = models.Merge(record, patch)

	log.Info().
		Int("text_length", len(text)).
		Bool("empty_record", record.IsEmpty()).
		Msg("Parsed OCR text")

	card := models.NewBusinessCard(record, text, 0)
	return outputCard(card, outputPath, jsonOutput, log)
}

func readText(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return string(data), nil
}

// buildPatch turns --set field=value and --clear field flags into a CardPatch.
func buildPatch(setFlags, clearFlags []string) (models.CardPatch, error) {
	var patch models.CardPatch

	fields := map[string]**string{}
	collect := func(p *models.CardPatch) {
		fields["name"] = &p.Name
		fields["title"] = &p.Title
		fields["company"] = &p.Company
		fields["phone"] = &p.Phone
		fields["fax"] = &p.Fax
		fields["email"] = &p.Email
		fields["website"] = &p.Website
		fields["social_media"] = &p.SocialMedia
		fields["address"] = &p.Address
	}
	collect(&patch)

	for _, kv := range setFlags {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return models.CardPatch{}, fmt.Errorf("invalid --set %q (want field=value)", kv)
		}
		slot, known := fields[strings.ToLower(strings.TrimSpace(key))]
		if !known {
			return models.CardPatch{}, fmt.Errorf("unknown field %q in --set", key)
		}
		v := value
		*slot = &v
	}
	for _, key := range clearFlags {
		slot, known := fields[strings.ToLower(strings.TrimSpace(key))]
		if !known {
			return models.CardPatch{}, fmt.Errorf("unknown field %q in --clear", key)
		}
		empty := ""
		*slot = &empty
	}
	return patch, nil
}
