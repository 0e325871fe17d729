package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cardscan/internal/accuracy"
	"cardscan/internal/logger"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score extraction output against ground truth (CER)",
	Long: `Compute the character error rate of extracted text against a
known-correct ground truth string:

  CER = editDistance(expected, actual) / len(expected) * 100

Edit distance is counted per character (rune), so mixed Latin/Chinese text
is scored correctly. This is a QA utility for regression-testing the
binarizer/extractor combination; it plays no part in scanning.`,
	Example: `  # Compare two literal strings
  cardscan evaluate --expected "0928-568-881" --actual "0928-568-881"

  # Compare file contents
  cardscan evaluate --expected-file truth.txt --actual-file ocr-output.txt`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().String("expected", "", "Ground-truth string")
	evaluateCmd.Flags().String("actual", "", "Extracted string to score")
	evaluateCmd.Flags().String("expected-file", "", "File containing the ground truth")
	evaluateCmd.Flags().String("actual-file", "", "File containing the extracted text")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("evaluate")

	expected, err := stringOrFile(cmd, "expected", "expected-file")
	if err != nil {
		return err
	}
	actual, err := stringOrFile(cmd, "actual", "actual-file")
	if err != nil {
		return err
	}

	distance := accuracy.Levenshtein(expected, actual)
	cer := accuracy.CER(expected, actual)

	log.Info().
		Int("edit_distance", distance).
		Float64("cer", cer).
		Msg("Evaluation completed")

	fmt.Printf("Expected length: %d characters\n", len([]rune(expected)))
	fmt.Printf("Edit distance:   %d\n", distance)
	fmt.Printf("CER:             %.2f%%\n", cer)
	return nil
}

// stringOrFile resolves a value from either a literal flag or a file flag;
// exactly one of the two must be set.
func stringOrFile(cmd *cobra.Command, literalFlag, fileFlag string) (string, error) {
	literal, _ := cmd.Flags().GetString(literalFlag)
	filePath, _ := cmd.Flags().GetString(fileFlag)

	switch {
	case literal != "" && filePath != "":
		return "", fmt.Errorf("only one of --%s and --%s may be set", literalFlag, fileFlag)
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read --%s: %w", fileFlag, err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	case literal != "" || cmd.Flags().Changed(literalFlag):
		return literal, nil
	default:
		return "", fmt.Errorf("one of --%s or --%s is required", literalFlag, fileFlag)
	}
}
