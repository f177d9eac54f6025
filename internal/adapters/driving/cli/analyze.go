package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

var (
	analyzeTexts []string
	analyzeJSON  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyse several inputs and fuse them into one verdict",
	Long: `Classify every headline and media file of a submission and fuse the
results. The verdict is hoax if any input is a negative finding.

Media modality is taken from the file extension. Inputs that fail to
classify are listed but never count as evidence.`,
	Example: `  hoaxlens analyze --text "Shark spotted on flooded highway" photo.jpg
  hoaxlens analyze --json clip.mp3 frame.png`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringArrayVarP(&analyzeTexts, "text", "t", nil, "headline to analyse (repeatable)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	sub, names, err := buildSubmission(analyzeTexts, args)
	if err != nil {
		return err
	}

	svc, err := loadServices()
	if err != nil {
		return err
	}

	report, err := svc.Analysis.Analyze(cmd.Context(), sub)
	if err != nil {
		return err
	}

	if analyzeJSON {
		return printJSON(cmd, report)
	}
	renderReport(cmd, stylesFor(cmd.OutOrStdout()), report, names)
	return nil
}

// buildSubmission orders headlines first, then files as given.
func buildSubmission(texts, files []string) (domain.Submission, []string, error) {
	var sub domain.Submission
	var names []string
	for _, t := range texts {
		sub.Add(domain.ModalityText, domain.TextInput(t))
		names = append(names, "")
	}
	for _, f := range files {
		m, ok := domain.ModalityOfPath(f)
		if !ok {
			return domain.Submission{}, nil, fmt.Errorf("%w: cannot tell the modality of %s", domain.ErrUnsupportedType, f)
		}
		if m == domain.ModalityText {
			return domain.Submission{}, nil, fmt.Errorf("%w: pass headlines with --text, not %s", domain.ErrUnsupportedType, f)
		}
		sub.Add(m, domain.FileInput(f))
		names = append(names, f)
	}
	if sub.IsEmpty() {
		return domain.Submission{}, nil, fmt.Errorf("%w: nothing to analyse", domain.ErrNoEvidence)
	}
	return sub, names, nil
}
