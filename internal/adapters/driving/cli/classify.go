package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a single headline, image or audio clip",
	Long: `Classify one input with the model for its modality.

A failed classification is reported, not hidden: the label reads
"could not analyse" with the failure kind.`,
}

var classifyTextCmd = &cobra.Command{
	Use:   "text <headline>",
	Short: "Classify a news headline",
	Example: `  hoaxlens classify text "Scientists confirm the moon landing was staged"
  echo "Breaking: ..." | hoaxlens classify text -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassifyText,
}

var classifyImageCmd = &cobra.Command{
	Use:     "image <file|->",
	Short:   "Classify an image",
	Example: `  hoaxlens classify image photo.jpg`,
	Args:    cobra.ExactArgs(1),
	RunE:    runClassifyMedia(domain.ModalityImage),
}

var classifyAudioCmd = &cobra.Command{
	Use:     "audio <file|->",
	Short:   "Classify an audio clip",
	Example: `  hoaxlens classify audio voice.wav`,
	Args:    cobra.ExactArgs(1),
	RunE:    runClassifyMedia(domain.ModalityAudio),
}

func init() {
	classifyCmd.PersistentFlags().BoolVar(&classifyJSON, "json", false, "print the result as JSON")
	classifyCmd.AddCommand(classifyTextCmd)
	classifyCmd.AddCommand(classifyImageCmd)
	classifyCmd.AddCommand(classifyAudioCmd)
	rootCmd.AddCommand(classifyCmd)
}

func runClassifyText(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if text == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: headline is empty", domain.ErrInvalidInput)
	}
	return classify(cmd, domain.ModalityText, domain.TextInput(text), "")
}

func runClassifyMedia(m domain.Modality) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		in, err := mediaInput(cmd, args[0])
		if err != nil {
			return err
		}
		return classify(cmd, m, in, args[0])
	}
}

// mediaInput references a file, or reads stdin for "-".
func mediaInput(cmd *cobra.Command, arg string) (domain.RawInput, error) {
	if arg != "-" {
		return domain.FileInput(arg), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return domain.RawInput{}, fmt.Errorf("reading stdin: %w", err)
	}
	return domain.BytesInput(data), nil
}

func classify(cmd *cobra.Command, m domain.Modality, in domain.RawInput, name string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	item, err := svc.Analysis.Classify(cmd.Context(), m, in)
	if err != nil {
		return err
	}

	if classifyJSON {
		return printJSON(cmd, item)
	}
	renderItem(cmd, stylesFor(cmd.OutOrStdout()), name, item)
	return nil
}
