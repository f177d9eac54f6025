package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure model locations, the inference runtime and hub access.

Every key can also be overridden with an environment variable, e.g.
HOAXLENS_RUNTIME_DEVICE=cpu overrides runtime.device.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update one setting",
	Long: `Update one setting. Run 'hoaxlens settings keys' for the list of keys.

Examples:
  hoaxlens settings set runtime.device cpu
  hoaxlens settings set image.repo my-org/mobilenet-hoax
  hoaxlens settings set hub.offline true`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	settings, err := svc.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Runtime]")
	cmd.Printf("  Assets: %s\n", settings.AssetsDir)
	cmd.Printf("  Library: %s\n", orDefault(settings.Runtime.LibraryPath, "(platform default)"))
	cmd.Printf("  Device: %s\n", settings.Runtime.Device)
	cmd.Println()

	cmd.Println("[Hub]")
	cmd.Printf("  Base URL: %s\n", settings.Hub.BaseURL)
	cmd.Printf("  Offline: %s\n", yesNo(settings.Hub.Offline))
	cmd.Println()

	printModel(cmd, "Text", domain.ModalityText, settings.Text.ModelSettings)
	cmd.Printf("  Tokenizer: %s\n", settings.Text.Tokenizer)
	cmd.Println()
	printModel(cmd, "Image", domain.ModalityImage, settings.Image)
	cmd.Println()
	printModel(cmd, "Audio", domain.ModalityAudio, settings.Audio)
	cmd.Printf("  FFmpeg fallback: %s\n", yesNo(settings.AudioDecoding.FFmpeg))
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Extensions: %s\n", orDefault(strings.Join(settings.Watch.Extensions, ", "), "(all media)"))
	cmd.Printf("  Debounce: %dms\n", settings.Watch.DebounceMillis)
	cmd.Println()

	if err := svc.Settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'hoaxlens settings keys' and 'hoaxlens settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printModel(cmd *cobra.Command, title string, m domain.Modality, s domain.ModelSettings) {
	cmd.Printf("[%s]\n", title)
	cmd.Printf("  Model: %s\n", s.Name)
	cmd.Printf("  File: %s/%s\n", m.AssetDir(), s.File)
	if s.Repo != "" {
		remote := s.RemoteFile
		if remote == "" {
			remote = s.File
		}
		cmd.Printf("  Hub: %s (%s)\n", s.Repo, remote)
	}
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	v, err := svc.Settings.Value(args[0])
	if err != nil {
		return err
	}
	cmd.Println(v)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	if err := svc.Settings.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("✓ %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	for _, k := range svc.Settings.Keys() {
		cmd.Println(k)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
