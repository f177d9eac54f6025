package cli

import (
	"github.com/spf13/cobra"
)

var modelsJSON bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect and load classification models",
}

var modelsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the load state of every model",
	Args:  cobra.NoArgs,
	RunE:  runModelsStatus,
}

var modelsLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load every model now, downloading weights if configured",
	Long: `Load every model eagerly. Models load lazily on first use otherwise.

A model that fails to load stays retryable; the failure is shown in the
status table.`,
	Args: cobra.NoArgs,
	RunE: runModelsLoad,
}

func init() {
	modelsCmd.PersistentFlags().BoolVar(&modelsJSON, "json", false, "print status as JSON")
	modelsCmd.AddCommand(modelsStatusCmd)
	modelsCmd.AddCommand(modelsLoadCmd)
	rootCmd.AddCommand(modelsCmd)
}

func runModelsStatus(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	return printStatuses(cmd, svc)
}

func runModelsLoad(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	loadErr := svc.Registry.Preload(cmd.Context())
	if err := printStatuses(cmd, svc); err != nil {
		return err
	}
	return loadErr
}

func printStatuses(cmd *cobra.Command, svc *Services) error {
	statuses := svc.Registry.Statuses()
	if modelsJSON {
		return printJSON(cmd, statuses)
	}
	renderStatuses(cmd, stylesFor(cmd.OutOrStdout()), statuses)
	return nil
}
