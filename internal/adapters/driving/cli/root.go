// Package cli provides the hoaxlens command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
	"github.com/custodia-labs/hoaxlens/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options are the root flags that shape how services are built.
type Options struct {
	// ConfigDir overrides the configuration directory (default ~/.hoaxlens).
	ConfigDir string

	// Ephemeral keeps settings in memory only.
	Ephemeral bool
}

// Services are the driving ports the commands use.
type Services struct {
	Settings driving.SettingsService
	Analysis driving.AnalysisService
	Registry driving.ClassifierRegistry

	// Close releases models and the inference runtime.
	Close func() error
}

// Factory builds services from root options.
type Factory func(opts Options) (*Services, error)

var (
	verbose  bool
	options  Options
	factory  Factory
	services *Services
)

var rootCmd = &cobra.Command{
	Use:   "hoaxlens",
	Short: "Detect hoaxes and manipulated media",
	Long: `hoaxlens classifies headlines, images and audio clips as authentic or
manipulated, and fuses several verdicts into one report.

Models run locally with ONNX Runtime. Weights live under
<assets>/<modality>_models/ and can be fetched from a model hub.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&options.ConfigDir, "config", "", "configuration directory (default ~/.hoaxlens)")
	rootCmd.PersistentFlags().BoolVar(&options.Ephemeral, "ephemeral", false, "keep settings in memory only")
}

// Execute runs the root command with services built by f.
func Execute(ctx context.Context, f Factory) error {
	factory = f
	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeServices(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// loadServices builds services on first use.
func loadServices() (*Services, error) {
	if services != nil {
		return services, nil
	}
	if factory == nil {
		return nil, errors.New("services not configured")
	}
	s, err := factory(options)
	if err != nil {
		return nil, fmt.Errorf("initialising: %w", err)
	}
	services = s
	return services, nil
}

func closeServices() error {
	if services == nil || services.Close == nil {
		return nil
	}
	s := services
	services = nil
	return s.Close()
}
