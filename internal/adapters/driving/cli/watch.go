package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hoaxlens/internal/adapters/driving/watch"
	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

var (
	watchDebounce time.Duration
	watchRate     float64
	watchJSON     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Classify files as they are written to a directory",
	Long: `Watch a directory and classify every image, audio clip or .txt
headline file written to it. Runs until interrupted.

The watch.extensions setting limits which file types are classified.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before a file is classified (default from watch.debounce_ms)")
	watchCmd.Flags().Float64Var(&watchRate, "rate", watch.DefaultRatePerSecond, "maximum classifications per second")
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "print one JSON object per file")
	rootCmd.AddCommand(watchCmd)
}

// watchEvent is the JSON line printed per file.
type watchEvent struct {
	Path string              `json:"path"`
	At   time.Time           `json:"at"`
	Item domain.EvidenceItem `json:"item"`
}

func runWatch(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	cfg, err := watchConfig(cmd, svc, args[0])
	if err != nil {
		return err
	}
	w := watch.New(svc.Analysis, cfg)
	defer w.Close()

	events, err := w.Watch(cmd.Context())
	if err != nil {
		return err
	}

	cmd.PrintErrf("Watching %s (Ctrl+C to stop)\n", args[0])
	st := stylesFor(cmd.OutOrStdout())
	for ev := range events {
		if watchJSON {
			if err := printJSONLine(cmd, watchEvent{Path: ev.Path, At: ev.At, Item: ev.Item}); err != nil {
				return err
			}
			continue
		}
		renderItem(cmd, st, ev.Path, ev.Item)
	}
	return nil
}

// watchConfig merges flags over the watch settings.
func watchConfig(cmd *cobra.Command, svc *Services, root string) (watch.Config, error) {
	cfg := watch.Config{
		Root:          root,
		Debounce:      watchDebounce,
		RatePerSecond: watchRate,
	}

	settings, err := svc.Settings.Get()
	if err != nil {
		return cfg, fmt.Errorf("failed to get settings: %w", err)
	}
	cfg.Extensions = settings.Watch.ExtensionMap()
	if !cmd.Flags().Changed("debounce") && settings.Watch.DebounceMillis > 0 {
		cfg.Debounce = time.Duration(settings.Watch.DebounceMillis) * time.Millisecond
	}
	return cfg, nil
}
