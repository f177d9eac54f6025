package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

// renderItem prints one classification.
func renderItem(cmd *cobra.Command, st *Styles, name string, item domain.EvidenceItem) {
	label := item.Result.Label
	switch {
	case item.Failed():
		label = st.Failed.Render(fmt.Sprintf("could not analyse (%s)", item.ErrorKind()))
	case domain.IsNegativeFinding(item):
		label = st.Hoax.Render(label)
	default:
		label = st.Valid.Render(label)
	}

	header := item.Modality.Description()
	if name != "" {
		header += " " + st.Muted.Render(name)
	}
	cmd.Println(header)
	if item.Failed() {
		cmd.Printf("  %s\n", label)
		cmd.Printf("  %s\n", st.Muted.Render(item.Err.Error()))
	} else {
		cmd.Printf("  %s  %.2f%%\n", label, item.Result.Confidence)
	}

	keys := make([]string, 0, len(item.Attributes))
	for k := range item.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Printf("  %s %s\n", st.Muted.Render(k+":"), item.Attributes[k])
	}
}

// renderReport prints a fused report with one block per item.
func renderReport(cmd *cobra.Command, st *Styles, report *domain.FusionReport, names []string) {
	for i, item := range report.Items {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		renderItem(cmd, st, name, item)
	}
	cmd.Println()

	verdict := report.Verdict.Description()
	switch {
	case report.Inconclusive:
		verdict = st.Failed.Render("Inconclusive: no input could be analysed")
	case report.Verdict == domain.VerdictHoax:
		verdict = st.Hoax.Render(verdict)
	default:
		verdict = st.Valid.Render(verdict)
	}

	summary := fmt.Sprintf("%s\n%s", verdict,
		st.Muted.Render(fmt.Sprintf("%d analysed, %d failed  report %s", report.Analyzed, report.Failed, report.ID)))
	cmd.Println(st.Box.Render(summary))
}

// renderStatuses prints model status lines.
func renderStatuses(cmd *cobra.Command, st *Styles, statuses []domain.ModelStatus) {
	if len(statuses) == 0 {
		cmd.Println("No models registered.")
		return
	}
	for _, s := range statuses {
		state := s.State.String()
		switch s.State {
		case domain.LoadStateReady:
			state = st.Valid.Render(state)
		case domain.LoadStateFailed:
			state = st.Hoax.Render(state)
		}
		line := fmt.Sprintf("%-6s %-8s %s", s.Modality, state, s.Name)
		if s.Device != "" {
			line += st.Muted.Render(" on " + s.Device.String())
		}
		cmd.Println(line)
		if s.LastError != "" {
			cmd.Printf("       %s\n", st.Muted.Render(strings.TrimSpace(s.LastError)))
		}
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printJSONLine(cmd *cobra.Command, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
