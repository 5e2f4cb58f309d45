package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"ptop/internal/config"
	"ptop/internal/model"
	"ptop/internal/sampler"
	"ptop/internal/view"
)

// runOneShot samples once, filters and sorts the same way the TUI does,
// and prints the result without entering the interactive session.
func runOneShot(ctx context.Context, cfg *config.Config, f *flags) error {
	snap, err := sampler.New().Sample(ctx)
	if err != nil {
		return fmt.Errorf("sampling process table: %w", err)
	}
	procs := view.Derive(&snap, f.filter, view.SortCPUDesc, cfg.CPUMatchTolerance)

	if f.json {
		out := model.Snapshot{Taken: snap.Taken, Processes: procs, Summary: snap.Summary}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(renderTable(procs))
	return nil
}

func renderTable(procs []model.ProcessRecord) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle := lipgloss.NewStyle().PaddingRight(1)

	rows := make([][]string, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.PID),
			p.Name,
			p.User,
			fmt.Sprintf("%.1f", p.CPUPercent),
			fmt.Sprintf("%d", p.MemoryRSS),
			truncate(p.Cmdline, 60),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("PID", "Name", "User", "CPU%", "RSS", "Cmdline").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render()
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
