// Package cli wires flags, config, and logging around the interactive
// session, plus the non-interactive one-shot modes.
package cli

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"ptop/internal/config"
	"ptop/internal/ui"
)

// version is set at build time via ldflags.
var version = "dev"

type flags struct {
	interval time.Duration
	filter   string
	list     bool
	json     bool
}

func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			return 130
		}
		log.Error("ptop failed", "err", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:     "ptop",
		Short:   "Interactive process table dashboard",
		Long:    "ptop — a live, searchable process table with kill support.\n\nConfig: " + config.Path(),
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				log.Warn("config load failed, using defaults", "err", err)
			}
			if f.interval > 0 {
				cfg.RefreshInterval = f.interval
			}

			if f.list || f.json {
				return runOneShot(cmd.Context(), cfg, f)
			}
			return ui.Run(cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().DurationVarP(&f.interval, "interval", "i", 0, "refresh interval (overrides config)")
	cmd.Flags().StringVarP(&f.filter, "filter", "f", "", "search term for one-shot modes")
	cmd.Flags().BoolVarP(&f.list, "list", "l", false, "print one snapshot as a table and exit")
	cmd.Flags().BoolVar(&f.json, "json", false, "print one snapshot as JSON and exit")

	return cmd
}
