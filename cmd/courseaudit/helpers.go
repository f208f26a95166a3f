package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"courseaudit/internal/index"
	"courseaudit/internal/scan"
)

// buildIndex assembles the index snapshot for a command, reusing the
// cached snapshot unless refresh forces a rescan.
func buildIndex(cmd *cobra.Command, ctx *commandContext, refresh bool) (*index.Snapshot, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if len(cfg.Scanning.Roots) == 0 {
		return nil, fmt.Errorf("no storage roots configured; set scanning.roots or pass --root")
	}
	logger, err := ctx.logger()
	if err != nil {
		return nil, err
	}
	store, err := ctx.openStore()
	if err != nil {
		return nil, err
	}

	roots := make([]scan.Root, 0, len(cfg.Scanning.Roots))
	for _, path := range cfg.Scanning.Roots {
		roots = append(roots, scan.Root{Path: path, Extensions: cfg.Scanning.Extensions})
	}

	maxAge := time.Duration(cfg.Scanning.CacheMaxAgeHours * float64(time.Hour))
	if refresh {
		maxAge = 0
	}

	bar := progressbar.NewOptions(len(roots),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("Scanning roots"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	builder := index.NewBuilder(store, logger)
	snapshot, err := builder.Build(cmd.Context(), index.Options{
		Roots:   roots,
		MaxAge:  maxAge,
		Workers: cfg.Scanning.Workers,
		OnRootDone: func(root string, entries int, err error) {
			_ = bar.Add(1)
		},
	})
	_ = bar.Finish()
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func humanCount(n int) string {
	return humanize.Comma(int64(n))
}
