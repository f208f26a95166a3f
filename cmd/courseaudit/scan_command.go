package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var refresh bool
	var roots []string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Build or refresh the storage index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(roots) > 0 {
				cfg.Scanning.Roots = roots
			}

			started := time.Now()
			snapshot, err := buildIndex(cmd, ctx, refresh)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Indexed %s entries (%s lookup keys) across %d root(s) in %s\n",
				humanCount(snapshot.Len()),
				humanCount(snapshot.KeyCount()),
				len(cfg.Scanning.Roots),
				time.Since(started).Round(time.Millisecond))
			fmt.Fprintf(out, "Fingerprint: %s\n", snapshot.Fingerprint())
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Rescan even when a fresh cached snapshot exists")
	cmd.Flags().StringArrayVar(&roots, "root", nil, "Storage root to index (repeatable; overrides config)")
	return cmd
}
