package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"courseaudit/internal/indexcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the index snapshot cache",
	}

	cacheCmd.AddCommand(newCacheStatusCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cached snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			info, err := store.Status(cmd.Context())
			if err != nil {
				if errors.Is(err, indexcache.ErrNoSnapshot) {
					fmt.Fprintf(out, "No snapshot cached at %s\n", store.Path())
					return nil
				}
				return err
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Value"},
				[][]string{
					{"Database", store.Path()},
					{"Fingerprint", info.Fingerprint},
					{"Built", fmt.Sprintf("%s (%s)", info.BuiltAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(info.BuiltAt))},
					{"Entries", humanCount(info.EntryCount)},
					{"Schema", strconv.Itoa(info.SchemaVersion)},
				}))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the cached snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared snapshot cache at %s\n", store.Path())
			return nil
		},
	}
}
