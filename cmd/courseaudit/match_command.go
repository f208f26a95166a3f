package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"courseaudit/internal/match"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var policy string
	var threshold int
	var limit int
	var refresh bool

	cmd := &cobra.Command{
		Use:   "match <name>",
		Short: "Match one name against the indexed catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Scanning.FuzzyThreshold
			}

			snapshot, err := buildIndex(cmd, ctx, refresh)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			query := match.NewQuery(args[0], threshold)

			switch policy {
			case "indexed":
				result, found := match.LookupBest(query, snapshot)
				if !found {
					fmt.Fprintf(out, "No match for %q at threshold %d\n", args[0], threshold)
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Tier", "Score", "Path"},
					[][]string{{string(result.Tier), strconv.Itoa(result.Score), result.Path}},
					2))
				return nil
			case "paths":
				results := match.MatchPaths(query, snapshot.Entries())
				if len(results) == 0 {
					fmt.Fprintf(out, "No match for %q at threshold %d\n", args[0], threshold)
					return nil
				}
				if limit > 0 && len(results) > limit {
					results = results[:limit]
				}
				rows := make([][]string, 0, len(results))
				for _, result := range results {
					rows = append(rows, []string{strconv.Itoa(result.Score), result.Path})
				}
				fmt.Fprintln(out, renderTable([]string{"Score", "Path"}, rows, 1))
				return nil
			default:
				return fmt.Errorf("unknown policy %q (use \"indexed\" or \"paths\")", policy)
			}
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "indexed", "Matching policy: indexed (name lookup) or paths (component scan)")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "Minimum score (0-100); defaults to scanning.fuzzy_threshold")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum rows for the paths policy")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Rescan even when a fresh cached snapshot exists")
	return cmd
}
