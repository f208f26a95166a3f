package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"courseaudit/internal/audit"
	"courseaudit/internal/drivelink"
	"courseaudit/internal/report"
	"courseaudit/internal/sheet"
)

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var sheetDir string
	var output string
	var checkLinks bool
	var refresh bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit course asset availability and write the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			if sheetDir == "" {
				sheetDir = cfg.Paths.SheetDir
			}
			if output == "" {
				output = cfg.Paths.Output
			}

			out := cmd.OutOrStdout()

			reader := sheet.NewReader(sheet.Columns{
				Course:   cfg.Columns.Course,
				Semester: cfg.Columns.Semester,
				Term:     cfg.Columns.Term,
				Status:   cfg.Columns.Status,
			}, audit.AssetLabels(), logger)
			courses, err := reader.ReadDir(sheetDir)
			if err != nil {
				return err
			}
			if len(courses) == 0 {
				return fmt.Errorf("no course rows found in %s", sheetDir)
			}
			links := 0
			for _, course := range courses {
				links += len(course.AssetLinks)
			}
			fmt.Fprintf(out, "Loaded %s unique course(s), %s Drive link(s)\n",
				humanCount(len(courses)), humanCount(links))

			snapshot, err := buildIndex(cmd, ctx, refresh)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Index ready: %s entries\n", humanCount(snapshot.Len()))

			checker := drivelink.New(
				checkLinks || cfg.Drive.Enabled,
				cfg.Drive.APIToken,
				time.Duration(cfg.Drive.RequestTimeout)*time.Second,
				logger)

			runner := audit.NewRunner(cfg.Scanning.FuzzyThreshold, checker, logger)
			results, summary, err := runner.Run(cmd.Context(), courses, snapshot)
			if err != nil {
				return err
			}

			if err := report.Write(results, output, logger); err != nil {
				return err
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Coverage", "Courses"},
				[][]string{
					{"full", strconv.Itoa(summary.Full)},
					{"partial", strconv.Itoa(summary.Partial)},
					{"none", strconv.Itoa(summary.None)},
				}, 2))
			fmt.Fprintf(out, "Local assets found: %s   Live Drive links: %s\n",
				humanCount(summary.LocalAssets), humanCount(summary.LiveLinks))

			printSuggestions(cmd, results)
			fmt.Fprintf(out, "Report saved to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheetDir, "sheets", "", "Directory of course spreadsheets (defaults to paths.sheet_dir)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Report path (defaults to paths.output)")
	cmd.Flags().BoolVar(&checkLinks, "check-links", false, "Probe Drive links even when drive.enabled is false")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Rescan even when a fresh cached snapshot exists")
	return cmd
}

func printSuggestions(cmd *cobra.Command, results []audit.CourseResult) {
	out := cmd.OutOrStdout()
	for _, result := range results {
		if len(result.Suggestions) == 0 {
			continue
		}
		fmt.Fprintf(out, "No local match for %q; closest index names: %s\n",
			result.Course.Name, strings.Join(result.Suggestions, ", "))
	}
}
