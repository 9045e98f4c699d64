package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"courserank/adapters/chart"
	"courserank/adapters/history"
	"courserank/app"
	"courserank/internal/config"
	"courserank/internal/errors"
	"courserank/ui"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "courserank",
	Short: "Rank graduate-program courses from exit-survey exports",
	Long: `courserank ingests a graduate-program exit-survey export (XLSX or CSV),
scores the ranked-course questions (3=Most Beneficial, 2=Neutral,
1=Least Beneficial), and renders a ranked horizontal bar chart.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		return err
	},
}

func init() {
	rootCmd.AddCommand(newAnalyzeCmd(), newHistoryCmd(), newServeCmd())
}

func newAnalyzeCmd() *cobra.Command {
	var (
		input   string
		output  string
		mode    string
		noChart bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the survey analysis pipeline",
		Long: `Load the survey export, classify the ranked-course columns, aggregate
per-course scores, and write the chart and markdown report.

Example: courserank analyze -i "data/Grad Program Exit Survey Data.xlsx"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input != "" {
				cfg.InputFile = input
			}
			if output != "" {
				cfg.OutputDir = output
			}
			if mode != "" {
				cfg.Mode = mode
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return runAnalyze(cmd.Context(), noChart)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to the survey export (.xlsx or .csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default \"outputs\")")
	cmd.Flags().StringVar(&mode, "mode", "", "Scoring mode: auto|presence|label")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "Skip chart rendering")

	return cmd
}

func runAnalyze(ctx context.Context, noChart bool) error {
	report, err := app.NewPipeline(cfg).Run()
	if err != nil {
		if errors.IsCode(err, errors.CodeEmptyResult) {
			// Terminal but not a crash: report the diagnostic and stop
			// before any output is written.
			fmt.Println(err.Error())
			return nil
		}
		return err
	}

	report.WriteConsole(os.Stdout)

	if !noChart {
		if err := chart.NewRenderer().Render(report.Aggregates, cfg.ChartPath()); err != nil {
			return err
		}
		fmt.Printf("\nChart saved to %s\n", cfg.ChartPath())
	}
	if err := report.WriteMarkdownFile(cfg.ReportPath()); err != nil {
		return errors.Wrap(err, "cannot write markdown report")
	}

	saveHistory(ctx, report)
	return nil
}

// saveHistory records the run. The report and chart already exist, so a
// broken history store only warns.
func saveHistory(ctx context.Context, report *app.Report) {
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		log.Printf("[History] %v", err)
		return
	}
	defer store.Close()

	run := history.RunRecord{
		ID:              report.RunID,
		InputFile:       report.InputFile,
		Mode:            string(report.Mode),
		RelevantColumns: report.Audit.Relevant,
		SkippedColumns:  report.Audit.Skipped,
		UnknownGroups:   report.Audit.UnknownGroups,
		Conflicts:       len(report.Conflicts),
		CreatedAt:       report.GeneratedAt,
	}
	if err := store.SaveRun(ctx, run, report.Aggregates); err != nil {
		log.Printf("[History] %v", err)
		return
	}
	fmt.Printf("Run %s recorded in %s\n", report.RunID, cfg.HistoryPath())
}

func newHistoryCmd() *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs or show one run's rankings",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			if runID != "" {
				return showRun(cmd.Context(), store, runID)
			}
			return listRuns(cmd.Context(), store, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")
	cmd.Flags().StringVar(&runID, "run", "", "Show aggregates for one run id")

	return cmd
}

func listRuns(ctx context.Context, store *history.Store, limit int) error {
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s  %s  mode=%s columns=%d conflicts=%d  %s\n",
			run.CreatedAt.Format(time.RFC3339), run.ID, run.Mode,
			run.RelevantColumns, run.Conflicts, run.InputFile)
	}
	return nil
}

func showRun(ctx context.Context, store *history.Store, runID string) error {
	run, aggregates, err := store.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	fmt.Printf("Run %s (%s, %s)\n", run.ID, run.InputFile, run.CreatedAt.Format(time.RFC3339))
	for _, agg := range aggregates {
		fmt.Printf("%3d. %-40s %.3f (n=%d)\n", agg.RankOrder, agg.Course, agg.MeanScore, agg.SampleCount)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest report over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.ServeAddr = addr
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Printf("[Serve] listening on %s", cfg.ServeAddr)
			return ui.NewServer(cfg.ServeAddr, cfg.OutputDir, store).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default \":8085\")")

	return cmd
}
