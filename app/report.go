package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"courserank/domain/survey"
)

// Report is the structured result of one pipeline run.
type Report struct {
	RunID       string                   `json:"run_id"`
	InputFile   string                   `json:"input_file"`
	Mode        survey.ScoreMode         `json:"mode"`
	Columns     []survey.ColumnInfo      `json:"columns"`
	Audit       survey.ColumnAudit       `json:"audit"`
	Conflicts   []survey.Conflict        `json:"conflicts"`
	Aggregates  []survey.CourseAggregate `json:"aggregates"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// WriteConsole writes the operator-facing audit trail and the ranked
// table.
func (r *Report) WriteConsole(w io.Writer) {
	divider := strings.Repeat("-", 60)

	fmt.Fprintln(w, "Mapping Question IDs to Course Names:")
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "%-15s | %s\n", "Question ID", "Course Name")
	fmt.Fprintln(w, divider)
	for _, col := range r.Columns {
		fmt.Fprintf(w, "%-15s | %s\n", col.QuestionID, col.Course)
	}
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "relevant=%d skipped=%d unknown-groups=%d conflicts=%d\n",
		r.Audit.Relevant, r.Audit.Skipped, r.Audit.UnknownGroups, len(r.Conflicts))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Course Rankings:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCOURSE\tMEAN\tCOUNT")
	for i, agg := range r.Aggregates {
		fmt.Fprintf(tw, "%d\t%s\t%.3f\t%d\n", i+1, agg.Course, agg.Mean, agg.Count)
	}
	tw.Flush()
}

// Markdown renders the full report, including the spread profile, as a
// markdown document.
func (r *Report) Markdown() []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Course Rankings\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "- Input: `%s`\n", r.InputFile)
	fmt.Fprintf(&b, "- Mode: %s\n", r.Mode)
	fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Columns: %d relevant, %d skipped, %d unknown groups\n",
		r.Audit.Relevant, r.Audit.Skipped, r.Audit.UnknownGroups)
	fmt.Fprintf(&b, "- Group conflicts resolved by max score: %d\n\n", len(r.Conflicts))

	fmt.Fprintf(&b, "Scale: 3 = Most Beneficial, 2 = Neutral, 1 = Least Beneficial.\n\n")
	fmt.Fprintf(&b, "![rank order](rank_order.png)\n\n")

	fmt.Fprintf(&b, "| Rank | Course | Mean | Count | StdDev | Median | Min | Max |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|---|---|---|\n")
	for i, agg := range r.Aggregates {
		fmt.Fprintf(&b, "| %d | %s | %.3f | %d | %.3f | %.1f | %.1f | %.1f |\n",
			i+1, agg.Course, agg.Mean, agg.Count, agg.StdDev, agg.Median, agg.Min, agg.Max)
	}

	if len(r.Conflicts) > 0 {
		fmt.Fprintf(&b, "\n## Conflicts\n\n")
		for _, c := range r.Conflicts {
			fmt.Fprintf(&b, "- respondent %d, %s: %d candidate scores, kept %.0f\n",
				c.Respondent, c.Course, len(c.Candidates), c.Resolved)
		}
	}

	return []byte(b.String())
}

// WriteMarkdownFile writes the markdown report to path, creating the
// directory if missing.
func (r *Report) WriteMarkdownFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, r.Markdown(), 0o644)
}
