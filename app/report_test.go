package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"courserank/domain/survey"
)

func sampleReport() *Report {
	return &Report{
		RunID:     "run-1",
		InputFile: "survey.csv",
		Mode:      survey.ModeCellLabel,
		Columns: []survey.ColumnInfo{
			{Category: survey.CategoryCore, Course: "Tax I", QuestionID: "Q35_1", Column: 1},
			{Category: survey.CategoryCore, Course: "Auditing", QuestionID: "Q35_2", Column: 2},
		},
		Audit: survey.ColumnAudit{Relevant: 2, Skipped: 1},
		Aggregates: []survey.CourseAggregate{
			{Course: "Tax I", Mean: 2.5, Count: 2, StdDev: 0.707, Median: 2.5, Min: 2, Max: 3},
			{Course: "Auditing", Mean: 2.0, Count: 1, Median: 2, Min: 2, Max: 2},
		},
		GeneratedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestReport_WriteConsole(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().WriteConsole(&buf)
	out := buf.String()

	for _, want := range []string{
		"Mapping Question IDs to Course Names:",
		"Q35_1",
		"Tax I",
		"relevant=2 skipped=1",
		"Course Rankings:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q\n%s", want, out)
		}
	}

	// Ranked order: Tax I before Auditing.
	rankings := out[strings.Index(out, "Course Rankings:"):]
	if strings.Index(rankings, "Tax I") > strings.Index(rankings, "Auditing") {
		t.Error("ranked table is not in mean-descending order")
	}
}

func TestReport_Markdown(t *testing.T) {
	md := string(sampleReport().Markdown())

	for _, want := range []string{
		"# Course Rankings",
		"| 1 | Tax I | 2.500 | 2 |",
		"| 2 | Auditing | 2.000 | 1 |",
		"rank_order.png",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
