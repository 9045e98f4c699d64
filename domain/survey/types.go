package survey

import (
	"fmt"
	"strings"
)

// Category identifies which course program a ranked question belongs to.
type Category string

const (
	CategoryCore     Category = "Core"
	CategoryElective Category = "Elective"
)

// Group is the preference bucket a respondent placed a course into.
type Group string

const (
	GroupMostBeneficial  Group = "Most Beneficial"
	GroupNeutral         Group = "Neutral"
	GroupLeastBeneficial Group = "Least Beneficial"
	GroupDidNotTake      Group = "Did not take"
	GroupUnknown         Group = "Unknown"
)

// canonicalGroups is the substring-match order for parsing group text.
// "Did not take" is matched too so it can be excluded explicitly rather
// than falling through to Unknown.
var canonicalGroups = []Group{
	GroupMostBeneficial,
	GroupLeastBeneficial,
	GroupNeutral,
	GroupDidNotTake,
}

// ParseGroup maps free text to a canonical group by substring match.
func ParseGroup(s string) Group {
	for _, g := range canonicalGroups {
		if containsGroup(s, g) {
			return g
		}
	}
	return GroupUnknown
}

// Score returns the canonical 1-3 score bound to a group. Groups that
// carry no preference (Did not take, Unknown) report ok=false.
func (g Group) Score() (float64, bool) {
	switch g {
	case GroupMostBeneficial:
		return 3, true
	case GroupNeutral:
		return 2, true
	case GroupLeastBeneficial:
		return 1, true
	}
	return 0, false
}

// RawTable is the loaded survey export: positional rows with the header
// rows preserved verbatim. LabelRow and IDRow point at the two metadata
// rows; respondent data starts at HeaderRows.
type RawTable struct {
	Rows       [][]string
	LabelRow   int
	IDRow      int
	HeaderRows int
}

// ColumnCount returns the width of the widest header row.
func (t *RawTable) ColumnCount() int {
	n := 0
	for i := 0; i < t.HeaderRows && i < len(t.Rows); i++ {
		if len(t.Rows[i]) > n {
			n = len(t.Rows[i])
		}
	}
	return n
}

// Labels returns the human-readable header row padded to ColumnCount.
func (t *RawTable) Labels() []string {
	return t.headerRow(t.LabelRow)
}

// IDs returns the question-identifier header row padded to ColumnCount.
func (t *RawTable) IDs() []string {
	return t.headerRow(t.IDRow)
}

func (t *RawTable) headerRow(idx int) []string {
	out := make([]string, t.ColumnCount())
	if idx < 0 || idx >= len(t.Rows) {
		return out
	}
	copy(out, t.Rows[idx])
	return out
}

// DataRows returns the respondent rows (everything after the header rows).
func (t *RawTable) DataRows() [][]string {
	if t.HeaderRows >= len(t.Rows) {
		return nil
	}
	return t.Rows[t.HeaderRows:]
}

// Cell returns one body cell by respondent index and column, or "" when
// the row is ragged and the column is missing.
func (t *RawTable) Cell(respondent, col int) string {
	rows := t.DataRows()
	if respondent < 0 || respondent >= len(rows) {
		return ""
	}
	row := rows[respondent]
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// ColumnInfo is the classified identity of one survey column. Derived
// once per load and immutable afterward.
type ColumnInfo struct {
	Category   Category `json:"category"`
	Group      Group    `json:"group"`
	Course     string   `json:"course"`
	QuestionID string   `json:"question_id"`
	Column     int      `json:"column"`
}

func (c ColumnInfo) String() string {
	return fmt.Sprintf("%s [%s/%s] -> %s", c.QuestionID, c.Category, c.Group, c.Course)
}

// ScoredObservation is one respondent's resolved score for one course.
type ScoredObservation struct {
	Respondent int     `json:"respondent"`
	Course     string  `json:"course"`
	Score      float64 `json:"score"`
}

// Conflict records a respondent whose answers placed one course in more
// than one group. The resolver keeps the max candidate but the anomaly
// is surfaced for audit rather than swallowed.
type Conflict struct {
	Respondent int       `json:"respondent"`
	Course     string    `json:"course"`
	Candidates []float64 `json:"candidates"`
	Resolved   float64   `json:"resolved"`
}

// CourseAggregate is the terminal reduction for one course. Count is
// always >= 1: courses with no valid observations are omitted entirely.
type CourseAggregate struct {
	Course string  `json:"course" db:"course"`
	Mean   float64 `json:"mean_score" db:"mean_score"`
	Count  int     `json:"count" db:"sample_count"`
	StdDev float64 `json:"std_dev" db:"-"`
	Median float64 `json:"median" db:"-"`
	Min    float64 `json:"min" db:"-"`
	Max    float64 `json:"max" db:"-"`
}

func containsGroup(s string, g Group) bool {
	return strings.Contains(s, string(g))
}
