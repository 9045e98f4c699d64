package survey

import (
	"errors"
	"regexp"
	"strings"
)

// Classification outcomes. Not-relevant columns are a deliberate filter;
// pattern failures on relevant-looking columns are surfaced so partial
// data never aggregates silently.
var (
	ErrNotRelevant   = errors.New("column is not a ranked-course question")
	ErrHeaderPattern = errors.New("relevant column failed header pattern extraction")
)

// HeaderClassifier decides whether one column carries a ranked-course
// response and, if so, extracts its identity. Implementations return
// ErrNotRelevant for columns outside the ranked sections and
// ErrHeaderPattern for relevant columns whose header text cannot be parsed.
type HeaderClassifier interface {
	Classify(col int, label, id string) (ColumnInfo, error)
}

// ColumnAudit counts classification outcomes for the operator-facing
// audit trail.
type ColumnAudit struct {
	Relevant      int `json:"relevant"`
	Skipped       int `json:"skipped"`
	UnknownGroups int `json:"unknown_groups"`
}

// ClassifyColumns runs a classifier across both header rows and returns
// the classified columns plus audit counts. Skipped columns are dropped;
// columns with an unrecognized group are kept for the audit trail but
// excluded from scoring by the score mapper.
func ClassifyColumns(c HeaderClassifier, labels, ids []string) ([]ColumnInfo, ColumnAudit) {
	var (
		columns []ColumnInfo
		audit   ColumnAudit
	)
	for col := range labels {
		id := ""
		if col < len(ids) {
			id = ids[col]
		}
		info, err := c.Classify(col, labels[col], id)
		switch {
		case errors.Is(err, ErrNotRelevant):
			continue
		case errors.Is(err, ErrHeaderPattern):
			audit.Skipped++
			continue
		case err != nil:
			audit.Skipped++
			continue
		}
		if info.Group == GroupUnknown {
			audit.UnknownGroups++
		}
		audit.Relevant++
		columns = append(columns, info)
	}
	return columns, audit
}

const (
	coreMarker     = "CORE"
	electiveMarker = "Elective"
)

// rankPattern matches the exported question label shape:
// "<preamble> - Ranks - <group> - <course> - Rank".
var rankPattern = regexp.MustCompile(` - Ranks - (.*?) - (.*?) - Rank`)

// LabelPatternClassifier classifies columns of the two-row spreadsheet
// export, where row 0 is the question label and row 1 the import id.
// Relevance is a case-sensitive CORE/Elective marker in the label.
type LabelPatternClassifier struct{}

func (LabelPatternClassifier) Classify(col int, label, id string) (ColumnInfo, error) {
	isCore := strings.Contains(label, coreMarker)
	isElective := strings.Contains(label, electiveMarker)
	if !isCore && !isElective {
		return ColumnInfo{}, ErrNotRelevant
	}

	m := rankPattern.FindStringSubmatch(label)
	if m == nil {
		return ColumnInfo{}, ErrHeaderPattern
	}

	category := CategoryElective
	if isCore {
		category = CategoryCore
	}
	return ColumnInfo{
		Category:   category,
		Group:      ParseGroup(m[1]),
		Course:     m[2],
		QuestionID: id,
		Column:     col,
	}, nil
}

// IDPrefixClassifier classifies columns of the raw CSV export, where row 0
// is the question id (e.g. Q35_1) and row 1 the course name. The group is
// not encoded in the header for this shape; it lives in the cell text and
// is resolved by the score mapper.
type IDPrefixClassifier struct {
	CorePrefix     string
	ElectivePrefix string
}

// DefaultIDPrefixClassifier matches the known exit-survey question ids.
func DefaultIDPrefixClassifier() IDPrefixClassifier {
	return IDPrefixClassifier{CorePrefix: "Q35", ElectivePrefix: "Q76"}
}

func (c IDPrefixClassifier) Classify(col int, label, id string) (ColumnInfo, error) {
	var category Category
	switch {
	case c.CorePrefix != "" && strings.HasPrefix(id, c.CorePrefix):
		category = CategoryCore
	case c.ElectivePrefix != "" && strings.HasPrefix(id, c.ElectivePrefix):
		category = CategoryElective
	default:
		return ColumnInfo{}, ErrNotRelevant
	}

	course := strings.TrimSpace(label)
	if course == "" {
		return ColumnInfo{}, ErrHeaderPattern
	}
	// Group stays zero-valued: for this shape the group is encoded in
	// the cell text, not the header, and the score mapper resolves it.
	return ColumnInfo{
		Category:   category,
		Course:     course,
		QuestionID: id,
		Column:     col,
	}, nil
}
