package survey

// Resolution is the outcome of one respondent pass over the table body.
type Resolution struct {
	Observations []ScoredObservation
	Conflicts    []Conflict
}

// ResolveRespondents reduces per-column candidate scores to at most one
// observation per respondent and course. A respondent should only appear
// in one group per course; when the data disagrees the max candidate wins
// and the anomaly is recorded as a Conflict.
func ResolveRespondents(table *RawTable, columns []ColumnInfo, scorer Scorer) Resolution {
	courseColumns, courseOrder := groupByCourse(columns)

	var res Resolution
	for respondent := range table.DataRows() {
		for _, course := range courseOrder {
			var candidates []float64
			for _, col := range courseColumns[course] {
				if score, ok := scorer.ScoreFor(table.Cell(respondent, col.Column), col.Group); ok {
					candidates = append(candidates, score)
				}
			}
			if len(candidates) == 0 {
				continue
			}

			resolved := maxOf(candidates)
			if len(candidates) > 1 {
				res.Conflicts = append(res.Conflicts, Conflict{
					Respondent: respondent,
					Course:     course,
					Candidates: candidates,
					Resolved:   resolved,
				})
			}
			res.Observations = append(res.Observations, ScoredObservation{
				Respondent: respondent,
				Course:     course,
				Score:      resolved,
			})
		}
	}
	return res
}

// groupByCourse indexes columns by course name, keeping first-seen column
// order so repeated runs visit courses deterministically.
func groupByCourse(columns []ColumnInfo) (map[string][]ColumnInfo, []string) {
	byCourse := make(map[string][]ColumnInfo)
	var order []string
	for _, col := range columns {
		if _, seen := byCourse[col.Course]; !seen {
			order = append(order, col.Course)
		}
		byCourse[col.Course] = append(byCourse[col.Course], col)
	}
	return byCourse, order
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
