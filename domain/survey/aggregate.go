package survey

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Aggregate groups observations by exact course name and computes the
// per-course mean, count, and spread profile. Courses never observed are
// absent from the result; every returned aggregate has Count >= 1.
//
// Sort order is mean descending with course name ascending on ties, so
// output is deterministic across runs.
func Aggregate(observations []ScoredObservation) []CourseAggregate {
	byCourse := make(map[string][]float64)
	for _, obs := range observations {
		byCourse[obs.Course] = append(byCourse[obs.Course], obs.Score)
	}

	aggregates := make([]CourseAggregate, 0, len(byCourse))
	for course, scores := range byCourse {
		aggregates = append(aggregates, newAggregate(course, scores))
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].Mean != aggregates[j].Mean {
			return aggregates[i].Mean > aggregates[j].Mean
		}
		return aggregates[i].Course < aggregates[j].Course
	})
	return aggregates
}

func newAggregate(course string, scores []float64) CourseAggregate {
	agg := CourseAggregate{
		Course: course,
		Mean:   stat.Mean(scores, nil),
		Count:  len(scores),
	}
	if len(scores) > 1 {
		agg.StdDev = stat.StdDev(scores, nil)
	}

	// montanaflynn returns an error only for empty input, which cannot
	// happen here: a course with zero scores is never materialized.
	if median, err := stats.Median(scores); err == nil {
		agg.Median = median
	}
	if min, err := stats.Min(scores); err == nil {
		agg.Min = min
	}
	if max, err := stats.Max(scores); err == nil {
		agg.Max = max
	}
	return agg
}
