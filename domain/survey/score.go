package survey

import (
	"strconv"
	"strings"
)

// ScoreMode selects how a cell maps to a score.
type ScoreMode string

const (
	// ModeGroupPresence: the column's group identity carries the score;
	// cell content only signals membership (the spreadsheet export stores
	// a within-group rank number there, never the 1-3 score itself).
	ModeGroupPresence ScoreMode = "presence"
	// ModeCellLabel: the cell text names the group ("Most Beneficial", ...)
	// or is already a numeric score.
	ModeCellLabel ScoreMode = "label"
)

// ParseScoreMode validates a mode string from config or flags.
func ParseScoreMode(s string) (ScoreMode, bool) {
	switch ScoreMode(s) {
	case ModeGroupPresence, ModeCellLabel:
		return ScoreMode(s), true
	}
	return "", false
}

// Scorer converts one raw cell into a canonical score. DidNotTakeScore
// is an opt-in sentinel for the alternative "Did not take counts as a
// low score" reading; nil keeps those selections out of the mean.
type Scorer struct {
	Mode            ScoreMode
	DidNotTakeScore *float64
}

// ScoreFor returns the score for one cell, or ok=false when the cell
// contributes no observation (empty, did-not-take, unrecognized text, or
// a group that carries no preference).
func (s Scorer) ScoreFor(cell string, group Group) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	if group == GroupDidNotTake {
		return s.didNotTake()
	}

	switch s.Mode {
	case ModeGroupPresence:
		return group.Score()
	case ModeCellLabel:
		return s.scoreFromLabel(cell)
	}
	return 0, false
}

func (s Scorer) scoreFromLabel(cell string) (float64, bool) {
	if strings.Contains(cell, string(GroupDidNotTake)) {
		return s.didNotTake()
	}
	for _, g := range []Group{GroupMostBeneficial, GroupLeastBeneficial, GroupNeutral} {
		if strings.Contains(cell, string(g)) {
			return g.Score()
		}
	}
	// Bare numeric cells pass through as literal scores, which supports
	// pre-scored inputs.
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return v, true
	}
	return 0, false
}

func (s Scorer) didNotTake() (float64, bool) {
	if s.DidNotTakeScore != nil {
		return *s.DidNotTakeScore, true
	}
	return 0, false
}
