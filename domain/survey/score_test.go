package survey

import "testing"

func TestScorer_GroupPresence(t *testing.T) {
	scorer := Scorer{Mode: ModeGroupPresence}

	tests := []struct {
		name   string
		cell   string
		group  Group
		want   float64
		wantOK bool
	}{
		// The cell holds a within-group rank number; presence alone
		// signals membership and the group carries the score.
		{name: "most beneficial membership", cell: "2", group: GroupMostBeneficial, want: 3, wantOK: true},
		{name: "neutral membership", cell: "1", group: GroupNeutral, want: 2, wantOK: true},
		{name: "least beneficial membership", cell: "4", group: GroupLeastBeneficial, want: 1, wantOK: true},
		{name: "non numeric content still signals membership", cell: "x", group: GroupMostBeneficial, want: 3, wantOK: true},
		{name: "empty cell", cell: "", group: GroupMostBeneficial, wantOK: false},
		{name: "whitespace cell", cell: "   ", group: GroupNeutral, wantOK: false},
		{name: "did not take never scores", cell: "1", group: GroupDidNotTake, wantOK: false},
		{name: "unknown group never scores", cell: "1", group: GroupUnknown, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := scorer.ScoreFor(tt.cell, tt.group)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorer_CellLabel(t *testing.T) {
	scorer := Scorer{Mode: ModeCellLabel}

	tests := []struct {
		name   string
		cell   string
		want   float64
		wantOK bool
	}{
		{name: "most beneficial label", cell: "Most Beneficial", want: 3, wantOK: true},
		{name: "neutral label", cell: "Neutral", want: 2, wantOK: true},
		{name: "least beneficial label", cell: "Least Beneficial", want: 1, wantOK: true},
		{name: "label inside longer text", cell: "Courses I found Most Beneficial", want: 3, wantOK: true},
		{name: "pre-scored numeric passes through", cell: "2.5", want: 2.5, wantOK: true},
		{name: "unrecognized text", cell: "maybe", wantOK: false},
		{name: "did not take label", cell: "Did not take", wantOK: false},
		{name: "empty", cell: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := scorer.ScoreFor(tt.cell, "")
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorer_DidNotTakeSentinel(t *testing.T) {
	sentinel := 0.5
	scorer := Scorer{Mode: ModeGroupPresence, DidNotTakeScore: &sentinel}

	got, ok := scorer.ScoreFor("1", GroupDidNotTake)
	if !ok || got != sentinel {
		t.Errorf("sentinel scoring = (%v, %v), want (%v, true)", got, ok, sentinel)
	}

	// An empty cell is still no selection, sentinel or not.
	if _, ok := scorer.ScoreFor("", GroupDidNotTake); ok {
		t.Error("empty did-not-take cell must not score")
	}

	labelScorer := Scorer{Mode: ModeCellLabel, DidNotTakeScore: &sentinel}
	got, ok = labelScorer.ScoreFor("Did not take", "")
	if !ok || got != sentinel {
		t.Errorf("label-mode sentinel = (%v, %v), want (%v, true)", got, ok, sentinel)
	}
}
