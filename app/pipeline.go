package app

import (
	"time"

	"github.com/google/uuid"

	"courserank/adapters/table"
	"courserank/domain/survey"
	"courserank/internal"
	"courserank/internal/config"
	"courserank/internal/errors"
)

// Pipeline runs the whole batch: load, classify, score, resolve,
// aggregate. It computes a Report and leaves all presentation (console,
// chart, markdown, history) to the caller.
type Pipeline struct {
	cfg *config.Config
	log *internal.Logger
}

// NewPipeline creates a pipeline for the given configuration.
func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg, log: internal.NewDefaultLogger()}
}

// Run executes one pass over the input file. Only loader failures and an
// empty result abort the run; per-column and per-cell anomalies are
// contained and surfaced through the report's audit fields.
func (p *Pipeline) Run() (*Report, error) {
	if p.cfg.InputFile == "" {
		return nil, errors.InvalidInput("no input file configured")
	}

	reader := table.NewDataReader(p.cfg.InputFile)
	tbl, err := reader.ReadTable()
	if err != nil {
		return nil, err
	}

	mode := p.resolveMode(reader.Shape())
	classifier := p.classifierFor(mode)
	p.log.Info("classifying %d columns in %s mode", tbl.ColumnCount(), mode)

	columns, audit := survey.ClassifyColumns(classifier, tbl.Labels(), tbl.IDs())
	if audit.Skipped > 0 {
		p.log.Warn("%d relevant-looking columns failed header extraction and were dropped", audit.Skipped)
	}
	if audit.UnknownGroups > 0 {
		p.log.Warn("%d columns carry an unrecognized group and are excluded from scoring", audit.UnknownGroups)
	}
	if len(columns) == 0 {
		return nil, errors.EmptyResult("no ranked-course columns found in " + p.cfg.InputFile)
	}

	scorer := survey.Scorer{Mode: mode, DidNotTakeScore: p.cfg.DidNotTakeScore}
	resolution := survey.ResolveRespondents(tbl, columns, scorer)
	for _, c := range resolution.Conflicts {
		p.log.Warn("respondent %d placed %q in %d groups; keeping max score %.0f",
			c.Respondent, c.Course, len(c.Candidates), c.Resolved)
	}
	if len(resolution.Observations) == 0 {
		return nil, errors.EmptyResult("no valid observations found in " + p.cfg.InputFile)
	}

	aggregates := survey.Aggregate(resolution.Observations)
	p.log.Info("aggregated %d observations into %d courses",
		len(resolution.Observations), len(aggregates))

	return &Report{
		RunID:       uuid.NewString(),
		InputFile:   p.cfg.InputFile,
		Mode:        mode,
		Columns:     columns,
		Audit:       audit,
		Conflicts:   resolution.Conflicts,
		Aggregates:  aggregates,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// resolveMode picks the scoring variant: an explicit config wins,
// otherwise the input shape decides. The spreadsheet export stores
// within-group rank numbers, so presence mode is authoritative there.
func (p *Pipeline) resolveMode(shape table.Shape) survey.ScoreMode {
	if mode, ok := survey.ParseScoreMode(p.cfg.Mode); ok {
		return mode
	}
	if shape == table.ShapeIDLabel {
		return survey.ModeCellLabel
	}
	return survey.ModeGroupPresence
}

func (p *Pipeline) classifierFor(mode survey.ScoreMode) survey.HeaderClassifier {
	if mode == survey.ModeCellLabel {
		return survey.IDPrefixClassifier{
			CorePrefix:     p.cfg.CorePrefix,
			ElectivePrefix: p.cfg.ElectivePrefix,
		}
	}
	return survey.LabelPatternClassifier{}
}
