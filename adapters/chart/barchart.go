package chart

import (
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"courserank/domain/survey"
	"courserank/internal/errors"
)

// Renderer draws the ranked-course horizontal bar chart.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a renderer with the default canvas size.
func NewRenderer() Renderer {
	return Renderer{Width: 12 * vg.Inch, Height: 8 * vg.Inch}
}

// Render saves a horizontal bar chart of the aggregates to outPath,
// highest mean at the top, creating the output directory if missing.
// Aggregates must already be in ranked order.
func (r Renderer) Render(aggregates []survey.CourseAggregate, outPath string) error {
	if len(aggregates) == 0 {
		return errors.ChartError(errors.InvalidInput("no aggregates to chart"))
	}

	p := plot.New()
	p.Title.Text = "Course Ratings (Highest to Lowest)"
	p.X.Label.Text = "Average Rating (3=Most Beneficial, 2=Neutral, 1=Least Beneficial)"
	p.X.Min = 0

	// NominalY lays categories bottom-up, so reverse to put the
	// top-ranked course at the top of the chart.
	values := make(plotter.Values, len(aggregates))
	names := make([]string, len(aggregates))
	for i, agg := range aggregates {
		j := len(aggregates) - 1 - i
		values[j] = agg.Mean
		names[j] = agg.Course
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return errors.ChartError(err)
	}
	bars.Horizontal = true
	bars.Color = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(names...)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return errors.ChartError(err)
	}
	if err := p.Save(r.Width, r.Height, outPath); err != nil {
		return errors.ChartError(err)
	}
	log.Printf("[Chart] saved %d bars to %s", len(aggregates), outPath)
	return nil
}
