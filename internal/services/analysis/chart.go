package analysis

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// RenderProjectionChart renders a PNG line chart from projection rows.
// Two series: Cumulative Cashflow (blue solid) and Projected Property Value
// (gray dashed). Returns raw PNG bytes.
func RenderProjectionChart(rows []models.ProjectionRow) ([]byte, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("need at least 2 projection rows, got %d", len(rows))
	}

	xValues := make([]float64, len(rows))
	cashflowY := make([]float64, len(rows))
	valueY := make([]float64, len(rows))

	for i, r := range rows {
		xValues[i] = float64(r.Year)
		cashflowY[i] = r.CumulativeCashflow
		valueY[i] = r.ProjectedPropertyValue
	}

	cashflowSeries := chart.ContinuousSeries{
		Name: "Cumulative Cashflow",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: cashflowY,
	}

	valueSeries := chart.ContinuousSeries{
		Name: "Projected Property Value",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: valueY,
		YAxis:   chart.YAxisSecondary,
	}

	graph := chart.Chart{
		Title:  "Investment Outlook",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("Year %.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0fk", f/1000)
				}
				return ""
			},
		},
		YAxisSecondary: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0fk", f/1000)
				}
				return ""
			},
		},
		Series: []chart.Series{
			cashflowSeries,
			valueSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
