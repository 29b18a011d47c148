package summary

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderMonthlyChart renders the year's monthly totals as a PNG bar chart.
// Returns raw PNG bytes.
func (s *Service) RenderMonthlyChart(ctx context.Context, userID string, year int) ([]byte, error) {
	points, err := s.MonthlyTotals(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	bars := make([]chart.Value, len(points))
	maxTotal := 0.0
	for i, p := range points {
		total, _ := p.Total.Float64()
		if total > maxTotal {
			maxTotal = total
		}
		bars[i] = chart.Value{
			Label: p.Month[:3],
			Value: total,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2563eb"), // blue-600
				StrokeColor: drawing.ColorFromHex("2563eb"),
			},
		}
	}

	yAxis := chart.YAxis{
		ValueFormatter: func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return fmt.Sprintf("%.0f", f)
			}
			return ""
		},
	}
	if maxTotal == 0 {
		// go-chart rejects a value range that collapses to zero, which is
		// what a year with no expenses produces. Pin the axis so an empty
		// year still renders.
		yAxis.Range = &chart.ContinuousRange{Min: 0, Max: 1}
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Monthly spending %d", year),
		Width:    900,
		Height:   400,
		BarWidth: 50,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: yAxis,
		Bars:  bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
