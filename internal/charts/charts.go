// Package charts renders budget figures as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing positive to draw.
var ErrNoData = errors.New("charts: no data to render")

// Slice is one category of a spending pie.
type Slice struct {
	Label string
	Value float64
	Tone  string
}

// Bar compares a budget's spend with its limit.
type Bar struct {
	Label  string
	Spent  float64
	Limit  float64
	Status string
}

// toneColors follows the badge variants used for categories.
var toneColors = map[string]drawing.Color{
	"success":     drawing.ColorFromHex("16a34a"),
	"warning":     drawing.ColorFromHex("f59e0b"),
	"destructive": drawing.ColorFromHex("dc2626"),
	"default":     drawing.ColorFromHex("2563eb"),
	"secondary":   drawing.ColorFromHex("7c3aed"),
	"outline":     drawing.ColorFromHex("94a3b8"),
}

var statusColors = map[string]drawing.Color{
	"nominal":  drawing.ColorFromHex("16a34a"),
	"warning":  drawing.ColorFromHex("f59e0b"),
	"critical": drawing.ColorFromHex("dc2626"),
}

var limitColor = drawing.ColorFromHex("cbd5e1")

// Generator renders charts at a fixed size.
type Generator struct {
	Width  int
	Height int
}

// NewGenerator returns a generator producing 800x500 images.
func NewGenerator() *Generator {
	return &Generator{Width: 800, Height: 500}
}

// CategoryPie draws the share of spend per category.
func (g *Generator) CategoryPie(title string, slices []Slice) ([]byte, error) {
	values := make([]chart.Value, 0, len(slices))
	total := 0.0
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total == 0 {
		return nil, ErrNoData
	}

	for _, s := range slices {
		if s.Value <= 0 {
			continue
		}
		style := chart.Style{FontSize: 11, FontColor: chart.ColorBlack}
		if c, ok := toneColors[s.Tone]; ok {
			style.FillColor = c
			style.StrokeColor = chart.ColorWhite
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %.2f (%.1f%%)", s.Label, s.Value, s.Value/total*100),
			Value: s.Value,
			Style: style,
		})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  g.Width,
		Height: g.Height,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category pie: %w", err)
	}
	return buffer.Bytes(), nil
}

// BudgetBars draws a limit bar and a spent bar for every budget.
func (g *Generator) BudgetBars(title string, bars []Bar) ([]byte, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	const barWidth, barSpacing = 40, 20
	values := make([]chart.Value, 0, len(bars)*2)
	top := 0.0
	for _, b := range bars {
		top = math.Max(top, math.Max(b.Spent, b.Limit))

		spentColor, ok := statusColors[b.Status]
		if !ok {
			spentColor = chart.ColorBlue
		}
		label := shorten(b.Label, 14)
		values = append(values,
			chart.Value{
				Label: label + " limit",
				Value: b.Limit,
				Style: chart.Style{FillColor: limitColor, StrokeColor: limitColor},
			},
			chart.Value{
				Label: label + " spent",
				Value: b.Spent,
				Style: chart.Style{FillColor: spentColor, StrokeColor: spentColor},
			},
		)
	}
	if top <= 0 {
		return nil, ErrNoData
	}

	width := g.Width
	if need := 200 + len(values)*(barWidth+barSpacing); need > width {
		width = need
	}

	graph := chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 14},
		Width:      width,
		Height:     g.Height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    60,
				Left:   20,
				Right:  20,
				Bottom: 40,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.Style{FontSize: 9},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
			Style: chart.Style{FontSize: 10, FontColor: chart.ColorBlack},
		},
		Bars: values,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render budget bars: %w", err)
	}
	return buffer.Bytes(), nil
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
