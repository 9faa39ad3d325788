package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// Sparkline renders a compact SVG chart of a forecast: the prediction
// interval as a shaded band with the point forecast on top
type Sparkline struct {
	Width   int
	Height  int
	Padding int
}

// NewSparkline creates a sparkline renderer with dashboard-sized defaults
func NewSparkline() *Sparkline {
	return &Sparkline{
		Width:   240,
		Height:  48,
		Padding: 4,
	}
}

// GenerateSVG renders the forecast points as an inline SVG fragment
func (s *Sparkline) GenerateSVG(points []entities.ForecastPoint) string {
	if len(points) == 0 {
		return s.generateEmptyChart()
	}

	minValue := math.Inf(1)
	maxValue := math.Inf(-1)
	for _, point := range points {
		minValue = math.Min(minValue, point.Lower)
		maxValue = math.Max(maxValue, point.Upper)
	}
	if maxValue <= minValue {
		maxValue = minValue + 1
	}

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		s.Width, s.Height, s.Width, s.Height))

	// Interval band: upper bound forward, lower bound back
	var band strings.Builder
	for i, point := range points {
		x, y := s.scale(i, point.Upper, len(points), minValue, maxValue)
		if i == 0 {
			band.WriteString(fmt.Sprintf("M %.1f %.1f", x, y))
		} else {
			band.WriteString(fmt.Sprintf(" L %.1f %.1f", x, y))
		}
	}
	for i := len(points) - 1; i >= 0; i-- {
		x, y := s.scale(i, points[i].Lower, len(points), minValue, maxValue)
		band.WriteString(fmt.Sprintf(" L %.1f %.1f", x, y))
	}
	band.WriteString(" Z")
	svg.WriteString(fmt.Sprintf(
		`<path d="%s" fill="#93c5fd" fill-opacity="0.35" stroke="none"/>`, band.String()))

	// Point forecast line
	var line strings.Builder
	for i, point := range points {
		x, y := s.scale(i, point.Value, len(points), minValue, maxValue)
		if i == 0 {
			line.WriteString(fmt.Sprintf("M %.1f %.1f", x, y))
		} else {
			line.WriteString(fmt.Sprintf(" L %.1f %.1f", x, y))
		}
	}
	svg.WriteString(fmt.Sprintf(
		`<path d="%s" fill="none" stroke="#2563eb" stroke-width="1.5"/>`, line.String()))

	// Mark the final point
	x, y := s.scale(len(points)-1, points[len(points)-1].Value, len(points), minValue, maxValue)
	svg.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2" fill="#2563eb"/>`, x, y))

	svg.WriteString("</svg>")
	return svg.String()
}

// scale maps a point index and value into SVG coordinates
func (s *Sparkline) scale(index int, value float64, count int, minValue, maxValue float64) (float64, float64) {
	plotWidth := float64(s.Width - 2*s.Padding)
	plotHeight := float64(s.Height - 2*s.Padding)

	var x float64
	if count > 1 {
		x = float64(s.Padding) + plotWidth*float64(index)/float64(count-1)
	} else {
		x = float64(s.Width) / 2
	}
	y := float64(s.Padding) + plotHeight*(1-(value-minValue)/(maxValue-minValue))
	return x, y
}

func (s *Sparkline) generateEmptyChart() string {
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><text x="%d" y="%d" font-size="10" fill="#9ca3af" text-anchor="middle">no data</text></svg>`,
		s.Width, s.Height, s.Width/2, s.Height/2+3)
}
