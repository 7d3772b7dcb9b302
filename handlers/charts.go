package handlers

import (
	"fmt"

	"github.com/icco/animedash/models"
)

const (
	chartWidth     = 900
	histHeight     = 320
	histAxisHeight = 20
	barRowHeight   = 28
	barLabelWidth  = 220
	barValueSpace  = 60
)

var (
	viridis = []string{"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}
	magma   = []string{"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"}
)

type histogramColumn struct {
	X, Y, W, H float64
	Label      string
	Count      int
}

type chartTick struct {
	X, Y  float64
	Label string
}

type histogramChart struct {
	Width, Height int
	Columns       []histogramColumn
	Ticks         []chartTick
}

// newHistogramChart lays out bins as vertical bars scaled to the tallest bin.
// It returns nil when there is nothing to draw.
func newHistogramChart(bins []models.Bin) *histogramChart {
	if len(bins) == 0 {
		return nil
	}

	maxCount := 0
	for _, b := range bins {
		maxCount = max(maxCount, b.Count)
	}

	plot := float64(histHeight - histAxisHeight)
	colW := float64(chartWidth) / float64(len(bins))
	c := &histogramChart{Width: chartWidth, Height: histHeight}
	for i, b := range bins {
		h := 0.0
		if maxCount > 0 {
			h = plot * float64(b.Count) / float64(maxCount)
		}
		c.Columns = append(c.Columns, histogramColumn{
			X:     float64(i) * colW,
			Y:     plot - h,
			W:     colW,
			H:     h,
			Label: fmt.Sprintf("%.2f–%.2f", b.Low, b.High),
			Count: b.Count,
		})
		if i%2 == 0 {
			c.Ticks = append(c.Ticks, chartTick{
				X:     float64(i)*colW + colW/2,
				Y:     float64(histHeight) - 4,
				Label: fmt.Sprintf("%.1f", (b.Low+b.High)/2),
			})
		}
	}
	return c
}

type chartBar struct {
	Label                 string
	Count                 int
	Color                 string
	X, Y, W, H            float64
	TextY, LabelX, ValueX float64
}

type barChart struct {
	Width, Height int
	Axis          string
	Rows          []chartBar
}

// newBarChart lays out counts as horizontal bars, largest first, colored
// from palette.
func newBarChart(axis string, counts []models.LabelCount, palette []string) barChart {
	c := barChart{Width: chartWidth, Height: len(counts) * barRowHeight, Axis: axis}
	if len(counts) == 0 {
		return c
	}

	maxCount := 0
	for _, lc := range counts {
		maxCount = max(maxCount, lc.Count)
	}

	span := float64(chartWidth - barLabelWidth - barValueSpace)
	for i, lc := range counts {
		w := 0.0
		if maxCount > 0 {
			w = span * float64(lc.Count) / float64(maxCount)
		}
		y := float64(i * barRowHeight)
		c.Rows = append(c.Rows, chartBar{
			Label:  lc.Label,
			Count:  lc.Count,
			Color:  palette[i*len(palette)/len(counts)],
			X:      barLabelWidth,
			Y:      y + 3,
			W:      w,
			H:      barRowHeight - 6,
			TextY:  y + barRowHeight/2 + 4,
			LabelX: barLabelWidth - 6,
			ValueX: barLabelWidth + w + 4,
		})
	}
	return c
}
