package ui

import (
	"fmt"
	"strings"

	"alertscope/internal/model"
)

// RenderLightcurve draws flux against epoch as a character grid, one marker
// per point using the band letter. Forced-photometry points render as dots.
func RenderLightcurve(points []model.LightcurvePoint, width, height int, styles Styles) string {
	type xy struct {
		x, y   float64
		marker rune
	}
	var pts []xy
	for _, p := range points {
		if p.PsfFlux == nil {
			continue
		}
		marker := '·'
		if !p.Forced {
			marker = bandMarker(p.Band)
		}
		pts = append(pts, xy{x: p.MidpointMjdTai, y: *p.PsfFlux, marker: marker})
	}
	if len(pts) == 0 {
		return styles.Muted.Render("no photometry")
	}
	if width < 16 {
		width = 16
	}
	if height < 4 {
		height = 4
	}

	minX, maxX := pts[0].x, pts[0].x
	minY, maxY := pts[0].y, pts[0].y
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.x), max(maxX, p.x)
		minY, maxY = min(minY, p.y), max(maxY, p.y)
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	for _, p := range pts {
		col := scaleTo(p.x, minX, maxX, width)
		row := height - 1 - scaleTo(p.y, minY, maxY, height)
		grid[row][col] = p.marker
	}

	var sb strings.Builder
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("flux %.4g .. %.4g", minY, maxY)))
	sb.WriteString("\n")
	for _, line := range grid {
		sb.WriteString(styles.Body.Render(string(line)))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("MJD %.5f .. %.5f", minX, maxX)))
	return sb.String()
}

// RenderCentroid draws detection offsets from the mean position, in
// arcseconds, on a square scatter with crosshairs at zero.
func RenderCentroid(points []model.CentroidPoint, size int, styles Styles) string {
	if len(points) == 0 {
		return styles.Muted.Render("no centroid data")
	}
	if size < 9 {
		size = 9
	}
	if size%2 == 0 {
		size++
	}

	extent := 0.0
	for _, p := range points {
		extent = max(extent, max(abs(p.RAOffset), abs(p.DecOffset)))
	}
	if extent == 0 {
		extent = 1
	}

	grid := make([][]rune, size)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", size))
	}
	mid := size / 2
	for i := 0; i < size; i++ {
		grid[mid][i] = '┄'
		grid[i][mid] = '┆'
	}
	grid[mid][mid] = '+'
	for _, p := range points {
		col := scaleTo(p.RAOffset, -extent, extent, size)
		row := size - 1 - scaleTo(p.DecOffset, -extent, extent, size)
		grid[row][col] = bandMarker(p.Band)
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(styles.Body.Render(string(line)))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("±%.3g arcsec", extent)))
	return sb.String()
}

// scaleTo maps v in [lo, hi] to a cell index in [0, cells).
func scaleTo(v, lo, hi float64, cells int) int {
	if hi <= lo {
		return 0
	}
	idx := int((v - lo) / (hi - lo) * float64(cells-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= cells {
		idx = cells - 1
	}
	return idx
}

func bandMarker(band string) rune {
	if band == "" {
		return '*'
	}
	return rune(band[0])
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
