package main

import (
	"context"
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/wordwrap"
)

const blackHex = "#000000"

// Viewport maps surface pixels to terminal cells. Every cell shows two
// pixels stacked with a half block, so pixels come out roughly square.
type Viewport struct {
	Cols  int
	Rows  int
	Left  int // blank columns in front of the picture
	Scale float64
}

func fitViewport(surface Size, cols, rows int) Viewport {
	if surface.Empty() || cols < 1 || rows < 1 {
		return Viewport{}
	}
	k := math.Min(float64(cols)/surface.W, float64(rows*2)/surface.H)
	w := clampInt(int(math.Floor(surface.W*k)), 1, cols)
	h := clampInt(int(math.Ceil(surface.H*k/2)), 1, rows)
	return Viewport{Cols: w, Rows: h, Left: (cols - w) / 2, Scale: k}
}

// cellOf returns the picture cell that shows p.
func (v Viewport) cellOf(p Point) (int, int) {
	return int(math.Floor(p.X * v.Scale)), int(math.Floor(p.Y * v.Scale / 2))
}

// Delta converts a distance in cells into surface pixels.
func (v Viewport) Delta(dcol, drow int) Offset {
	if v.Scale == 0 {
		return Offset{}
	}
	return Offset{DX: float64(dcol) / v.Scale, DY: float64(drow) * 2 / v.Scale}
}

type cell struct {
	ch rune
	fg string
	bg string
}

type hitBox struct {
	id     string
	x0, x1 int
	y0, y1 int
}

// Canvas draws layouts into the terminal. The background is rasterized
// with the export rasterizer at terminal resolution; text is overlaid as
// characters so it stays readable.
type Canvas struct {
	raster   *GGRasterizer
	viewport Viewport
	hits     []hitBox
}

func NewCanvas(r *GGRasterizer) *Canvas {
	return &Canvas{raster: r}
}

// Viewport returns the mapping used by the last Render.
func (c *Canvas) Viewport() Viewport {
	return c.viewport
}

// Render paints l into at most width×height cells.
func (c *Canvas) Render(l Layout, width, height int) []string {
	vp := fitViewport(l.Size, width, height)
	c.viewport = vp
	c.hits = c.hits[:0]
	if vp.Scale == 0 {
		return nil
	}

	grid := c.paintBackground(l, vp)
	for _, t := range l.Texts {
		c.overlayText(grid, t, vp)
	}

	pad := strings.Repeat(" ", vp.Left)
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = pad + renderRow(row)
	}
	return lines
}

func (c *Canvas) paintBackground(l Layout, vp Viewport) [][]cell {
	grid := make([][]cell, vp.Rows)
	for i := range grid {
		grid[i] = make([]cell, vp.Cols)
		for j := range grid[i] {
			grid[i][j] = cell{ch: '▀', fg: blackHex, bg: blackHex}
		}
	}

	bmp, err := c.raster.Draw(context.Background(), l.WithoutTexts().Scaled(vp.Scale), nil)
	if err != nil {
		Logger().Debug("preview background", "err", err)
		return grid
	}
	img := bmp.Image()
	for y := range grid {
		for x := range grid[y] {
			grid[y][x].fg = pixelHex(img, x, 2*y)
			grid[y][x].bg = pixelHex(img, x, 2*y+1)
		}
	}
	return grid
}

func pixelHex(img image.Image, x, y int) string {
	b := img.Bounds()
	if !(image.Point{X: x, Y: y}).In(b) {
		return blackHex
	}
	return terminalHex(img.At(b.Min.X+x, b.Min.Y+y))
}

func (c *Canvas) overlayText(grid [][]cell, t TextLayer, vp Viewport) {
	if t.Content == "" {
		return
	}
	limit := int(t.WrapWidth * vp.Scale)
	if limit < 1 {
		limit = 1
	}
	lines := strings.Split(wordwrap.String(t.Content, limit), "\n")
	cx, cy := vp.cellOf(t.Position())
	top := cy - len(lines)/2
	text, _ := colorful.MakeColor(t.Color)

	box := hitBox{id: t.ID, x0: math.MaxInt, x1: math.MinInt, y0: top, y1: top + len(lines) - 1}
	for i, line := range lines {
		runes := []rune(strings.TrimRight(line, " "))
		start := cx - len(runes)/2
		box.x0 = min(box.x0, start)
		box.x1 = max(box.x1, start+len(runes)-1)
		row := top + i
		if row < 0 || row >= len(grid) {
			continue
		}
		for j, r := range runes {
			col := start + j
			if col < 0 || col >= len(grid[row]) {
				continue
			}
			bg := mixHex(grid[row][col].fg, grid[row][col].bg)
			base, _ := colorful.Hex(bg)
			grid[row][col] = cell{ch: r, fg: base.BlendRgb(text, t.Opacity).Clamped().Hex(), bg: bg}
		}
	}
	if box.x0 > box.x1 {
		return
	}
	box.x0--
	box.x1++
	if t.Outline {
		outline := terminalHex(outlineColor)
		for row := box.y0; row <= box.y1; row++ {
			if row < 0 || row >= len(grid) {
				continue
			}
			for _, edge := range []struct {
				col int
				ch  rune
			}{{box.x0, '['}, {box.x1, ']'}} {
				if edge.col < 0 || edge.col >= len(grid[row]) {
					continue
				}
				g := &grid[row][edge.col]
				*g = cell{ch: edge.ch, fg: outline, bg: mixHex(g.fg, g.bg)}
			}
		}
	}
	c.hits = append(c.hits, box)
}

// mixHex averages the two halves of a half-block cell.
func mixHex(a, b string) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return b
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendRgb(cb, 0.5).Clamped().Hex()
}

// renderRow styles runs of cells that share colors in one go.
func renderRow(row []cell) string {
	var out strings.Builder
	for i := 0; i < len(row); {
		j := i
		var run strings.Builder
		for j < len(row) && row[j].fg == row[i].fg && row[j].bg == row[i].bg {
			run.WriteRune(row[j].ch)
			j++
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(row[i].fg)).
			Background(lipgloss.Color(row[i].bg))
		out.WriteString(style.Render(run.String()))
		i = j
	}
	return out.String()
}

// HitTest returns the topmost text element drawn at a screen cell.
func (c *Canvas) HitTest(col, row int) (string, bool) {
	col -= c.viewport.Left
	for i := len(c.hits) - 1; i >= 0; i-- {
		h := c.hits[i]
		if col >= h.x0 && col <= h.x1 && row >= h.y0 && row <= h.y1 {
			return h.id, true
		}
	}
	return "", false
}
