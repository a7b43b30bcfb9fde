// Package draw renders the field into a terminal using half-block glyphs.
package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tomz197/alienfield/internal/physics"
)

// Half-block glyphs. Each terminal cell holds two vertical sub-pixels.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// maxChunkSize bounds single writes so output stays near one MTU over SSH.
const maxChunkSize = 1400

// Point is a position in field units.
type Point struct {
	X, Y float64
}

// Canvas is a 1-bit pixel buffer with twice the terminal's vertical
// resolution. Callers draw in field units; the canvas scales those to the
// terminal area it covers.
type Canvas struct {
	cols, rows int    // Terminal cells covered
	pixH       int    // rows * 2
	pixels     []bool // [y*cols + x]
	shown      []rune // Glyph last written per cell; 0 means unknown

	fieldW, fieldH float64
	sx, sy         float64

	offCol, offRow int // Cells skipped before the canvas, for centering

	out   strings.Builder
	cross []float64 // Scanline intersections, reused between fills
}

// NewCanvas covers cols x rows terminal cells and maps a fieldW x fieldH
// field onto them.
func NewCanvas(cols, rows int, fieldW, fieldH float64) *Canvas {
	c := &Canvas{fieldW: fieldW, fieldH: fieldH}
	c.Resize(cols, rows)
	return c
}

// Resize changes the covered terminal area and clears the buffer.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols != c.cols || rows != c.rows {
		c.cols, c.rows, c.pixH = cols, rows, rows*2
		c.pixels = make([]bool, c.pixH*cols)
		c.shown = make([]rune, cols*rows)
	}
	c.sx = float64(c.cols) / c.fieldW
	c.sy = float64(c.pixH) / c.fieldH
}

// SetOffset places the canvas at terminal cell (col+1, row+1). Moving the
// canvas forces a full redraw.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offCol || row != c.offRow {
		c.ForceRedraw()
	}
	c.offCol, c.offRow = col, row
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	clear(c.shown)
}

// MarkDirty records that overlay text covered n cells starting at the
// 1-based canvas cell (col, row), so the next Render repaints them.
func (c *Canvas) MarkDirty(col, row, n int) {
	if row < 1 || row > c.rows {
		return
	}
	for x := max(col, 1); x < min(col+n, c.cols+1); x++ {
		c.shown[(row-1)*c.cols+x-1] = 0
	}
}

// Offset returns the centering offset.
func (c *Canvas) Offset() (col, row int) {
	return c.offCol, c.offRow
}

// Size returns the covered terminal area in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.sx)), int(math.Round(y * c.sy))
}

func (c *Canvas) set(px, py int) {
	if px < 0 || px >= c.cols || py < 0 || py >= c.pixH {
		return
	}
	c.pixels[py*c.cols+px] = true
}

// At reports whether the pixel covering field position (x, y) is set.
func (c *Canvas) At(x, y float64) bool {
	px, py := c.toPixel(x, y)
	if px < 0 || px >= c.cols || py < 0 || py >= c.pixH {
		return false
	}
	return c.pixels[py*c.cols+px]
}

// Plot sets the pixel covering field position (x, y).
func (c *Canvas) Plot(x, y float64) {
	c.set(c.toPixel(x, y))
}

// Line draws a Bresenham line between two field positions.
func (c *Canvas) Line(a, b Point) {
	x0, y0 := c.toPixel(a.X, a.Y)
	x1, y1 := c.toPixel(b.X, b.Y)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	stepX, stepY := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += stepX
		}
		if e2 <= dx {
			e += dx
			y0 += stepY
		}
	}
}

// FillRect fills an axis-aligned rectangle. Non-empty rectangles always
// cover at least one pixel.
func (c *Canvas) FillRect(r physics.Rect) {
	x0 := int(math.Floor(r.X * c.sx))
	y0 := int(math.Floor(r.Y * c.sy))
	x1 := max(int(math.Ceil((r.X+r.W)*c.sx)), x0+1)
	y1 := max(int(math.Ceil((r.Y+r.H)*c.sy)), y0+1)
	for py := max(y0, 0); py < min(y1, c.pixH); py++ {
		for px := max(x0, 0); px < min(x1, c.cols); px++ {
			c.pixels[py*c.cols+px] = true
		}
	}
}

// FillCircle fills a disc of radius r around (x, y). Small discs degrade to
// a single pixel rather than vanishing.
func (c *Canvas) FillCircle(x, y, r float64) {
	cx, cy := x*c.sx, y*c.sy
	rx, ry := r*c.sx, r*c.sy
	c.Plot(x, y)
	if rx <= 0 || ry <= 0 {
		return
	}
	for py := int(math.Floor(cy - ry)); py <= int(math.Ceil(cy+ry)); py++ {
		ny := (float64(py) + 0.5 - cy) / ry
		if ny*ny > 1 {
			continue
		}
		half := rx * math.Sqrt(1-ny*ny)
		for px := int(math.Ceil(cx - half - 0.5)); px <= int(math.Floor(cx+half-0.5)); px++ {
			c.set(px, py)
		}
	}
}

// FillPolygon scanline-fills a closed polygon and strokes its outline.
func (c *Canvas) FillPolygon(pts []Point) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		minY, maxY = math.Min(minY, p.Y*c.sy), math.Max(maxY, p.Y*c.sy)
	}
	for py := int(math.Floor(minY)); py <= int(math.Ceil(maxY)); py++ {
		scan := float64(py) + 0.5
		c.cross = c.cross[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			ay, by := a.Y*c.sy, b.Y*c.sy
			if (ay <= scan) == (by <= scan) {
				continue
			}
			t := (scan - ay) / (by - ay)
			c.cross = append(c.cross, (a.X+t*(b.X-a.X))*c.sx)
		}
		slices.Sort(c.cross)
		for i := 0; i+1 < len(c.cross); i += 2 {
			for px := int(math.Ceil(c.cross[i])); px <= int(math.Floor(c.cross[i+1])); px++ {
				c.set(px, py)
			}
		}
	}
	for i := range pts {
		c.Line(pts[i], pts[(i+1)%len(pts)])
	}
}

// Cell converts a field position to a 1-based terminal cell inside the
// canvas, before the centering offset.
func (c *Canvas) Cell(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

// Render writes every cell whose glyph changed since the previous Render.
func (c *Canvas) Render(w io.Writer) error {
	c.out.Reset()
	var num [20]byte
	for row := range c.rows {
		top := c.pixels[row*2*c.cols : (row*2+1)*c.cols]
		bottom := c.pixels[(row*2+1)*c.cols : (row*2+2)*c.cols]
		for col := range c.cols {
			var glyph rune
			switch {
			case top[col] && bottom[col]:
				glyph = BlockFull
			case top[col]:
				glyph = BlockUpperHalf
			case bottom[col]:
				glyph = BlockLowerHalf
			default:
				glyph = ' '
			}
			if c.shown[row*c.cols+col] == glyph {
				continue
			}
			c.shown[row*c.cols+col] = glyph
			c.out.WriteString("\033[")
			c.out.Write(strconv.AppendInt(num[:0], int64(row+1+c.offRow), 10))
			c.out.WriteByte(';')
			c.out.Write(strconv.AppendInt(num[:0], int64(col+1+c.offCol), 10))
			c.out.WriteByte('H')
			c.out.WriteRune(glyph)
		}
	}
	return writeChunked(w, c.out.String())
}

// RenderBorder frames the canvas when the centering offset leaves room for
// it on both axes.
func (c *Canvas) RenderBorder(w io.Writer) error {
	if c.offCol < 1 || c.offRow < 1 {
		return nil
	}
	var b strings.Builder
	bar := strings.Repeat("─", c.cols)
	left, right := c.offCol, c.offCol+c.cols+1
	b.WriteString(cup(c.offRow, left) + "┌" + bar + "┐")
	for row := c.offRow + 1; row <= c.offRow+c.rows; row++ {
		b.WriteString(cup(row, left) + "│" + cup(row, right) + "│")
	}
	b.WriteString(cup(c.offRow+c.rows+1, left) + "└" + bar + "┘")
	return writeChunked(w, b.String())
}

func writeChunked(w io.Writer, data string) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(w, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func cup(row, col int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
