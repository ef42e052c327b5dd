package tui

import "strings"

// sparkLevels holds the block elements for single-row sparklines, lowest
// to highest.
var sparkLevels = [...]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer is a fixed-capacity circular buffer for float64 samples.
// The zero value is not usable; construct with NewRingBuffer.
type RingBuffer struct {
	buf   []float64
	start int
	n     int
}

// NewRingBuffer creates a ring buffer with the given capacity (minimum 1).
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{buf: make([]float64, capacity)}
}

// Push appends a sample, evicting the oldest when full.
func (r *RingBuffer) Push(v float64) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = v
		r.n++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

// Len returns the number of stored samples.
func (r *RingBuffer) Len() int { return r.n }

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int { return len(r.buf) }

// Last returns the most recent sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.n == 0 {
		return 0
	}
	return r.buf[(r.start+r.n-1)%len(r.buf)]
}

// Slice returns the samples oldest-first, or nil when empty.
func (r *RingBuffer) Slice() []float64 {
	if r.n == 0 {
		return nil
	}
	out := make([]float64, 0, r.n)
	for i := 0; i < r.n; i++ {
		out = append(out, r.buf[(r.start+i)%len(r.buf)])
	}
	return out
}

// Resize changes the capacity, keeping the newest samples that fit.
func (r *RingBuffer) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == len(r.buf) {
		return
	}
	kept := r.Slice()
	if len(kept) > capacity {
		kept = kept[len(kept)-capacity:]
	}
	r.buf = make([]float64, capacity)
	r.start = 0
	r.n = copy(r.buf, kept)
}

// Reset discards all samples.
func (r *RingBuffer) Reset() {
	r.start = 0
	r.n = 0
}

// RenderSparkline maps percentage values (0..100) onto a row of block
// elements, one rune per sample.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(values) * 3)
	for _, v := range values {
		b.WriteRune(sparkLevels[int(clampPercent(v)/100.0*7.0)])
	}
	return b.String()
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// brailleBase is the empty braille cell; dot bits are ORed onto it.
const brailleBase = 0x2800

// brailleBits holds the dot bit for each (column, row) of the 2x4 grid
// inside one braille character.
var brailleBits = [2][4]int{
	{0x01, 0x02, 0x04, 0x40}, // left dot column
	{0x08, 0x10, 0x20, 0x80}, // right dot column
}

// RenderBrailleChart plots percentage values (0..100) as a braille line
// chart of the given character dimensions. Consecutive samples are joined
// by vertical dot runs so sparse histories still read as a line. Samples
// are right-aligned; at most width*2 of the newest samples are shown.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}

	dotCols := width * 2
	dotRows := rows * 4

	if len(values) > dotCols {
		values = values[len(values)-dotCols:]
	}
	offset := dotCols - len(values)

	grid := make([][]int, rows)
	for i := range grid {
		grid[i] = make([]int, width)
	}

	set := func(col, row int) {
		if col < 0 || col >= dotCols || row < 0 || row >= dotRows {
			return
		}
		grid[row/4][col/2] |= brailleBits[col%2][row%4]
	}

	// level maps a value to its dot row, 0 at the top.
	level := func(v float64) int {
		return dotRows - 1 - int(clampPercent(v)/100.0*float64(dotRows-1))
	}

	prev := level(values[0])
	for i, v := range values {
		cur := level(v)
		col := offset + i
		set(col, cur)
		for r := min(prev, cur) + 1; r < max(prev, cur); r++ {
			set(col, r)
		}
		prev = cur
	}

	out := make([]string, rows)
	for i, cells := range grid {
		runes := make([]rune, width)
		for j, cell := range cells {
			runes[j] = rune(brailleBase + cell)
		}
		out[i] = string(runes)
	}
	return out
}
