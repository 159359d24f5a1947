// Package diff computes the minimal set of changed cells between two
// consecutive frames of a cellbuf.Buffer, as contiguous per-row spans
// ready for ansiwriter to serialize.
package diff

import (
	"fmt"

	"github.com/kungfusheep/opentuigo/cellbuf"
)

// Span is a contiguous run of changed columns on one row, [StartX, EndX).
type Span struct {
	Y              int
	StartX, EndX   int
}

// Result is the outcome of a Compute call: the dirty spans in row-major
// order and the total number of changed cells.
type Result struct {
	Spans        []Span
	ChangedCells int
}

// Compute returns the dirty spans turning front into back. Grounded on
// screen.go's Flush double loop (per-row skip, per-cell compare, run
// accumulation), generalized from "diff and immediately write" into
// "diff and return the spans". Mismatched dimensions are a programmer
// error and the contract is to fail loudly (invariant: "mismatched
// buffer sizes in diff ... fail loudly").
func Compute(front, back *cellbuf.Buffer) (Result, error) {
	fw, fh := front.Size()
	bw, bh := back.Size()
	if fw != bw || fh != bh {
		return Result{}, fmt.Errorf("diff: mismatched buffer sizes: front=%dx%d back=%dx%d", fw, fh, bw, bh)
	}

	var result Result
	for y := 0; y < fh; y++ {
		spanStart := -1
		for x := 0; x < fw; x++ {
			fc, _ := front.Get(x, y)
			bc, _ := back.Get(x, y)
			if fc.Equal(bc) {
				if spanStart >= 0 {
					result.Spans = append(result.Spans, Span{Y: y, StartX: spanStart, EndX: x})
					spanStart = -1
				}
				continue
			}
			result.ChangedCells++
			if spanStart < 0 {
				spanStart = x
			}
		}
		if spanStart >= 0 {
			result.Spans = append(result.Spans, Span{Y: y, StartX: spanStart, EndX: fw})
		}
	}
	return result, nil
}

// ShouldFullRedraw reports whether the number of changed cells relative to
// totalCells exceeds the redraw threshold (50% by default), at which point
// a full repaint is cheaper than emitting many small diff spans.
func ShouldFullRedraw(changedCells, totalCells int) bool {
	return ShouldFullRedrawThreshold(changedCells, totalCells, 0.5)
}

// ShouldFullRedrawThreshold is the configurable variant of
// ShouldFullRedraw.
func ShouldFullRedrawThreshold(changedCells, totalCells int, threshold float64) bool {
	if totalCells <= 0 {
		return false
	}
	return float64(changedCells)/float64(totalCells) > threshold
}
