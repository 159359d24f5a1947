// Package render wires the cell buffer, diff engine, and ANSI writer into
// the front/back double-buffered data flow described in spec §2: mutation
// calls fill a back buffer, Present diffs it against front, serializes the
// diff, writes it to a sink, and swaps the buffers. Grounded on screen.go's
// Screen (front/back Buffer pair, Flush/FlushFull) and pool.go/
// buffer_pool.go's double-buffer-swap pattern, narrowed to a single
// synchronous Present call per §5 — no background clearer goroutine, since
// the core is required to be single-threaded cooperative.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/kungfusheep/opentuigo/ansiwriter"
	"github.com/kungfusheep/opentuigo/cellbuf"
	"github.com/kungfusheep/opentuigo/color"
	"github.com/kungfusheep/opentuigo/diff"
	textunicode "github.com/kungfusheep/opentuigo/unicode"
)

// Debug gates diagnostic output to stderr, mirroring screen.go's
// debugFlush/TUI_DEBUG_FLUSH convention under this repository's own env
// var name.
var Debug = os.Getenv("OPENTUI_GO_DEBUG") != ""

// Options configures a Renderer. The zero value is sensible: TrueColor,
// WcWidth, and the spec's default 0.5 full-redraw threshold.
type Options struct {
	ColorMode       ansiwriter.ColorMode
	WidthMethod     textunicode.WidthMethod
	Background      color.Rgba
	RedrawThreshold float64 // 0 means the spec default of 0.5
	Pool            *textunicode.Pool
}

func (o Options) threshold() float64 {
	if o.RedrawThreshold <= 0 {
		return 0.5
	}
	return o.RedrawThreshold
}

// Renderer owns the front/back cellbuf.Buffer pair and the ansiwriter.Writer
// state machine. Callers draw into Back() between Present calls; Present
// diffs back against front, serializes the result, writes it to sink, and
// swaps the buffers so front == back afterward (§3's Frame state
// invariant).
type Renderer struct {
	front, back       *cellbuf.Buffer
	writer            *ansiwriter.Writer
	opts              Options
	pendingFullRedraw bool // set by Resize: no valid diff exists across a dimension change
}

// New creates a Renderer with a width x height frame.
func New(width, height int, opts Options) *Renderer {
	front := cellbuf.NewWithBackground(width, height, opts.Background)
	back := cellbuf.NewWithBackground(width, height, opts.Background)
	if opts.Pool != nil {
		front.SetPool(opts.Pool, opts.WidthMethod)
		back.SetPool(opts.Pool, opts.WidthMethod)
	}
	return &Renderer{
		front:  front,
		back:   back,
		writer: ansiwriter.New(opts.ColorMode),
		opts:   opts,
	}
}

// Back returns the back buffer for drawing. Buffer mutation calls (Set,
// DrawText, DrawBox, ...) target this buffer; changes are invisible until
// the next Present.
func (r *Renderer) Back() *cellbuf.Buffer { return r.back }

// Front returns the front buffer, reflecting what has actually been
// written to the sink as of the last Present.
func (r *Renderer) Front() *cellbuf.Buffer { return r.front }

// Resize replaces both buffers with width x height empty buffers and
// forces the next Present to do a full redraw (there is no valid diff
// across a dimension change).
func (r *Renderer) Resize(width, height int) {
	r.front = cellbuf.NewWithBackground(width, height, r.opts.Background)
	r.back = cellbuf.NewWithBackground(width, height, r.opts.Background)
	if r.opts.Pool != nil {
		r.front.SetPool(r.opts.Pool, r.opts.WidthMethod)
		r.back.SetPool(r.opts.Pool, r.opts.WidthMethod)
	}
	r.writer.Invalidate()
	r.pendingFullRedraw = true
}

// Present diffs back against front, writes the minimal ANSI sequence (or a
// full redraw, per diff.ShouldFullRedraw) to sink, and swaps the buffers so
// front == back. Returns the diff stats for callers that want them (e.g.
// for FlushStats-style telemetry).
func (r *Renderer) Present(sink io.Writer) (diff.Result, error) {
	result, err := diff.Compute(r.front, r.back)
	if err != nil {
		return diff.Result{}, err
	}

	total := r.back.Width() * r.back.Height()
	r.writer.Reset()
	if r.pendingFullRedraw || diff.ShouldFullRedrawThreshold(result.ChangedCells, total, r.opts.threshold()) {
		r.writer.Invalidate()
		r.writer.WriteFullRedraw(r.back)
		r.pendingFullRedraw = false
	} else {
		r.writer.WriteSpans(r.back, result)
	}

	if Debug {
		fmt.Fprintf(os.Stderr, "render: changed=%d/%d spans=%d bytes=%d\n",
			result.ChangedCells, total, len(result.Spans), len(r.writer.Bytes()))
	}

	if _, err := sink.Write(r.writer.Bytes()); err != nil {
		return result, fmt.Errorf("render: write: %w", err)
	}

	r.front, r.back = r.back, r.front
	// The newly-current back buffer is the buffer that was front before this
	// swap (i.e. the second-to-last presented frame): clear it so the
	// caller always draws onto a fresh buffer next frame, mirroring
	// BufferPool.Swap's "already cleared and ready to use" contract minus
	// the async clearer goroutine §5 forbids for the core.
	r.back.Clear(r.opts.Background)
	return result, nil
}
