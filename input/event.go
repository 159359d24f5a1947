// Package input decodes a raw terminal input byte stream into keyboard,
// mouse, paste, focus, and resize events. Grounded on the byte-at-a-time
// state-machine shape of the ANSI parsers in the retrieval pack
// (stateGround/stateEscape/stateCSI/stateOSC enums, UTF-8 continuation
// buffering) repurposed to *emit* structured events rather than *mutate*
// a terminal emulator's screen buffer.
package input

// Kind discriminates the variant carried by an Event.
type Kind uint8

const (
	// None is returned alongside a fully-consumed but non-terminal chunk
	// (e.g. the bracketed-paste start marker): progress was made, but no
	// event is ready yet.
	None Kind = iota
	KeyKind
	MouseKind
	PasteKind
	FocusGainedKind
	FocusLostKind
	ResizeKind
)

// Event is the sum type the parser produces. Only the field matching Kind
// is meaningful.
type Event struct {
	Kind   Kind
	Key    Key
	Mouse  Mouse
	Paste  string
	Resize Resize
}

// Modifiers is a bitset of keyboard modifiers.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

// Has reports whether m contains mod.
func (m Modifiers) Has(mod Modifiers) bool { return m&mod != 0 }

// KeyCode identifies a non-character key, or Char for a literal codepoint.
type KeyCode uint8

const (
	KeyChar KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Key is a single keyboard event.
type Key struct {
	Code      KeyCode
	Char      rune
	Modifiers Modifiers
}

// IsCtrlC reports whether k is Ctrl+C, the conventional interrupt key.
func (k Key) IsCtrlC() bool {
	return k.Code == KeyChar && (k.Char == 'c' || k.Char == 'C') && k.Modifiers.Has(ModCtrl)
}

// MouseEventKind discriminates the mouse action carried by a Mouse event.
type MouseEventKind uint8

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMotion
	MouseScrollUp
	MouseScrollDown
)

// MouseButton identifies which button a press/release/motion event
// pertains to; ButtonNone is used for scroll events and motion-only
// reports with no button held.
type MouseButton uint8

const (
	ButtonLeft MouseButton = iota
	ButtonMiddle
	ButtonRight
	ButtonNone
)

// Mouse is a single SGR mouse-protocol event, 0-based coordinates.
type Mouse struct {
	Kind      MouseEventKind
	Button    MouseButton
	X, Y      int
	Modifiers Modifiers
}

// Resize carries a host-synthesized terminal resize; it is never produced
// by parsing bytes, only constructed by the caller and fed through the
// same Event sum type for a uniform consumer surface.
type Resize struct {
	Width, Height int
}

// NewResizeEvent builds a ResizeKind event for the host to hand to whatever
// consumes parser output, keeping resize notifications on the same Event
// channel as parsed input.
func NewResizeEvent(width, height int) Event {
	return Event{Kind: ResizeKind, Resize: Resize{Width: width, Height: height}}
}
