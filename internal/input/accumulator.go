package input

import "github.com/go-gl/mathgl/mgl64"

// Button is a pointer button. Left is the primary button.
type Button int

const (
	Left Button = iota
	Right
	Middle
	buttonCount
)

// String returns the config name of the button.
func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	case Middle:
		return "middle"
	}
	return "none"
}

// ParseButton maps a config name to a Button. ok is false for unknown names.
func ParseButton(name string) (Button, bool) {
	for b := Left; b < buttonCount; b++ {
		if b.String() == name {
			return b, true
		}
	}
	return 0, false
}

// Frame is one tick worth of pointer input.
type Frame struct {
	Motion mgl64.Vec2 // summed pointer motion in pixels, +Y down
	Scroll float64    // summed wheel ticks, positive away from the user
	held   [buttonCount]bool
}

// NewFrame builds a frame directly, for replaying recorded input.
func NewFrame(motion mgl64.Vec2, scroll float64, held ...Button) Frame {
	f := Frame{Motion: motion, Scroll: scroll}
	for _, b := range held {
		if b >= 0 && b < buttonCount {
			f.held[b] = true
		}
	}
	return f
}

// Held reports whether b was down when the frame was consumed.
func (f Frame) Held(b Button) bool {
	if b < 0 || b >= buttonCount {
		return false
	}
	return f.held[b]
}

// IsZero reports whether the frame carries no motion and no scroll.
func (f Frame) IsZero() bool {
	return f.Motion == (mgl64.Vec2{}) && f.Scroll == 0
}

// Accumulator collects raw pointer events between ticks. Every event is summed;
// Consume hands the totals to the camera controller and starts over.
// Not safe for concurrent use: it lives on the main loop like the rest of the tick.
type Accumulator struct {
	frame Frame
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// AddMotion adds a pointer motion delta.
func (a *Accumulator) AddMotion(dx, dy float64) {
	a.frame.Motion = a.frame.Motion.Add(mgl64.Vec2{dx, dy})
}

// AddScroll adds a wheel delta.
func (a *Accumulator) AddScroll(delta float64) {
	a.frame.Scroll += delta
}

// SetButton records whether b is currently down.
func (a *Accumulator) SetButton(b Button, down bool) {
	if b < 0 || b >= buttonCount {
		return
	}
	a.frame.held[b] = down
}

// Consume returns everything accumulated since the last call and resets motion
// and scroll to zero. Button state carries over.
func (a *Accumulator) Consume() Frame {
	f := a.frame
	a.frame.Motion = mgl64.Vec2{}
	a.frame.Scroll = 0
	return f
}
