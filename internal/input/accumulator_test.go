package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAccumulatorSumsEvents(t *testing.T) {
	a := NewAccumulator()
	a.AddMotion(3, -1)
	a.AddMotion(2, 4)
	a.AddScroll(1)
	a.AddScroll(-0.5)

	f := a.Consume()
	if f.Motion != (mgl64.Vec2{5, 3}) {
		t.Errorf("Motion = %v, want [5 3]", f.Motion)
	}
	if f.Scroll != 0.5 {
		t.Errorf("Scroll = %v, want 0.5", f.Scroll)
	}
}

func TestAccumulatorResetsAfterConsume(t *testing.T) {
	a := NewAccumulator()
	a.AddMotion(10, 10)
	a.AddScroll(2)
	a.SetButton(Right, true)
	_ = a.Consume()

	f := a.Consume()
	if !f.IsZero() {
		t.Errorf("second Consume = %+v, want zero deltas", f)
	}
	if !f.Held(Right) {
		t.Error("Held(Right) = false after consume, want button state to persist")
	}
}

func TestAccumulatorNoEvents(t *testing.T) {
	f := NewAccumulator().Consume()
	if !f.IsZero() {
		t.Errorf("Consume on empty accumulator = %+v, want zero", f)
	}
	for _, b := range []Button{Left, Right, Middle} {
		if f.Held(b) {
			t.Errorf("Held(%v) = true, want false", b)
		}
	}
}

func TestButtonOutOfRange(t *testing.T) {
	a := NewAccumulator()
	a.SetButton(Button(42), true)
	if a.Consume().Held(Button(42)) {
		t.Error("Held(42) = true, want false")
	}
}

func TestParseButton(t *testing.T) {
	tests := []struct {
		name   string
		want   Button
		wantOK bool
	}{
		{"left", Left, true},
		{"right", Right, true},
		{"middle", Middle, true},
		{"none", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseButton(tt.name)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("ParseButton(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
