package terminal

import (
	"unicode/utf8"

	"drag-sandbox/internal/commands"
	"drag-sandbox/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	barHeight = 36
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 12
	lineHeight       = fontSize + 4
	maxLineLen       = 160
)

var (
	barColor    = rl.NewColor(40, 40, 40, 255)
	lineColor   = rl.NewColor(80, 80, 80, 255)
	logBgColor  = rl.NewColor(24, 24, 24, 220)
)

// Console is the command bar at the bottom of the screen, toggled with the backtick key.
// Lines starting with "/" run through the command registry; everything typed is echoed to the log.
type Console struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
}

// New returns a closed console that logs to log and runs commands through reg.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// IsOpen reports whether the console is visible and capturing the keyboard.
func (c *Console) IsOpen() bool {
	return c.open
}

// Update handles the toggle key and, when open, typing, backspace and enter. Call once per frame.
func (c *Console) Update() {
	if rl.IsKeyPressed(rl.KeyGrave) {
		c.open = !c.open
		// drop the backtick itself from the char queue
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	if !c.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		c.inputBuf += rl.GetClipboardText()
	} else {
		for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
			c.inputBuf += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		c.Submit(c.inputBuf)
		c.inputBuf = ""
	}
}

// Submit echoes line to the log and runs it if it is a command.
func (c *Console) Submit(line string) {
	c.log.Log(prompt + line)
	ok, err := c.reg.ExecuteLine(line)
	switch {
	case !ok:
		c.log.Log("not a command; try /help")
	case err != nil:
		c.log.Log(err.Error())
	}
}

// Draw draws the bar and the most recent log lines above it when open.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	barY := int32(rl.GetScreenHeight()) - barHeight

	logHeight := int32(maxLinesOnScreen * lineHeight)
	logY := barY - logHeight
	if logY < 0 {
		logHeight, logY = barY, 0
	}
	rl.DrawRectangle(0, logY, screenW, logHeight, logBgColor)

	lines := c.log.Lines()
	start := max(len(lines)-maxLinesOnScreen, 0)
	for i, line := range lines[start:] {
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		rl.DrawText(line, padding, logY+int32(i*lineHeight)+padding, fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, barY, screenW, barHeight, barColor)
	rl.DrawRectangle(0, barY, screenW, 1, lineColor)
	rl.DrawText(prompt+c.inputBuf+"|", padding, barY+padding, fontSize, rl.White)
}
