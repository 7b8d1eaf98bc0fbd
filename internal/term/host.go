package term

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/udisondev/chasedemo/internal/input"
	"github.com/udisondev/chasedemo/internal/model"
)

// Two columns per scene unit keep the ground roughly square in a terminal.
const (
	colsPerUnit = 2
	rowsPerUnit = 1
	hudRows     = 3
)

var (
	groundStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen).Background(tcell.ColorBlack)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Background(tcell.ColorBlack).Bold(true)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	sayStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
)

// Host draws the scene top-down on a tcell screen and feeds key presses into
// an input.State. It also displays NPC commentary on the bottom line.
type Host struct {
	screen     tcell.Screen
	groundSize float64

	mu       sync.Mutex
	lastLine string
}

// New creates a host over an initialized screen. groundSize is the side of
// the square ground in scene units, centered on the origin.
func New(screen tcell.Screen, groundSize float64) *Host {
	return &Host{
		screen:     screen,
		groundSize: groundSize,
	}
}

// Display keeps text for the commentary line. Implements commentary.Sink.
func (h *Host) Display(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastLine = text
}

// LastLine returns the commentary currently shown.
func (h *Host) LastLine() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastLine
}

// Draw renders one frame.
func (h *Host) Draw(s model.Snapshot) {
	h.screen.Clear()
	h.drawGround()

	for _, npc := range s.Npcs {
		if x, y, ok := h.worldToScreen(npc.Position); ok {
			glyph, style := npcGlyph(npc.State)
			h.screen.SetContent(x, y, glyph, nil, style)
		}
	}
	if x, y, ok := h.worldToScreen(s.Player); ok {
		h.screen.SetContent(x, y, '@', nil, playerStyle)
	}

	h.drawHUD(s)
	h.screen.Show()
}

func (h *Host) groundCells() (cols, rows int) {
	return int(h.groundSize*colsPerUnit) + 1, int(h.groundSize*rowsPerUnit) + 1
}

func (h *Host) drawGround() {
	cols, rows := h.groundCells()
	w, sh := h.screen.Size()
	for y := 0; y < rows && y < sh-hudRows; y++ {
		for x := 0; x < cols && x < w; x++ {
			h.screen.SetContent(x, y, '.', nil, groundStyle)
		}
	}
}

// worldToScreen projects the X/Z ground plane: +X right, +Z up.
// ok is false outside the ground or the visible area.
func (h *Host) worldToScreen(p model.Vec3) (x, y int, ok bool) {
	half := h.groundSize / 2
	if math.Abs(p.X) > half || math.Abs(p.Z) > half {
		return 0, 0, false
	}

	x = int(math.Round((p.X + half) * colsPerUnit))
	y = int(math.Round((half - p.Z) * rowsPerUnit))

	w, sh := h.screen.Size()
	if x < 0 || x >= w || y < 0 || y >= sh-hudRows {
		return 0, 0, false
	}
	return x, y, true
}

func (h *Host) drawHUD(s model.Snapshot) {
	w, sh := h.screen.Size()
	if sh < hudRows {
		return
	}

	status := fmt.Sprintf(" tick %d  player (%.1f, %.1f)", s.Tick, s.Player.X, s.Player.Z)
	for _, npc := range s.Npcs {
		status += fmt.Sprintf("  %s: %s %.1fm", npc.Name, npc.State, npc.Position.Distance(s.Player))
	}
	h.drawText(0, sh-3, w, status, hudStyle)
	h.drawText(0, sh-2, w, " WASD/arrows move  space strike  q quit", hudStyle)
	h.drawText(0, sh-1, w, runewidth.Truncate(h.LastLine(), w, "…"), sayStyle)
}

// drawText writes text at (x, y) clipped to width cells, padding with style.
func (h *Host) drawText(x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > x+width {
			break
		}
		h.screen.SetContent(col, y, r, nil, style)
		col += rw
	}
	for ; col < x+width; col++ {
		h.screen.SetContent(col, y, ' ', nil, style)
	}
}

func npcGlyph(s model.State) (rune, tcell.Style) {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	switch s {
	case model.StateChasing:
		return 'B', base.Foreground(tcell.ColorYellow).Bold(true)
	case model.StateAttacking:
		return 'B', base.Foreground(tcell.ColorRed).Bold(true)
	default:
		return 'b', base.Foreground(tcell.ColorGray)
	}
}

// PumpInput reads key events into keys until ctx is canceled, the screen is
// finalized, or the player quits.
func (h *Host) PumpInput(ctx context.Context, keys *input.State) error {
	stop := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := h.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventResize:
			h.screen.Sync()
		case *tcell.EventKey:
			if handleKey(ev, keys) {
				keys.RequestQuit()
				return nil
			}
		}
	}
}

// handleKey maps one key event; returns true when the player asked to quit.
func handleKey(ev *tcell.EventKey, keys *input.State) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		keys.Press(input.KeyForward)
	case tcell.KeyDown:
		keys.Press(input.KeyBack)
	case tcell.KeyLeft:
		keys.Press(input.KeyLeft)
	case tcell.KeyRight:
		keys.Press(input.KeyRight)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			keys.Press(input.KeyForward)
		case 's', 'S':
			keys.Press(input.KeyBack)
		case 'a', 'A':
			keys.Press(input.KeyLeft)
		case 'd', 'D':
			keys.Press(input.KeyRight)
		case ' ':
			keys.RequestStrike()
		case 'q', 'Q':
			return true
		}
	}
	return false
}
