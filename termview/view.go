package termview

import (
	"fmt"
	"log/slog"

	"github.com/MobRulesGames/isopick/console"
	"github.com/MobRulesGames/isopick/logging"
	"github.com/MobRulesGames/isopick/perspective"
	"github.com/MobRulesGames/isopick/scene"
	"github.com/MobRulesGames/isopick/tilemap"
	"github.com/gdamore/tcell/v2"
)

type Options struct {
	// World units covered by one terminal column.
	Scale float32

	// Rows at the bottom of the screen given over to the log. Zero hides it.
	ConsoleRows int
}

func DefaultOptions() Options {
	return Options{
		Scale:       2,
		ConsoleRows: 6,
	}
}

// Terminal cells are about twice as tall as they are wide.
const cellAspect = 2

// View draws a scene into a terminal by resolving the middle of every
// character cell, and turns mouse input into pointer events.
type View struct {
	screen  tcell.Screen
	scene   *scene.Scene
	console *console.Console
	opts    Options

	focus perspective.Point

	events []perspective.ScreenPoint
	paint  bool
	clear  bool

	hits []scene.Hit
}

// The console may be nil.
func MakeView(screen tcell.Screen, s *scene.Scene, c *console.Console, opts Options) (*View, error) {
	v := &View{
		screen:  screen,
		scene:   s,
		console: c,
		opts:    opts,
		focus:   s.Projection().Camera().Focus,
	}
	if err := v.Resize(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *View) Scene() *scene.Scene {
	return v.scene
}

// Swaps in a reloaded scene, keeping the view's camera. On error the old
// scene stays.
func (v *View) SetScene(s *scene.Scene) error {
	old := v.scene
	v.scene = s
	if err := v.Resize(); err != nil {
		v.scene = old
		return err
	}
	v.hits = nil
	return nil
}

func (v *View) mapRows() int {
	_, rows := v.screen.Size()
	rows -= v.consoleRows() + 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (v *View) consoleRows() int {
	if v.console == nil {
		return 0
	}
	return v.opts.ConsoleRows
}

// Fits the scene's camera to the current terminal size.
func (v *View) Resize() error {
	cols, _ := v.screen.Size()
	if cols < 1 {
		cols = 1
	}
	return v.scene.SetCamera(perspective.Camera{
		Width:       cols,
		Height:      v.mapRows(),
		Focus:       v.focus,
		Scale:       v.opts.Scale,
		PixelAspect: cellAspect,
	})
}

func cellCenter(x, y int) perspective.ScreenPoint {
	return perspective.ScreenPoint{X: float32(x) + 0.5, Y: float32(y) + 0.5}
}

// Queues up a terminal event for the next Step. Reports false once the user
// has asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		v.events = append(v.events, cellCenter(x, y))
		buttons := ev.Buttons()
		if buttons&tcell.Button1 != 0 {
			v.paint = true
		}
		if buttons&tcell.Button2 != 0 {
			v.clear = true
		}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			if v.console != nil {
				v.console.ScrollLeft(10)
			}
		case tcell.KeyRight:
			if v.console != nil {
				v.console.ScrollRight(10)
			}
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}

	case *tcell.EventResize:
		if err := v.Resize(); err != nil {
			logging.Error("couldn't resize", "err", err)
		}
	}
	return true
}

// Runs one tick of the scene with the queued events, applies any clicks to
// the topmost hit and redraws.
func (v *View) Step() {
	v.hits = v.scene.Tick(v.events)
	v.events = v.events[:0]

	if top, ok := scene.Topmost(v.hits); ok {
		switch {
		case v.clear:
			if err := top.Tilemap.Remove(top.Coord); err != nil {
				logging.Error("couldn't clear cell", "tilemap", top.Label, "coord", top.Coord, "err", err)
			}
		case v.paint:
			id := v.scene.NextOccupant()
			if err := top.Tilemap.Set(top.Coord, id); err != nil {
				logging.Error("couldn't paint cell", "tilemap", top.Label, "coord", top.Coord, "err", err)
			} else {
				logging.Info("painted", "tilemap", top.Label, "coord", top.Coord, "id", id)
			}
		}
		if v.paint || v.clear {
			v.hits = v.scene.Resolve(v.scene.Tracker().Current())
		}
	}
	v.paint, v.clear = false, false

	if v.console != nil {
		v.console.Think()
	}
	v.Draw()
}

func (v *View) Hits() []scene.Hit {
	return v.hits
}

var layerColors = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorTeal,
	tcell.ColorOlive,
	tcell.ColorPurple,
}

func layerStyle(tm *tilemap.Tilemap) tcell.Style {
	color := layerColors[((tm.Layer%len(layerColors))+len(layerColors))%len(layerColors)]
	return tcell.StyleDefault.Foreground(color)
}

// Occupied cells cycle through these so that neighbours look different.
const occupantGlyphs = "abcdefghijklmnopqrstuvwxyz0123456789"

func glyphFor(id tilemap.OccupantID) rune {
	return rune(occupantGlyphs[int(id%tilemap.OccupantID(len(occupantGlyphs)))])
}

// Picks what to show at a world point: the topmost occupied cell, or a dot if
// the point is only over empty cells.
func (v *View) cellAt(p perspective.Point, hover *scene.Hit) (rune, tcell.Style) {
	ch, style := ' ', tcell.StyleDefault
	v.scene.Each(func(tm *tilemap.Tilemap) {
		c, ok := tm.Pick(p)
		if !ok {
			return
		}
		if id, occupied := tm.Get(c); occupied {
			ch, style = glyphFor(id), layerStyle(tm)
		} else if ch == ' ' {
			ch, style = '.', tcell.StyleDefault.Foreground(tcell.ColorGray)
		}
		if hover != nil && hover.Tilemap == tm && hover.Coord == c {
			style = style.Reverse(true)
		}
	})
	return ch, style
}

func (v *View) drawText(x, y int, text string, style tcell.Style) {
	cols, _ := v.screen.Size()
	for _, r := range text {
		if x >= cols {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *View) status() string {
	top, ok := scene.Topmost(v.hits)
	if !ok {
		return "nothing under the pointer"
	}
	if !top.Occupied {
		return fmt.Sprintf("%s %v empty", top.Label, top.Coord)
	}
	return fmt.Sprintf("%s %v occupant %d", top.Label, top.Coord, top.Occupant)
}

func consoleStyle(line string) tcell.Style {
	switch console.Severity(line) {
	case slog.LevelError:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case slog.LevelWarn:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	}
	return tcell.StyleDefault
}

func (v *View) Draw() {
	v.screen.Clear()
	cols, _ := v.screen.Size()
	rows := v.mapRows()

	var hover *scene.Hit
	if top, ok := scene.Topmost(v.hits); ok {
		hover = &top
	}

	proj := v.scene.Projection()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p, ok := proj.ScreenToWorld(cellCenter(x, y))
			if !ok {
				continue
			}
			ch, style := v.cellAt(p, hover)
			v.screen.SetContent(x, y, ch, nil, style)
		}
	}

	v.drawText(0, rows, v.status(), tcell.StyleDefault.Bold(true))

	if v.console != nil {
		lines := v.console.Lines()
		if len(lines) > v.opts.ConsoleRows {
			lines = lines[len(lines)-v.opts.ConsoleRows:]
		}
		for i, line := range lines {
			v.drawText(0, rows+1+i, line, consoleStyle(line))
		}
	}
	v.screen.Show()
}
