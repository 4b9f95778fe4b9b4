package viewer

import (
	"github.com/MobRulesGames/isopick/logging"
	"github.com/MobRulesGames/isopick/perspective"
	"github.com/MobRulesGames/isopick/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is what the viewer needs from one frame of mouse and keyboard state.
type Input struct {
	Cursor perspective.ScreenPoint

	// Moved is set when the cursor is somewhere new this frame; ebiten only
	// reports where the cursor is, not that it moved.
	Moved bool
	Paint bool
	Clear bool
	Quit  bool
}

// ChangeSource reports definition files that changed; *scene.Watcher is one.
type ChangeSource interface {
	Drain() (names []string, errs []error)
}

var _ ChangeSource = (*scene.Watcher)(nil)

// Reloader makes a fresh scene from definitions that changed on disk.
type Reloader func() (*scene.Scene, error)

// Game runs a scene inside an ebiten window.
type Game struct {
	scene *scene.Scene
	hits  []scene.Hit

	store   *scene.Store
	changes ChangeSource
	reload  Reloader

	lastCursor perspective.ScreenPoint
	seenCursor bool
}

// store, changes and reload may all be nil.
func MakeGame(s *scene.Scene, store *scene.Store, changes ChangeSource, reload Reloader) *Game {
	return &Game{
		scene:   s,
		store:   store,
		changes: changes,
		reload:  reload,
	}
}

func (g *Game) Scene() *scene.Scene {
	return g.scene
}

func (g *Game) Hits() []scene.Hit {
	return g.hits
}

func (g *Game) readInput() Input {
	x, y := ebiten.CursorPosition()
	in := Input{
		Cursor: perspective.ScreenPoint{X: float32(x), Y: float32(y)},
		Paint:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Clear:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		Quit:   inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	if !g.seenCursor || in.Cursor != g.lastCursor {
		in.Moved = true
		g.lastCursor = in.Cursor
		g.seenCursor = true
	}
	return in
}

func (g *Game) Update() error {
	g.ReloadIfChanged()
	return g.Step(g.readInput())
}

// Runs one tick. Returns ebiten.Termination when asked to quit.
func (g *Game) Step(in Input) error {
	if in.Quit {
		g.Save()
		return ebiten.Termination
	}

	var events []perspective.ScreenPoint
	if in.Moved {
		events = append(events, in.Cursor)
	}
	g.hits = g.scene.Tick(events)

	top, ok := scene.Topmost(g.hits)
	if !ok || !(in.Paint || in.Clear) {
		return nil
	}
	if in.Clear {
		if err := top.Tilemap.Remove(top.Coord); err != nil {
			logging.Error("couldn't clear cell", "tilemap", top.Label, "coord", top.Coord, "err", err)
		}
	} else {
		id := g.scene.NextOccupant()
		if err := top.Tilemap.Set(top.Coord, id); err != nil {
			logging.Error("couldn't paint cell", "tilemap", top.Label, "coord", top.Coord, "err", err)
		}
	}
	g.hits = g.scene.Resolve(g.scene.Tracker().Current())
	g.Save()
	return nil
}

// Writes occupants to the store, if there is one.
func (g *Game) Save() {
	if g.store == nil {
		return
	}
	if err := g.store.SaveScene(g.scene); err != nil {
		logging.Error("couldn't save scene", "scene", g.scene.Name(), "err", err)
	}
}

// Swaps in a reloaded scene if any definitions changed, carrying the camera
// and stored occupants over. A failed reload keeps the current scene.
func (g *Game) ReloadIfChanged() {
	if g.changes == nil || g.reload == nil {
		return
	}
	names, errs := g.changes.Drain()
	for _, err := range errs {
		logging.Warn("watching definitions", "err", err)
	}
	if len(names) == 0 {
		return
	}
	logging.Info("definitions changed", "files", names)
	g.Save()

	cam := g.scene.Projection().Camera()
	s, err := g.reload()
	if err != nil {
		logging.Error("reload failed, keeping the old scene", "err", err)
		return
	}
	if err := s.SetCamera(cam); err != nil {
		logging.Error("reload failed, keeping the old scene", "err", err)
		return
	}
	if g.store != nil {
		if _, err := g.store.LoadScene(s); err != nil {
			logging.Warn("some occupants weren't restored", "err", err)
		}
	}
	g.scene = s
	g.hits = nil
}

// Keeps the camera's viewport matched to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cam := g.scene.Projection().Camera()
	if cam.Width != outsideWidth || cam.Height != outsideHeight {
		cam.Width, cam.Height = outsideWidth, outsideHeight
		if err := g.scene.SetCamera(cam); err != nil {
			logging.Warn("ignoring window size", "width", outsideWidth, "height", outsideHeight, "err", err)
			cam = g.scene.Projection().Camera()
		}
	}
	return cam.Width, cam.Height
}
