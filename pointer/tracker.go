package pointer

import (
	"github.com/MobRulesGames/isopick/logging"
	"github.com/MobRulesGames/isopick/perspective"
)

// Far enough outside any sensible tilemap that resolving it finds nothing.
var DefaultSentinel = perspective.Point{X: -1000, Y: -1000}

// Projector maps screen positions into world space. ok is false for
// positions that can't be projected, such as those outside of the viewport.
type Projector interface {
	ScreenToWorld(sp perspective.ScreenPoint) (p perspective.Point, ok bool)
}

type ProjectorFunc func(sp perspective.ScreenPoint) (perspective.Point, bool)

func (f ProjectorFunc) ScreenToWorld(sp perspective.ScreenPoint) (perspective.Point, bool) {
	if f == nil {
		return perspective.Point{}, false
	}
	return f(sp)
}

var _ Projector = (*perspective.Projection)(nil)
var _ Projector = ProjectorFunc(nil)

// Tracker remembers where the pointer was last seen in world space. Only the
// latest position is kept.
type Tracker struct {
	sentinel perspective.Point
	current  perspective.Point
	updates  int
}

func MakeTracker(sentinel perspective.Point) *Tracker {
	return &Tracker{
		sentinel: sentinel,
		current:  sentinel,
	}
}

// Projects sp and remembers the result. A nil projector, or one that can't
// project sp, leaves the tracker alone.
func (t *Tracker) Update(sp perspective.ScreenPoint, projector Projector) {
	if projector == nil {
		return
	}
	p, ok := projector.ScreenToWorld(sp)
	if !ok {
		logging.Trace("pointer: unprojectable", "screen", sp)
		return
	}
	t.current = p
	t.updates++
}

// Applies each event in order; the last one that projects wins.
func (t *Tracker) UpdateAll(events []perspective.ScreenPoint, projector Projector) {
	for _, sp := range events {
		t.Update(sp, projector)
	}
}

func (t *Tracker) Current() perspective.Point {
	return t.current
}

func (t *Tracker) Sentinel() perspective.Point {
	return t.sentinel
}

// Reports whether the tracker has accepted any position since it was made or
// last reset.
func (t *Tracker) Seen() bool {
	return t.updates > 0
}

func (t *Tracker) Reset() {
	t.current = t.sentinel
	t.updates = 0
}
