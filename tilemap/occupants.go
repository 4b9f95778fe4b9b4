package tilemap

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
)

var ErrOutOfBounds = errors.New("coordinate out of bounds")
var ErrSizeMismatch = errors.New("occupant snapshot size mismatch")

type OutOfBoundsError struct {
	Coord Coord
	Size  Size
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%v outside of %dx%d tilemap", e.Coord, e.Size.X, e.Size.Y)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// OccupantID identifies whatever sits in a cell, e.g. a tile's visual index.
type OccupantID uint32

type slot struct {
	id       OccupantID
	occupied bool
}

// Occupants is a dense registry with exactly one slot per cell of a tilemap,
// stored row-major. Slots are allocated once and start empty.
type Occupants struct {
	size  Size
	slots []slot
}

func MakeOccupants(size Size) *Occupants {
	if size.X <= 0 || size.Y <= 0 {
		panic(fmt.Errorf("%w: can't make occupants for %dx%d", ErrBadGeometry, size.X, size.Y))
	}
	return &Occupants{
		size:  size,
		slots: make([]slot, size.Area()),
	}
}

func (o *Occupants) Size() Size {
	return o.size
}

// Number of slots, occupied or not.
func (o *Occupants) Len() int {
	return len(o.slots)
}

// Number of occupied slots.
func (o *Occupants) Count() int {
	n := 0
	for _, s := range o.slots {
		if s.occupied {
			n++
		}
	}
	return n
}

func (o *Occupants) check(c Coord) error {
	if !o.size.Contains(c) {
		return &OutOfBoundsError{Coord: c, Size: o.size}
	}
	return nil
}

// Puts id in the cell at c, replacing whatever was there.
func (o *Occupants) Set(c Coord, id OccupantID) error {
	if err := o.check(c); err != nil {
		return err
	}
	o.slots[o.size.Index(c)] = slot{id: id, occupied: true}
	return nil
}

// Out of bounds coordinates are reported as empty.
func (o *Occupants) Get(c Coord) (OccupantID, bool) {
	if !o.size.Contains(c) {
		return 0, false
	}
	s := o.slots[o.size.Index(c)]
	return s.id, s.occupied
}

// Empties the cell at c. Emptying an empty cell is fine.
func (o *Occupants) Remove(c Coord) error {
	if err := o.check(c); err != nil {
		return err
	}
	o.slots[o.size.Index(c)] = slot{}
	return nil
}

// Calls fn for every occupied cell in row-major order.
func (o *Occupants) Each(fn func(c Coord, id OccupantID)) {
	for i, s := range o.slots {
		if s.occupied {
			fn(o.size.CoordAt(i), s.id)
		}
	}
}

// Gives every cell, in row-major order, an id from next.
func (o *Occupants) Fill(next func() OccupantID) {
	for i := range o.slots {
		o.slots[i] = slot{id: next(), occupied: true}
	}
}

type occupantsSnapshot struct {
	Size     Size
	IDs      []OccupantID
	Occupied []bool
}

func (o *Occupants) MarshalBinary() ([]byte, error) {
	snap := occupantsSnapshot{
		Size:     o.size,
		IDs:      make([]OccupantID, len(o.slots)),
		Occupied: make([]bool, len(o.slots)),
	}
	for i, s := range o.slots {
		snap.IDs[i] = s.id
		snap.Occupied[i] = s.occupied
	}
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Restores a snapshot taken from a registry of the same size.
func (o *Occupants) UnmarshalBinary(data []byte) error {
	var snap occupantsSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return err
	}
	n := snap.Size.Area()
	if snap.Size != o.size || len(snap.IDs) != n || len(snap.Occupied) != n {
		return fmt.Errorf("%w: have %dx%d, snapshot is %dx%d", ErrSizeMismatch, o.size.X, o.size.Y, snap.Size.X, snap.Size.Y)
	}
	for i := range o.slots {
		o.slots[i] = slot{id: snap.IDs[i], occupied: snap.Occupied[i]}
	}
	return nil
}
