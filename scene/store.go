package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MobRulesGames/isopick/base"
	"github.com/MobRulesGames/isopick/logging"
	"github.com/MobRulesGames/isopick/tilemap"
	"github.com/quasilyte/gdata/v2"
)

// Store keeps the occupants of each tilemap in a scene between runs. Every
// scene is one gdata object and each of its tilemaps is a property keyed by
// label.
type Store struct {
	m propStore
}

// The parts of gdata.Manager a Store uses.
type propStore interface {
	SaveObjectProp(object, prop string, data []byte) error
	LoadObjectProp(object, prop string) ([]byte, error)
	ObjectPropExists(object, prop string) bool
}

var _ propStore = (*gdata.Manager)(nil)
var _ propStore = dirProps("")

// Keeps each property as a gob file at <dir>/<object>/<prop>.gob, for when
// the platform has no gdata storage.
type dirProps string

func (d dirProps) path(object, prop string) string {
	return filepath.Join(string(d), object, prop+".gob")
}

func (d dirProps) SaveObjectProp(object, prop string, data []byte) error {
	if err := os.MkdirAll(filepath.Join(string(d), object), 0755); err != nil {
		return err
	}
	return base.SaveGob(d.path(object, prop), data)
}

func (d dirProps) LoadObjectProp(object, prop string) ([]byte, error) {
	var data []byte
	err := base.LoadGob(d.path(object, prop), &data)
	return data, err
}

func (d dirProps) ObjectPropExists(object, prop string) bool {
	_, err := os.Stat(d.path(object, prop))
	return err == nil
}

func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("opening store for %q: %w", appName, err)
	}
	return MakeStore(m), nil
}

func MakeStore(m *gdata.Manager) *Store {
	return &Store{m: m}
}

// Keeps occupants in gob files under dir instead of gdata.
func MakeDirStore(dir string) *Store {
	return &Store{m: dirProps(dir)}
}

func objectKey(s *Scene) string {
	return "scene-" + s.Name()
}

func (st *Store) SaveScene(s *Scene) error {
	var errs []error
	s.Each(func(tm *tilemap.Tilemap) {
		data, err := tm.Occupants().MarshalBinary()
		if err == nil {
			err = st.m.SaveObjectProp(objectKey(s), tm.Label, data)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("saving tilemap %q: %w", tm.Label, err))
		}
	})
	logging.Debug("saved scene", "name", s.Name(), "errors", len(errs))
	return errors.Join(errs...)
}

// Restores whatever occupants were saved for s. Reports whether anything was
// restored. A tilemap whose saved occupants don't fit is left as it was and
// reported in the error.
func (st *Store) LoadScene(s *Scene) (bool, error) {
	restored := false
	var errs []error
	s.Each(func(tm *tilemap.Tilemap) {
		if !st.m.ObjectPropExists(objectKey(s), tm.Label) {
			return
		}
		data, err := st.m.LoadObjectProp(objectKey(s), tm.Label)
		if err == nil {
			err = tm.Occupants().UnmarshalBinary(data)
		}
		if err != nil {
			logging.Warn("couldn't restore tilemap", "scene", s.Name(), "tilemap", tm.Label, "err", err)
			errs = append(errs, fmt.Errorf("loading tilemap %q: %w", tm.Label, err))
			return
		}
		restored = true
		tm.Occupants().Each(func(_ tilemap.Coord, id tilemap.OccupantID) {
			s.reserve(id)
		})
	})
	return restored, errors.Join(errs...)
}
