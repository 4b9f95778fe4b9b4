package scene

import (
	"github.com/MobRulesGames/fsnotify"
)

// Watcher reports definition files that changed on disk. Nothing is reloaded
// for you; call Drain between ticks and reload if it returns anything.
type Watcher struct {
	w       *fsnotify.Watcher
	changes chan string
	errs    chan error
	done    chan struct{}
}

// Pending changes beyond this many are dropped; one is enough to trigger a
// reload.
const watchBacklog = 16

func WatchDirs(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := w.Watch(dir); err != nil {
			w.Close()
			return nil, err
		}
	}
	watcher := &Watcher{
		w:       w,
		changes: make(chan string, watchBacklog),
		errs:    make(chan error, watchBacklog),
		done:    make(chan struct{}),
	}
	go watcher.forward()
	return watcher, nil
}

func (watcher *Watcher) forward() {
	for {
		select {
		case ev, ok := <-watcher.w.Event:
			if !ok {
				return
			}
			if ev.IsModify() || ev.IsCreate() {
				select {
				case watcher.changes <- ev.Name:
				default:
				}
			}

		case err, ok := <-watcher.w.Error:
			if !ok {
				return
			}
			select {
			case watcher.errs <- err:
			default:
			}

		case <-watcher.done:
			return
		}
	}
}

// Returns the names of changed files and any watch errors seen since the
// last call. Never blocks.
func (watcher *Watcher) Drain() (names []string, errs []error) {
	for {
		select {
		case name := <-watcher.changes:
			names = append(names, name)
		case err := <-watcher.errs:
			errs = append(errs, err)
		default:
			return
		}
	}
}

func (watcher *Watcher) Changes() <-chan string {
	return watcher.changes
}

func (watcher *Watcher) Close() error {
	close(watcher.done)
	return watcher.w.Close()
}
