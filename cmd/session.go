package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"runtime/debug"

	"github.com/MobRulesGames/isopick/base"
	"github.com/MobRulesGames/isopick/cmd/gen"
	"github.com/MobRulesGames/isopick/logging"
	"github.com/MobRulesGames/isopick/registry"
	"github.com/MobRulesGames/isopick/scene"
)

//go:generate go run github.com/MobRulesGames/isopick/tools/genversion/cmd ../.git/HEAD ./gen/version.go

// Occupants are kept under this name in the platform's data directory.
const StoreName = "isopick"

type Options struct {
	Datadir     string
	Scene       string
	ShowVersion bool

	// Keep occupants between runs.
	Persist bool

	// Capture log lines for an on-screen console. Not a flag; viewers that
	// show a console set it.
	Console bool
}

// Registers the flags every viewer shares.
func (opts *Options) Bind(flags *flag.FlagSet) {
	flags.StringVar(&opts.Datadir, "data", "data", "directory holding tilemaps/ and scenes/")
	flags.StringVar(&opts.Scene, "scene", "demo", "name of the scene to show")
	flags.BoolVar(&opts.ShowVersion, "version", false, "print the version and exit")
	flags.BoolVar(&opts.Persist, "persist", true, "save and restore occupants between runs")
}

func Version() string {
	// If 'gen.Version' isn't found, try running 'go generate ./cmd'
	return gen.Version()
}

// Session is everything a viewer needs once definitions are loaded.
type Session struct {
	opts Options

	Scene   *scene.Scene
	Store   *scene.Store
	Watcher *scene.Watcher

	// Yields everything logged after Start. Nil unless Options.Console.
	LogReader io.Reader
}

// Sets up logging under the data directory, loads definitions and makes the
// requested scene. A missing store or watcher is logged and left nil.
func Start(opts Options) (*Session, error) {
	sess := &Session{opts: opts}
	base.SetDatadir(opts.Datadir)
	if opts.Console {
		sess.LogReader = base.ConsoleLog()
	}
	logging.Info("version", "version", Version(), "datadir", opts.Datadir)

	if err := registry.LoadAllRegistries(opts.Datadir); err != nil {
		logging.Warn("some definitions didn't load", "err", err)
	}

	var err error
	sess.Scene, err = scene.MakeSceneFromDef(opts.Scene)
	if err != nil {
		base.CloseLog()
		return nil, fmt.Errorf("couldn't make scene %q: %w", opts.Scene, err)
	}

	if opts.Persist {
		sess.Store, err = scene.OpenStore(StoreName)
		if err != nil {
			logging.Warn("keeping occupants in the data dir instead", "err", err)
			sess.Store = scene.MakeDirStore(filepath.Join(opts.Datadir, "saves"))
		}
		if _, err := sess.Store.LoadScene(sess.Scene); err != nil {
			logging.Warn("some occupants weren't restored", "err", err)
		}
	}

	sess.Watcher, err = scene.WatchDirs(registry.DefinitionDirs(opts.Datadir)...)
	if err != nil {
		logging.Warn("definitions won't be reloaded", "err", err)
	}
	return sess, nil
}

// Reloads every definition and makes the session's scene again.
func (sess *Session) Reload() (*scene.Scene, error) {
	if err := registry.ReloadAllRegistries(sess.opts.Datadir); err != nil {
		logging.Warn("some definitions didn't reload", "err", err)
	}
	return scene.MakeSceneFromDef(sess.opts.Scene)
}

func (sess *Session) Save() error {
	if sess.Store == nil {
		return nil
	}
	return sess.Store.SaveScene(sess.Scene)
}

func (sess *Session) Close() error {
	var err error
	if sess.Watcher != nil {
		err = sess.Watcher.Close()
	}
	base.CloseLog()
	return err
}

// Logs a panic with its stack before letting it continue.
func OnPanic(recoveredValue interface{}) {
	stack := debug.Stack()
	logging.Error("PANIC", "val", recoveredValue, "stack", string(stack))
}

// Parses argv into opts, reporting flag.ErrHelp for -h.
func ParseArgs(name string, argv []string, opts *Options, extra func(*flag.FlagSet)) error {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	opts.Bind(flags)
	if extra != nil {
		extra(flags)
	}
	if err := flags.Parse(argv); err != nil {
		return err
	}
	if flags.NArg() != 0 {
		return errors.New("unexpected arguments")
	}
	return nil
}
