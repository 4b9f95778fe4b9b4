package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/MobRulesGames/isopick/cmd"
	"github.com/MobRulesGames/isopick/logging"
	"github.com/MobRulesGames/isopick/viewer"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var opts cmd.Options
	if err := cmd.ParseArgs("isopick", os.Args[1:], &opts, nil); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.ShowVersion {
		fmt.Println(cmd.Version())
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts cmd.Options) error {
	sess, err := cmd.Start(opts)
	if err != nil {
		return err
	}
	defer sess.Close()
	defer func() {
		if r := recover(); r != nil {
			cmd.OnPanic(r)
			panic(r)
		}
	}()

	var changes viewer.ChangeSource
	if sess.Watcher != nil {
		changes = sess.Watcher
	}
	game := viewer.MakeGame(sess.Scene, sess.Store, changes, sess.Reload)

	cam := sess.Scene.Projection().Camera()
	ebiten.SetWindowSize(cam.Width, cam.Height)
	ebiten.SetWindowTitle("isopick: " + opts.Scene)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		logging.Error("game loop failed", "err", err)
		return err
	}
	game.Save()
	return nil
}
