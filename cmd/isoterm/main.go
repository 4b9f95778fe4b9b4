package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MobRulesGames/isopick/cmd"
	"github.com/MobRulesGames/isopick/console"
	"github.com/MobRulesGames/isopick/logging"
	"github.com/MobRulesGames/isopick/termview"
	"github.com/gdamore/tcell/v2"
)

const TargetFPS = 30

func main() {
	var opts cmd.Options
	viewOpts := termview.DefaultOptions()
	scale := float64(viewOpts.Scale)
	err := cmd.ParseArgs("isoterm", os.Args[1:], &opts, func(flags *flag.FlagSet) {
		flags.Float64Var(&scale, "scale", scale, "world units per terminal column")
		flags.IntVar(&viewOpts.ConsoleRows, "console", viewOpts.ConsoleRows, "rows of log to show")
	})
	if err != nil {
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
	viewOpts.Scale = float32(scale)

	if err := run(opts, viewOpts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts cmd.Options, viewOpts termview.Options) error {
	opts.Console = true
	sess, err := cmd.Start(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			cmd.OnPanic(r)
			panic(r)
		}
	}()
	screen.EnableMouse()

	view, err := termview.MakeView(screen, sess.Scene, console.MakeConsole(sess.LogReader), viewOpts)
	if err != nil {
		return err
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / TargetFPS)
	defer ticker.Stop()
	for {
		select {
		case ev := <-events:
			if !view.HandleEvent(ev) {
				return sess.Save()
			}

		case <-ticker.C:
			reloadIfChanged(sess, view)
			view.Step()
		}
	}
}

func reloadIfChanged(sess *cmd.Session, view *termview.View) {
	if sess.Watcher == nil {
		return
	}
	names, errs := sess.Watcher.Drain()
	for _, err := range errs {
		logging.Warn("watching definitions", "err", err)
	}
	if len(names) == 0 {
		return
	}
	logging.Info("definitions changed", "files", names)
	if err := sess.Save(); err != nil {
		logging.Warn("couldn't save before reloading", "err", err)
	}

	s, err := sess.Reload()
	if err != nil {
		logging.Error("reload failed, keeping the old scene", "err", err)
		return
	}
	if sess.Store != nil {
		if _, err := sess.Store.LoadScene(s); err != nil {
			logging.Warn("some occupants weren't restored", "err", err)
		}
	}
	if err := view.SetScene(s); err != nil {
		logging.Error("couldn't show the reloaded scene", "err", err)
		return
	}
	sess.Scene = s
}
