package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/liquid-sort/audio"
	"github.com/lixenwraith/liquid-sort/config"
	"github.com/lixenwraith/liquid-sort/constants"
	"github.com/lixenwraith/liquid-sort/core"
	"github.com/lixenwraith/liquid-sort/engine"
	"github.com/lixenwraith/liquid-sort/event"
	"github.com/lixenwraith/liquid-sort/input"
	"github.com/lixenwraith/liquid-sort/level"
	"github.com/lixenwraith/liquid-sort/render"
	"github.com/lixenwraith/liquid-sort/selection"
	"github.com/lixenwraith/liquid-sort/status"
)

// resolveLevel picks the level file from the flag, then the config, then the built-in name
// The returned path is empty for built-in levels
func resolveLevel(opts *options, cfg config.Config) (level.Level, string, error) {
	path := opts.levelPath
	if path == "" {
		path = cfg.Game.Level
	}
	if path != "" {
		lvl, err := level.LoadFile(path, cfg.Game.Capacity)
		return lvl, path, err
	}
	lvl, err := level.Builtin(opts.levelName)
	return lvl, "", err
}

// trueColor resolves the --color flag against what the terminal reports
func trueColor(mode string, screen tcell.Screen) (bool, error) {
	switch mode {
	case "truecolor", "true", "24bit":
		return true, nil
	case "256":
		return false, nil
	case "auto", "":
		return screen.Colors() >= 1<<24, nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}

func runGame(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(opts.debug, cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	lvl, levelPath, err := resolveLevel(opts, cfg)
	if err != nil {
		return err
	}
	pourCfg, err := cfg.PourConfig()
	if err != nil {
		return err
	}
	keys := input.DefaultKeyTable()
	if err := keys.Bind(cfg.Keys); err != nil {
		return err
	}
	if opts.watch && levelPath == "" {
		return errors.New("--watch needs a level file")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	fini := sync.OnceFunc(screen.Fini)
	defer fini()
	core.SetCrashTerminal(screen)
	defer core.SetCrashTerminal(nil)
	screen.EnableMouse()
	screen.HideCursor()

	useTrueColor, err := trueColor(opts.color, screen)
	if err != nil {
		return err
	}

	bus := event.NewBus()
	queue := event.NewQueue()
	stats := status.NewRegistry()

	board, err := engine.NewBoard(engine.BoardConfig{
		Name:     lvl.Name,
		Capacity: lvl.Capacity,
		Pour:     pourCfg,
		Stats:    stats,
	}, lvl.Initial(), bus, logger)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(screen, stats, useTrueColor, logger)
	renderer.Attach(bus)

	if cfg.Audio.Enabled && !opts.mute {
		sm := audio.NewSoundManager(cfg.Audio.Volume, logger)
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		} else {
			defer sm.Cleanup()
			sm.Attach(bus)
		}
	}

	sel := selection.New(board, bus, logger)
	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider(), constants.MaxTickDelta)
	game := engine.NewGame(board, sel, clock, queue, bus, logger)
	board.Publish()

	translator := input.NewTranslator(keys, renderer.HitTest)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(core.Guard(func() error {
		defer cancel()
		err := game.Run(gctx, cfg.Game.TickInterval, renderer.Draw)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}))

	g.Go(core.Guard(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			if gev, ok := translator.Translate(ev); ok {
				queue.Push(gev)
			}
		}
	}))

	// Fini unblocks PollEvent
	g.Go(func() error {
		<-gctx.Done()
		fini()
		return nil
	})

	if opts.watch {
		w, err := level.NewWatcher(levelPath, cfg.Game.Capacity, func(l level.Level) {
			queue.Push(event.GameEvent{Type: event.EventLevelReload, Payload: &l})
		}, logger)
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		g.Go(core.Guard(func() error { return w.Run(gctx) }))
	}

	logger.Info("game started",
		zap.String("level", lvl.Name),
		zap.String("config", cfg.Source),
		zap.Bool("watch", opts.watch))
	return g.Wait()
}
