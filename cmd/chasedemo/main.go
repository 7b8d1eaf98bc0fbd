package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/chasedemo/internal/ai"
	"github.com/udisondev/chasedemo/internal/commentary"
	"github.com/udisondev/chasedemo/internal/config"
	"github.com/udisondev/chasedemo/internal/db"
	"github.com/udisondev/chasedemo/internal/feed"
	"github.com/udisondev/chasedemo/internal/input"
	"github.com/udisondev/chasedemo/internal/journal"
	"github.com/udisondev/chasedemo/internal/model"
	"github.com/udisondev/chasedemo/internal/scene"
	"github.com/udisondev/chasedemo/internal/term"
)

const DefaultConfigPath = "config/chasedemo.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := DefaultConfigPath
	if p := os.Getenv("CHASEDEMO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadDemo(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logOut, closeLog, err := openLog(cfg.LogPath())
	if err != nil {
		return err
	}
	defer closeLog()

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableTrace(logLevel == slog.LevelDebug)

	slog.Info("chasedemo starting",
		"config", cfgPath,
		"host", cfg.Host,
		"log_level", cfg.LogLevel,
		"tick_interval", cfg.TickInterval)

	pool, err := commentaryPool(cfg.Commentary)
	if err != nil {
		return fmt.Errorf("loading commentary: %w", err)
	}

	var store journal.Store = journal.LogStore{}
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		version, err := db.RunMigrations(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database connected", "schema_version", version)
		store = db.NewTransitionRepository(database.Pool())
	}
	recorder := journal.NewRecorder(store, cfg.Journal.Buffer)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	var sinks commentary.MultiSink

	var hub *feed.Hub
	if cfg.Feed.Enabled {
		hub = feed.NewHub(cfg.Feed.QueueSize)
		sinks = append(sinks, hub)
	}

	var host *term.Host
	if cfg.Host == config.HostTerminal {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating terminal screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("initializing terminal screen: %w", err)
		}
		defer screen.Fini()

		host = term.New(screen, cfg.Scene.GroundSize)
		sinks = append(sinks, host)
	}

	mgr := ai.NewTickManager(cfg.TickInterval)
	sc := scene.New(sceneOptions(cfg, pool, sinks, recorder.Record), mgr)

	if host != nil {
		keys := input.NewState(input.DefaultHold)
		sc.UseKeyboard(keys)
		sc.OnFrame(host.Draw)
		g.Go(func() error {
			defer stop()
			if err := host.PumpInput(gctx, keys); err != nil {
				return err
			}
			if keys.QuitRequested() {
				slog.Info("player quit")
			}
			return nil
		})
	} else {
		sc.UseScript(headlessPath(cfg))
	}

	if hub != nil {
		sc.OnFrame(hub.Publish)
		server := feed.NewServer(cfg.Feed.Addr, hub)
		g.Go(func() error {
			return server.Run(gctx)
		})
	}

	if cfg.Host == config.HostHeadless && cfg.HeadlessTicks > 0 {
		mgr.AfterTick(func(tick uint64) {
			if tick >= cfg.HeadlessTicks {
				slog.Info("headless run complete", "ticks", tick)
				stop()
			}
		})
	}

	g.Go(func() error {
		return recorder.Run(gctx)
	})
	g.Go(func() error {
		err := mgr.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	err = g.Wait()

	mgr.Each(func(c ai.Controller) bool {
		slog.Info("npc final state", "objectID", c.ID(), "state", c.State())
		return true
	})
	slog.Info("journal closed",
		"saved", recorder.Saved(),
		"dropped", recorder.Dropped())

	return err
}

func sceneOptions(cfg config.Demo, pool *commentary.Pool, sink commentary.Sink, onTransition ai.TransitionFunc) scene.Options {
	npcs := make([]scene.NpcSpec, 0, len(cfg.Scene.Npcs))
	for _, n := range cfg.Scene.Npcs {
		npcs = append(npcs, scene.NpcSpec{Name: n.Name, Position: toVec3(n.Position)})
	}

	return scene.Options{
		Tuning: ai.Tuning{
			SightDistance: cfg.Tuning.SightDistance,
			AttackRange:   cfg.Tuning.AttackRange,
			ChaseSpeed:    cfg.Tuning.ChaseSpeed,
		},
		PlayerMoveSpeed: cfg.Tuning.PlayerMoveSpeed,
		Player:          toVec3(cfg.Scene.Player),
		Npcs:            npcs,
		Pool:            pool,
		Sink:            sink,
		OnTransition:    onTransition,
	}
}

// headlessPath walks the player up to the first NPC, back to the start and
// out to a corner beyond sight, so every state is visited.
func headlessPath(cfg config.Demo) *input.ScriptedPath {
	start := toVec3(cfg.Scene.Player)
	first := toVec3(cfg.Scene.Npcs[0].Position)
	half := cfg.Scene.GroundSize / 2
	corner := model.NewVec3(-half, start.Y, half)

	return input.NewScriptedPath(cfg.Tuning.PlayerMoveSpeed, first, start, corner)
}

func commentaryPool(overrides map[string][]string) (*commentary.Pool, error) {
	pool := commentary.DefaultPool()
	if len(overrides) == 0 {
		return pool, nil
	}

	parsed := make(map[commentary.Event][]string, len(overrides))
	for name, lines := range overrides {
		ev, err := commentary.ParseEvent(name)
		if err != nil {
			return nil, err
		}
		parsed[ev] = lines
	}
	return pool.Merge(parsed), nil
}

func toVec3(p config.Point) model.Vec3 {
	return model.NewVec3(p.X, p.Y, p.Z)
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
