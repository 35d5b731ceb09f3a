// Command headless runs a snake game without a window and prints the final
// score board as YAML.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/snake/game"
	"github.com/milk9111/snake/logging"
	"github.com/milk9111/snake/prefabs"
)

type options struct {
	specName string
	maxTicks int
	logLevel string
	watch    bool
	dump     bool
	tps      int
}

func main() {
	var opts options
	flag.StringVar(&opts.specName, "spec", "game", "game spec in prefabs/ (basename, .yaml optional)")
	flag.IntVar(&opts.maxTicks, "ticks", 2000, "stop after this many ticks (0 runs until game over)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn, error or none")
	flag.BoolVar(&opts.watch, "watch", false, "reload the spec and AI scripts when they change on disk")
	flag.BoolVar(&opts.dump, "dump", false, "print the last search grid of every computer snake")
	flag.IntVar(&opts.tps, "tps", 0, "ticks per second (0 runs as fast as possible)")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource so that deferred cleanup happens before main
// exits with an error.
func run(opts options) error {
	logger, err := logging.New(os.Stderr, opts.logLevel)
	if err != nil {
		return err
	}
	logging.SetGlobalLogger(logger)

	spec, err := prefabs.LoadGameSpec(opts.specName)
	if err != nil {
		return err
	}

	g, err := game.New(spec, game.WithLogger(logger), game.WithDebug(opts.dump))
	if err != nil {
		return err
	}

	var changes <-chan prefabs.Change
	if opts.watch {
		w, err := prefabs.NewWatcher(prefabs.DefaultDebounce)
		if err != nil {
			return err
		}
		defer w.Close()
		changes = w.Changes
		go func() {
			for err := range w.Errors {
				_ = level.Warn(logger).Log("msg", "watch error", "err", err)
			}
		}()
	}

	var tick <-chan time.Time
	if opts.tps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(opts.tps))
		defer ticker.Stop()
		tick = ticker.C
	}

	for g.Running() && (opts.maxTicks == 0 || g.Ticks() < opts.maxTicks) {
		select {
		case c, ok := <-changes:
			if ok {
				reload(g, opts.specName, c, logger)
			}
		default:
		}
		if tick != nil {
			<-tick
		}
		if err := g.Update(); err != nil {
			return err
		}
	}

	for _, t := range g.Timings() {
		_ = level.Info(logger).Log("msg", "system timing", "system", t.Name, "total", t.Total, "runs", t.Runs)
	}

	if opts.dump {
		for _, s := range g.Spec().Snakes {
			grid, path, ok := g.Debug(s.Name)
			if !ok {
				continue
			}
			fmt.Printf("# %s: %d steps\n%s\n", s.Name, len(path), grid.Render(path))
		}
	}

	out, err := yaml.Marshal(g.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func reload(g *game.Game, specName string, c prefabs.Change, logger kitlog.Logger) {
	spec := g.Spec()
	if c.Kind == prefabs.ChangeSpec {
		next, err := prefabs.LoadGameSpec(specName)
		if err != nil {
			_ = level.Error(logger).Log("msg", "reload failed", "path", c.Path, "err", err)
			return
		}
		spec = next
	}
	if err := g.Reload(spec); err != nil {
		_ = level.Error(logger).Log("msg", "reload failed", "path", c.Path, "err", err)
	}
}
