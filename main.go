package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/snake/game"
	"github.com/milk9111/snake/logging"
	"github.com/milk9111/snake/prefabs"
)

func main() {
	specName := flag.String("spec", "game", "game spec in prefabs/ (basename, .yaml optional)")
	player := flag.String("player", "", "snake name to steer with the arrow keys; empty adds one")
	debug := flag.Bool("debug", false, "draw computer snake search paths")
	logLevel := flag.String("log-level", "info", "debug, info, warn, error or none")
	flag.Parse()

	logger, err := logging.New(os.Stderr, *logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetGlobalLogger(logger)

	spec, err := prefabs.LoadGameSpec(*specName)
	if err != nil {
		log.Fatal(err)
	}
	name := *player
	if name == "" {
		name = addPlayer(spec)
	}

	g, err := game.New(spec, game.WithLogger(logger), game.WithDebug(*debug))
	if err != nil {
		log.Fatal(err)
	}

	v := NewViewer(g, name, *specName, *debug, logger)
	ebiten.SetWindowSize(v.screenSize())
	ebiten.SetWindowTitle("snake")
	ebiten.SetTPS(g.TickRate())

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
