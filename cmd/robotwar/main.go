package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/RobotWar/internal/cli"
	"github.com/Garsondee/RobotWar/internal/viewer"
)

func main() {
	var opts cli.Options
	opts.Register(flag.CommandLine)
	flag.Parse()

	logger, err := opts.Logger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	newArena, err := opts.ArenaFactory(logger)
	if err != nil {
		log.Fatal(err)
	}
	g, err := viewer.New(newArena, logger)
	if err != nil {
		log.Fatal(err)
	}

	w, h := g.Size()
	ebiten.SetWindowTitle("RobotWar")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
