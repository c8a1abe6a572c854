package main

import (
	"flag"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Garsondee/RobotWar/internal/cli"
	"github.com/Garsondee/RobotWar/internal/termview"
)

func main() {
	var opts cli.Options
	opts.Register(flag.CommandLine)
	logFile := flag.String("log-file", "", "write logs here; the terminal is taken by the board")
	flag.Parse()

	var w io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.Create(*logFile) // #nosec G304 -- operator-supplied path
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}
	logger, err := opts.Logger(w)
	if err != nil {
		log.Fatal(err)
	}
	newArena, err := opts.ArenaFactory(logger)
	if err != nil {
		log.Fatal(err)
	}
	m, err := termview.New(newArena)
	if err != nil {
		log.Fatal(err)
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		log.Fatal(err)
	}
	if fm, ok := final.(termview.Model); ok && fm.Err() != nil {
		log.Fatal(fm.Err())
	}
}
