package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/tactical-grid/internal/scenario"
	"github.com/Garsondee/tactical-grid/internal/view"
)

func main() {
	var path string
	var width, height int

	flag.StringVar(&path, "scenario", "", "scenario JSON file (default: built-in river-crossing)")
	flag.IntVar(&width, "width", 1440, "window width")
	flag.IntVar(&height, "height", 800, "window height")
	flag.Parse()

	sc := scenario.Default()
	if path != "" {
		loaded, err := scenario.Load(path)
		if err != nil {
			log.Fatal(err)
		}
		sc = loaded
	}

	g, err := view.New(sc, width, height)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Tactical Grid: " + sc.Name)
	ebiten.SetWindowSize(width, height)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
