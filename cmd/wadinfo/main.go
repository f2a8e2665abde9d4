package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/go-stdlog/stdlog"

	wad "github.com/stuarthighley/wadlevel"
	"github.com/stuarthighley/wadlevel/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	wadPath := flag.String("wad", "", "WAD file to read")
	levelName := flag.String("level", "", "level to load, e.g. E1M1")
	verbose := flag.Bool("v", false, "log while reading")
	printTree := flag.Bool("tree", false, "print the BSP tree")
	dumpLump := flag.String("dump", "", "write the raw bytes of a lump to stdout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalln(err)
	}

	// Flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "wad":
			cfg.WAD = *wadPath
		case "level":
			cfg.Level = *levelName
		case "v":
			cfg.Verbose = *verbose
		case "tree":
			cfg.PrintTree = *printTree
		case "dump":
			cfg.DumpLump = *dumpLump
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}

	if cfg.Verbose {
		wad.SetLogger(stdlog.NewStd(os.Stderr))
	}

	w, err := wad.Open(cfg.WAD)
	if err != nil {
		log.Fatalln(err)
	}
	defer w.Close()

	if cfg.DumpLump != "" {
		if err := dump(w, cfg.DumpLump); err != nil {
			log.Fatalln(err)
		}
		return
	}

	fmt.Println("Levels:", w.LevelNames())
	l, err := w.ReadLevel(cfg.Level)
	if err != nil {
		log.Fatalln(err)
	}
	describe(l)

	if cfg.PrintTree {
		if err := wad.FprintTree(os.Stdout, l); err != nil {
			log.Fatalln(err)
		}
	}
}

func dump(w *wad.WAD, name string) error {
	lump, err := w.RequiredLump(name)
	if err != nil {
		return err
	}
	data, err := lump.ReadBytes()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func describe(l *wad.Level) {
	fmt.Printf("%s: %d things, %d linedefs, %d sidedefs, %d vertexes, %d segs, %d subsectors, %d nodes, %d sectors\n",
		l.Name, len(l.Things), len(l.Linedefs), len(l.Sidedefs), len(l.Vertexes),
		len(l.Segs), len(l.SubSectors), len(l.Nodes), len(l.Sectors))

	tagged := make([]int, 0, len(l.ThingsBySector))
	for id := range l.ThingsBySector {
		tagged = append(tagged, id)
	}
	sort.Ints(tagged)
	for _, id := range tagged {
		fmt.Printf("Sector %d (tag %d): things %v\n", id, l.Sectors[id].Tag, l.ThingsBySector[id])
	}

	adjacency := l.BuildAdjacency()
	for id, s := range l.Sectors {
		light, _ := l.MinLight(id)
		line := fmt.Sprintf("Sector %d: floor %d, ceiling %d, light %d, min light %d, neighbours %v",
			id, s.FloorHeight, s.CeilingHeight, s.Light, light, adjacency.Neighbours(id))
		if h, ok := l.NeighbourHeights(id); ok {
			line += fmt.Sprintf(", neighbour floors %d..%d", h.LowestFloor, h.HighestFloor)
			if h.HasNextFloor {
				line += fmt.Sprintf(", next floor %d", h.NextFloor)
			}
		}
		fmt.Println(line)
	}

	for _, w := range l.Warnings {
		fmt.Println("Warning:", w)
	}
}
