package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Nic0Byte/wallbuild"
)

func main() {
	wallPath := flag.String("wall", "", "Path to a JSON file describing the wall, its holes, and apertures (required)")
	catalogPath := flag.String("catalog", "", "Path to a YAML catalog file (defaults to the built-in three-width catalog)")
	configPath := flag.String("config", "", "Path to a YAML engine-config file (defaults to the built-in tolerances)")
	algorithm := flag.String("algorithm", "bidirectional", "Placer variant: bidirectional or small")
	direction := flag.String("direction", "alternate", "Starting direction: left, right, or alternate")
	groundOffset := flag.Float64("ground-offset", 0, "Ground offset in mm (small algorithm only)")
	debug := flag.Bool("debug", false, "Emit structured debug tracing to stderr")
	flag.Parse()

	if *wallPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: wallpack -wall file.json [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	doc, err := loadWireDoc(*wallPath)
	if err != nil {
		log.Fatalf("load %s: %v", *wallPath, err)
	}

	catalog := wallbuild.DefaultCatalog()
	if *catalogPath != "" {
		catalog, err = wallbuild.LoadCatalog(*catalogPath)
		if err != nil {
			log.Fatalf("load catalog %s: %v", *catalogPath, err)
		}
	}

	cfg := wallbuild.DefaultEngineConfig()
	if *configPath != "" {
		cfg, err = wallbuild.LoadEngineConfig(*configPath)
		if err != nil {
			log.Fatalf("load config %s: %v", *configPath, err)
		}
	}

	var sink wallbuild.DebugSink
	if *debug {
		sink = wallbuild.NewZerologSink(os.Stderr, zerolog.DebugLevel)
	}

	req := wallbuild.PackRequest{
		Wall:              doc.wall(),
		Apertures:         doc.apertureList(),
		Catalog:           catalog,
		StartingDirection: wallbuild.StartingDirection(strings.ToLower(*direction)),
		Algorithm:         wallbuild.Algorithm(strings.ToLower(*algorithm)),
		GroundOffsetMM:    *groundOffset,
		Config:            cfg,
		Debug:             sink,
	}
	if req.Algorithm == wallbuild.AlgorithmSmall {
		m := wallbuild.DefaultMoralettiConfig()
		req.Moraletti = &m
	}

	placement, err := wallbuild.Pack(req)
	if err != nil {
		log.Fatalf("pack: %v", err)
	}

	if err := json.NewEncoder(os.Stdout).Encode(toWirePlacement(placement)); err != nil {
		log.Fatalf("write output: %v", err)
	}
}
