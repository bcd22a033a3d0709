package main

import (
	"flag"
	"fmt"
	"log"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	configFile = flag.String("config", "", "Path to scene configuration YAML (empty = built-in defaults)")
	count      = flag.Int("count", -1, "Override vertex count (-1 = from config)")
	seed       = flag.Int64("seed", 0, "Override RNG seed for deterministic scenes (0 = from config)")
	summary    = flag.Bool("summary", false, "Print connectivity and surface statistics and exit")
	render     = flag.Bool("render", false, "Render a static preview of the field and exit")
	format     = flag.String("format", "", "Preview format: svg, png, or both (default: from config)")
	outputFile = flag.String("output", "", "Preview output path without extension (default: from config)")
	thetaRes   = flag.Int("theta-res", 0, "Override surface theta resolution (0 = from config)")
	phiRes     = flag.Int("phi-res", 0, "Override surface phi resolution (0 = from config)")
	dumpConfig = flag.Bool("dump-config", false, "Print the effective scene configuration as YAML and exit")
)

func main() {
	flag.Parse()
	fmt.Printf("metricfield version: %s\n", Version)

	app, err := NewApp(AppOptions{
		ConfigFile: *configFile,
		Count:      *count,
		Seed:       *seed,
		Format:     *format,
		OutputFile: *outputFile,
		ThetaRes:   *thetaRes,
		PhiRes:     *phiRes,
	})
	if err != nil {
		log.Fatalf("Error initializing: %v", err)
	}

	if *dumpConfig {
		if err := app.RunDumpConfig(); err != nil {
			log.Fatalf("Error dumping config: %v", err)
		}
		return
	}

	if *render {
		if err := app.RunRender(); err != nil {
			log.Fatalf("Error rendering preview: %v", err)
		}
		return
	}

	if *summary {
		if err := app.RunSummary(); err != nil {
			log.Fatalf("Error computing summary: %v", err)
		}
		return
	}

	// Default mode: summary plus preview.
	if err := app.RunSummary(); err != nil {
		log.Fatalf("Error computing summary: %v", err)
	}
	if err := app.RunRender(); err != nil {
		log.Fatalf("Error rendering preview: %v", err)
	}
}
