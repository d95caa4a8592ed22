// Command loopcourse runs the ingest -> corridorize -> route pipeline, or
// serves it over HTTP, as four subcommands sharing one binary.
//
// Each stage reads/writes gob snapshots (graph.Graph.Encode/Decode,
// corridor.CorridorNetwork.Encode/Decode) so it can be re-run in
// isolation against a previous stage's output.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/trailforge/loopcourse/activity"
	"github.com/trailforge/loopcourse/api"
	"github.com/trailforge/loopcourse/config"
	"github.com/trailforge/loopcourse/corridor"
	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/graph"
	"github.com/trailforge/loopcourse/logging"
	"github.com/trailforge/loopcourse/osmingest"
	"github.com/trailforge/loopcourse/search"
)

// Exit codes: 0 success, 1 usage/validation failure, 2 runtime failure
// (I/O, parse, pipeline error).
const (
	exitOK      = 0
	exitUsage   = 1
	exitFailure = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return exitUsage
	}

	switch args[0] {
	case "ingest":
		return runIngest(args[1:])
	case "corridorize":
		return runCorridorize(args[1:])
	case "route":
		return runRoute(args[1:])
	case "serve":
		return runServe(args[1:])
	case "-h", "-help", "--help":
		usage()
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "loopcourse: unknown subcommand %q\n", args[0])
		usage()
		return exitUsage
	}
}

func usage() {
	fmt.Println("Usage: loopcourse <ingest|corridorize|route|serve> [flags]")
	fmt.Println()
	fmt.Println("  ingest      parse an .osm.pbf extract into a graph snapshot")
	fmt.Println("  corridorize build a corridor network from a graph snapshot")
	fmt.Println("  route       generate loop route alternatives from a corridor network")
	fmt.Println("  serve       run the HTTP API")
}

func configureLogging(cfg config.Config) {
	logging.Configure(logging.Options{
		Format: logFormatFromName(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}

func logFormatFromName(name string) logging.Format {
	if name == "json" {
		return logging.FormatJSON
	}
	return logging.FormatConsole
}

func loadConfig(path string) config.Config {
	cfg, err := config.LoadFrom(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loopcourse: load config %s: %v\n", path, err)
		os.Exit(exitFailure)
	}
	return cfg
}

func runIngest(args []string) int {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	input := fs.String("input", "", "path to .osm.pbf extract (required)")
	output := fs.String("output", "", "path to write the graph snapshot (required)")
	configPath := fs.String("config", "", "path to a YAML pipeline config")
	fs.Parse(args)

	if *input == "" || *output == "" {
		fmt.Println("Usage: loopcourse ingest -input=<extract.osm.pbf> -output=<graph.gob> [-config=<config.yaml>]")
		fs.PrintDefaults()
		return exitUsage
	}

	cfg := loadConfig(*configPath)
	configureLogging(cfg)

	in, err := os.Open(*input)
	if err != nil {
		log.Error().Err(err).Str("path", *input).Msg("ingest: open input")
		return exitFailure
	}
	defer in.Close()

	g, stats, err := osmingest.Parse(context.Background(), in, cfg.Ingest.ToOptions())
	if err != nil {
		log.Error().Err(err).Msg("ingest: parse")
		return exitFailure
	}
	log.Info().
		Int("waysScanned", stats.WaysScanned).
		Int("edgesEmitted", stats.EdgesEmitted).
		Int("nodesResolved", stats.NodesResolved).
		Msg("ingest: complete")

	out, err := os.Create(*output)
	if err != nil {
		log.Error().Err(err).Str("path", *output).Msg("ingest: create output")
		return exitFailure
	}
	defer out.Close()

	if err := g.Encode(out); err != nil {
		log.Error().Err(err).Msg("ingest: encode graph")
		return exitFailure
	}
	return exitOK
}

func runCorridorize(args []string) int {
	fs := flag.NewFlagSet("corridorize", flag.ExitOnError)
	input := fs.String("input", "", "path to a graph snapshot (required)")
	output := fs.String("output", "", "path to write the corridor network snapshot (required)")
	configPath := fs.String("config", "", "path to a YAML pipeline config")
	fs.Parse(args)

	if *input == "" || *output == "" {
		fmt.Println("Usage: loopcourse corridorize -input=<graph.gob> -output=<network.gob> [-config=<config.yaml>]")
		fs.PrintDefaults()
		return exitUsage
	}

	cfg := loadConfig(*configPath)
	configureLogging(cfg)

	g, err := decodeGraphFile(*input)
	if err != nil {
		log.Error().Err(err).Msg("corridorize: decode graph")
		return exitFailure
	}

	network, stats, err := corridor.BuildCorridors(g, cfg.Corridor.ToOptions())
	if err != nil {
		log.Error().Err(err).Msg("corridorize: build")
		return exitFailure
	}
	log.Info().
		Int("corridors", len(network.Corridors)).
		Int("connectors", len(network.Connectors)).
		Interface("stats", stats).
		Msg("corridorize: complete")

	out, err := os.Create(*output)
	if err != nil {
		log.Error().Err(err).Str("path", *output).Msg("corridorize: create output")
		return exitFailure
	}
	defer out.Close()

	if err := network.Encode(out); err != nil {
		log.Error().Err(err).Msg("corridorize: encode network")
		return exitFailure
	}
	return exitOK
}

func runRoute(args []string) int {
	fs := flag.NewFlagSet("route", flag.ExitOnError)
	graphPath := fs.String("graph", "", "path to a graph snapshot (required)")
	networkPath := fs.String("network", "", "path to a corridor network snapshot (required)")
	configPath := fs.String("config", "", "path to a YAML pipeline config")
	activityName := fs.String("activity", "running", "activity name (road_cycling, gravel_cycling, running, walking)")
	startLat := fs.Float64("start-lat", 0, "start latitude (required)")
	startLng := fs.Float64("start-lng", 0, "start longitude (required)")
	minDistance := fs.Float64("min-distance", 3000, "minimum loop distance in meters")
	maxDistance := fs.Float64("max-distance", 8000, "maximum loop distance in meters")
	fs.Parse(args)

	if *graphPath == "" || *networkPath == "" {
		fmt.Println("Usage: loopcourse route -graph=<graph.gob> -network=<network.gob> -start-lat=<lat> -start-lng=<lng> [-activity=running] [-min-distance=3000] [-max-distance=8000]")
		fs.PrintDefaults()
		return exitUsage
	}

	cfg := loadConfig(*configPath)
	configureLogging(cfg)

	act, ok := activity.ParseActivity(*activityName)
	if !ok {
		fmt.Fprintf(os.Stderr, "loopcourse: unknown activity %q\n", *activityName)
		return exitUsage
	}

	g, err := decodeGraphFile(*graphPath)
	if err != nil {
		log.Error().Err(err).Msg("route: decode graph")
		return exitFailure
	}
	networkFile, err := os.Open(*networkPath)
	if err != nil {
		log.Error().Err(err).Msg("route: open network")
		return exitFailure
	}
	defer networkFile.Close()
	network, err := corridor.Decode(networkFile)
	if err != nil {
		log.Error().Err(err).Msg("route: decode network")
		return exitFailure
	}

	params := activity.Resolve(act, cfg.BaseConfig(), nil)
	opts := cfg.Search.ApplyTo(search.Options{
		StartCoordinate:   geo.Coordinate{Lat: *startLat, Lng: *startLng},
		MinDistanceMeters: *minDistance,
		MaxDistanceMeters: *maxDistance,
	})

	alternatives, err := search.GenerateLoopRoutes(network, g, params, opts)
	if err != nil {
		log.Error().Err(err).Msg("route: generate")
		return exitFailure
	}
	if alternatives == nil {
		fmt.Fprintln(os.Stderr, "loopcourse: no snap point found within radius of start coordinate")
		return exitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(alternatives); err != nil {
		log.Error().Err(err).Msg("route: encode output")
		return exitFailure
	}
	return exitOK
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "listen address")
	configPath := fs.String("config", "", "path to a YAML pipeline config")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	configureLogging(cfg)

	if err := api.Serve(*addr, cfg); err != nil {
		log.Error().Err(err).Msg("serve: exited")
		return exitFailure
	}
	return exitOK
}

func decodeGraphFile(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return graph.Decode(f)
}
