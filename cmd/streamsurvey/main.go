package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/fluvgeo/streamsurvey/internal/loader"
	"github.com/fluvgeo/streamsurvey/internal/log"
	"github.com/fluvgeo/streamsurvey/internal/server"
	"github.com/fluvgeo/streamsurvey/internal/storage"
	"github.com/fluvgeo/streamsurvey/internal/survey"
	"github.com/fluvgeo/streamsurvey/pkg/config"
)

const version = "1.2-" + runtime.GOOS + "/" + runtime.GOARCH

// resultDoc is the one-shot output document.
type resultDoc struct {
	Units         string                 `json:"units" msgpack:"units"`
	Inspection    survey.GroupInspection `json:"inspection" msgpack:"inspection"`
	Profiles      []survey.Profile       `json:"profiles" msgpack:"profiles"`
	CrossSections []survey.CrossSection  `json:"cross_sections" msgpack:"cross_sections"`
	Diagnostics   []survey.Diagnostic    `json:"diagnostics" msgpack:"diagnostics"`
}

func main() {
	cfgFile := flag.String("config", "", "Path to configuration source (YAML file or SQLite database); defaults apply when omitted")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' or 'sqlite'")
	input := flag.String("input", "", "Path to the survey CSV file (required)")
	inspect := flag.Bool("inspect", false, "Print group inspection (counts per group) and exit; builds no geometry")
	stripNames := flag.Bool("strip-names", false, "Strip morphology tokens from produced feature names")
	noProject := flag.Bool("no-project", false, "Station cross sections by along-path distance instead of centerline projection")
	noGuess := flag.Bool("no-guess", false, "Disable cross-section morphology guessing from group keys")
	output := flag.String("output", "", "Output file path (default stdout)")
	format := flag.String("format", "json", "Output format: 'json' or 'msgpack'")
	store := flag.String("store", "", "Optional results DSN: a SQLite file path or a postgres:// URL")
	serve := flag.String("serve", "", "Serve a read-only REST API on this address instead of one-shot output")
	logFile := flag.String("log-file", "", "Optional rotating log file path")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("streamsurvey %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.InitWithFile(*debug, *logFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *input == "" {
		log.Error("no survey file given; pass -input. Run with -h for help")
		os.Exit(1)
	}

	cfg, err := loadConfig(*cfgFile, *cfgBackend)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	records, err := loader.ReadFile(*input, cfg)
	if err != nil {
		log.Errorf("Failed to read survey file: %v", err)
		os.Exit(1)
	}
	log.Infof("loaded %d survey shots from %s", len(records), *input)

	engine, err := survey.NewEngine(cfg, records, log.GetSugaredLogger())
	if err != nil {
		log.Errorf("Failed to build survey engine: %v", err)
		os.Exit(1)
	}

	if *inspect {
		if err := writeOutput(*output, "json", engine.InspectGroups()); err != nil {
			log.Errorf("Failed to write inspection: %v", err)
			os.Exit(1)
		}
		return
	}

	if *serve != "" {
		if err := runServer(engine, *serve); err != nil {
			log.Errorf("Server error: %v", err)
			os.Exit(1)
		}
		return
	}

	doc := buildAll(engine, *stripNames, *noProject, *noGuess)
	for _, d := range doc.Diagnostics {
		log.Warnf("diagnostic: %s", d)
	}

	if *store != "" {
		if err := storeRun(doc, *store); err != nil {
			log.Errorf("Failed to store run: %v", err)
			os.Exit(1)
		}
	}

	if err := writeOutput(*output, *format, doc); err != nil {
		log.Errorf("Failed to write output: %v", err)
		os.Exit(1)
	}
}

func loadConfig(cfgFile, cfgBackend string) (*config.SurveyData, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	filename, _ := filepath.Abs(cfgFile)

	var provider config.Provider
	var err error

	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		provider, err = config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
	defer provider.Close()

	return provider.LoadConfig()
}

func buildAll(engine *survey.Engine, stripNames, noProject, noGuess bool) *resultDoc {
	profiles, profDiags := engine.BuildProfiles(survey.ProfileOptions{StripName: stripNames})

	xsOpts := survey.DefaultCrossSectionOptions()
	xsOpts.StripName = stripNames
	xsOpts.Project = !noProject
	xsOpts.GuessType = !noGuess
	sections, xsDiags := engine.BuildCrossSections(xsOpts)

	return &resultDoc{
		Units:         engine.Units(),
		Inspection:    engine.InspectGroups(),
		Profiles:      profiles,
		CrossSections: sections,
		Diagnostics:   append(profDiags, xsDiags...),
	}
}

func storeRun(doc *resultDoc, dsn string) error {
	backend, err := storage.Open(dsn)
	if err != nil {
		return err
	}
	defer backend.Close()

	result := storage.NewResult(doc.Units)
	result.Profiles = doc.Profiles
	result.CrossSections = doc.CrossSections
	result.Diagnostics = doc.Diagnostics

	if err := backend.SaveRun(context.Background(), result); err != nil {
		return err
	}
	log.Infof("stored run %s", result.RunID)
	return nil
}

func writeOutput(path, format string, v interface{}) error {
	var out *os.File
	if path == "" {
		out = os.Stdout
	} else {
		var err error
		out, err = os.Create(path)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "msgpack":
		data, err := msgpack.Marshal(v)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s. Use 'json' or 'msgpack'", format)
	}
}

func runServer(engine *survey.Engine, addr string) error {
	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := server.NewController(ctx, &wg, engine, addr, log.GetSugaredLogger())
	if err := ctrl.StartController(); err != nil {
		return err
	}
	log.Infof("REST server listening on %s", addr)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("shutdown signal received, initiating graceful shutdown...")

	cancel()
	wg.Wait()
	log.Info("shutdown complete")
	return nil
}
