// Command ormar generates typed model code from serialized schema
// snapshots (the output of models.MarshalModel).
//
// Usage:
//
//	ormar generate [-config ormar.yaml] [-watch]
//
// The config file names the snapshot directory, the output directory and
// the generated package:
//
//	schema_dir: schema
//	out_dir: internal/models
//	package: models
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/AirbornePM/ormar/compiler/gen"
)

type config struct {
	SchemaDir string `yaml:"schema_dir"`
	OutDir    string `yaml:"out_dir"`
	Package   string `yaml:"package"`
	Workers   int    `yaml:"workers"`
}

func loadConfig(path string) (*config, error) {
	cfg := &config{SchemaDir: "schema", OutDir: "models"}
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	var (
		configPath = flag.String("config", "ormar.yaml", "path to the config file")
		watch      = flag.Bool("watch", false, "regenerate on schema snapshot changes")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: ormar generate [-config ormar.yaml] [-watch] [-debug]")
		flag.PrintDefaults()
	}
	// Flags follow the subcommand.
	args := os.Args[1:]
	if len(args) < 1 || args[0] != "generate" {
		flag.Usage()
		os.Exit(2)
	}
	flag.CommandLine.Parse(args[1:])

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*debug {
		log = log.Level(zerolog.InfoLevel)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := generate(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("generate")
	}
	if !*watch {
		return
	}
	if err := watchLoop(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("watch")
	}
}

func generate(ctx context.Context, cfg *config, log zerolog.Logger) error {
	g, err := gen.LoadDir(cfg.SchemaDir)
	if err != nil {
		return err
	}
	log.Info().Strs("schemas", g.Names()).Str("out", cfg.OutDir).Msg("generating")
	return gen.NewGenerator(g, cfg.OutDir).
		WithPackage(cfg.Package).
		WithWorkers(cfg.Workers).
		WithLogger(log).
		Generate(ctx)
}

// watchLoop regenerates whenever a schema snapshot changes. Generation
// errors are reported and the loop keeps running.
func watchLoop(ctx context.Context, cfg *config, log zerolog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(cfg.SchemaDir); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.SchemaDir, err)
	}
	log.Info().Str("dir", cfg.SchemaDir).Msg("watching for schema changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(filepath.Base(ev.Name), ".json") {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("schema changed")
			if err := generate(ctx, cfg, log); err != nil {
				log.Error().Err(err).Msg("regenerate")
			}
		}
	}
}
