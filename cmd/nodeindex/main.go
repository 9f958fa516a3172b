// Command nodeindex builds a node location index and dumps it as a flat list
// of (id, location) records in ascending id order.
//
// Input lines have the form "<id> <lon> <lat>":
//
//	nodeindex -in nodes.txt -out nodes.bin -compress zstd
//	nodeindex -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bvbever/osm2pgsql/export"
	"github.com/bvbever/osm2pgsql/index"
	_ "github.com/bvbever/osm2pgsql/index/sparse" // register sparse_mem_map
	"github.com/bvbever/osm2pgsql/internal/fs"
	"github.com/bvbever/osm2pgsql/internal/logging"
	"github.com/bvbever/osm2pgsql/model"
)

type config struct {
	mapType   string
	in        string
	out       string
	compress  string
	logFormat string
	logLevel  string
	noSync    bool
	list      bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fset := flag.NewFlagSet("nodeindex", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.StringVar(&cfg.mapType, "index", "sparse_mem_map", "map type (see -list)")
	fset.StringVar(&cfg.in, "in", "-", "input file, - for stdin")
	fset.StringVar(&cfg.out, "out", "", "dump file, - for stdout, empty to skip the dump")
	fset.StringVar(&cfg.compress, "compress", "none", "dump compression: none, lz4, zstd")
	fset.StringVar(&cfg.logFormat, "log-format", "text", "log format: text, json")
	fset.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fset.BoolVar(&cfg.noSync, "no-sync", false, "do not fsync the dump file")
	fset.BoolVar(&cfg.list, "list", false, "list available map types and exit")
	if err := fset.Parse(args); err != nil {
		return cfg, err
	}
	if fset.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fset.Args())
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	if cfg.list {
		for _, name := range index.NodeLocations.Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	level, err := logging.ParseLevel(cfg.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger, err := logging.New(stderr, cfg.logFormat, level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := build(ctx, cfg, stdin, stdout, logger); err != nil {
		logger.ErrorContext(ctx, "nodeindex failed", "error", err)
		return 1
	}
	return 0
}

func build(ctx context.Context, cfg config, stdin io.Reader, stdout io.Writer, logger *logging.Logger) error {
	compression, err := export.ParseCompression(cfg.compress)
	if err != nil {
		return err
	}

	m, err := index.NodeLocations.Create(cfg.mapType)
	if err != nil {
		return err
	}
	logger = logger.WithMap(m.Name())

	src, source := stdin, "stdin"
	if cfg.in != "-" {
		f, err := os.Open(cfg.in)
		if err != nil {
			return err
		}
		defer f.Close()
		src, source = f, cfg.in
	}

	start := time.Now()
	lines, err := load(ctx, src, m)
	logger.LogLoad(ctx, source, lines, m.Len(), time.Since(start), err)
	if err != nil {
		return err
	}
	logger.LogMemory(ctx, m.Len(), m.UsedMemory())

	switch cfg.out {
	case "":
		return nil
	case "-":
		return dumpStream(ctx, m, stdout, compression, logger)
	default:
		return dumpFile(ctx, m, cfg.out, compression, !cfg.noSync, logger)
	}
}

func dumpFile(ctx context.Context, m index.Map[model.NodeID, model.Location], path string, c export.Compression, sync bool, logger *logging.Logger) error {
	f, err := export.Create(path, export.WithCompression(c), export.WithSync(sync))
	if err != nil {
		return err
	}
	if err := m.DumpAsList(f); err != nil {
		_ = f.Abort()
		logger.LogDump(ctx, path, f.Written(), err)
		return err
	}
	err = f.Commit()
	logger.LogDump(ctx, path, f.Written(), err)
	return err
}

func dumpStream(ctx context.Context, m index.Map[model.NodeID, model.Location], stdout io.Writer, c export.Compression, logger *logging.Logger) error {
	var sink io.Writer = stdout
	if f, ok := stdout.(*os.File); ok {
		sink = fs.NewFDWriter(int(f.Fd()))
	}
	rw := fs.NewReliableWriter(sink)

	w, err := export.NewWriter(rw, c)
	if err != nil {
		return err
	}
	if err := m.DumpAsList(w); err != nil {
		logger.LogDump(ctx, "-", rw.Written(), err)
		return err
	}
	err = w.Close()
	logger.LogDump(ctx, "-", rw.Written(), err)
	return err
}
