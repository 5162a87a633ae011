// Package pagesim implements the page replacement simulator command.
package pagesim

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sibexico/PageSim/paging"
)

// Config is the parsed command configuration
type Config struct {
	Sim *paging.Config

	ConfigPath string // Optional JSON config file
	Pages      string // Explicit reference string, overrides generation
	TracePath  string // Write a trace archive here when set
	ReplayPath string // Render a saved trace archive instead of simulating
	Color      string // auto, always, never
}

// ParseConfig builds the configuration from defaults, an optional JSON file,
// PAGESIM_* environment variables and finally command-line flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}

	var (
		cfg          Config
		capacity     int
		algorithms   string
		length       int
		maxPage      int
		distribution string
		skew         float64
		seed         int64
		logLevel     string
		compression  string
		metrics      bool
	)

	fs.StringVar(&cfg.ConfigPath, "config", "", "path to a JSON config file")
	fs.StringVar(&cfg.Pages, "pages", "", "reference string, e.g. \"7,0,1,2,0,3\"")
	fs.StringVar(&cfg.TracePath, "trace", "", "write a compressed trace archive to this path")
	fs.StringVar(&cfg.ReplayPath, "replay", "", "render a trace archive instead of simulating")
	fs.StringVar(&cfg.Color, "color", "auto", "colorize HIT/MISS: auto, always or never")
	fs.IntVar(&capacity, "capacity", 0, "number of frames")
	fs.StringVar(&algorithms, "algorithms", "", "comma-separated algorithms (FIFO,LRU,OPTIMAL,CLOCK,LFU)")
	fs.IntVar(&length, "length", 0, "generated reference string length")
	fs.IntVar(&maxPage, "max-page", 0, "largest generated page number")
	fs.StringVar(&distribution, "distribution", "", "uniform, zipfian or sequential")
	fs.Float64Var(&skew, "skew", 0, "zipfian constant")
	fs.Int64Var(&seed, "seed", 0, "workload seed (0 picks one)")
	fs.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&compression, "compression", "", "trace compression: none, lz4 or snappy")
	fs.BoolVar(&metrics, "metrics", false, "log per-algorithm metrics")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	sim := paging.DefaultConfig()
	if cfg.ConfigPath != "" {
		loaded, err := paging.LoadConfigFromFile(cfg.ConfigPath)
		if err != nil {
			return Config{}, err
		}
		sim = loaded
	}
	if err := sim.ApplyEnv(); err != nil {
		return Config{}, err
	}

	// Only flags given on the command line override file and env values
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "capacity":
			sim.Capacity = capacity
		case "algorithms":
			sim.Algorithms = splitList(algorithms)
		case "length":
			sim.ReferenceLength = length
		case "max-page":
			sim.MaxPage = maxPage
		case "distribution":
			sim.Distribution = distribution
		case "skew":
			sim.ZipfSkew = skew
		case "seed":
			sim.Seed = seed
		case "log-level":
			sim.LogLevel = logLevel
		case "compression":
			sim.TraceCompression = compression
		case "metrics":
			sim.EnableMetrics = metrics
		}
	})

	if err := sim.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return Config{}, fmt.Errorf("invalid color mode %q", cfg.Color)
	}

	cfg.Sim = sim
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Run executes the simulator and renders the results to stdout. Logs go to stderr.
func Run(ctx context.Context, cfg Config, stdout, stderr io.Writer) error {
	if cfg.Sim == nil {
		return errors.New("simulation config is required")
	}
	level, err := cfg.Sim.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	out := newRenderer(stdout, colorEnabled(cfg.Color, stdout))

	if cfg.ReplayPath != "" {
		trace, err := paging.ReadTraceFile(cfg.ReplayPath)
		if err != nil {
			return err
		}
		logger.Info("replaying trace",
			slog.String("path", cfg.ReplayPath),
			slog.Int("capacity", trace.Capacity),
			slog.Int("references", len(trace.Pages)),
		)
		return out.renderTrace(trace)
	}

	trace := &paging.Trace{Capacity: cfg.Sim.Capacity}
	if cfg.Pages != "" {
		pages, err := paging.ParsePages(cfg.Pages)
		if err != nil {
			return err
		}
		if err := paging.CheckPages(pages, -1); err != nil {
			return err
		}
		trace.Pages = pages
	} else {
		workload, err := paging.GenerateReferenceString(cfg.Sim.Workload())
		if err != nil {
			return err
		}
		logger.Debug("generated reference string",
			slog.String("distribution", cfg.Sim.Distribution),
			slog.Int("length", len(workload.Pages)),
			slog.Int64("seed", workload.Seed),
		)
		trace.Pages = workload.Pages
		trace.Seed = workload.Seed
	}

	metrics := paging.NewMetrics()
	sim, err := paging.NewSimulator(cfg.Sim, logger, metrics)
	if err != nil {
		return err
	}

	report, err := sim.RunSelected(ctx, trace.Pages)
	if err != nil {
		return err
	}
	trace.Report = report

	if err := out.renderTrace(trace); err != nil {
		return err
	}

	if cfg.Sim.EnableMetrics {
		metrics.LogMetrics(logger)
	}

	if cfg.TracePath != "" {
		compression, err := paging.ParseCompressionType(cfg.Sim.TraceCompression)
		if err != nil {
			return err
		}
		if err := paging.WriteTraceFile(cfg.TracePath, trace, compression); err != nil {
			return err
		}
		logger.Info("trace written",
			slog.String("path", cfg.TracePath),
			slog.String("compression", compression.String()),
		)
	}

	return nil
}
