// asciimandel prints an ASCII-art rendering of the Mandelbrot set to standard output.
// Diagnostics go to standard error, so the output can be redirected as is.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	mandel "github.com/marben/ascii_mandel"
	"github.com/marben/ascii_mandel/internal/config"
	"github.com/marben/ascii_mandel/render"
)

// Version information (set via ldflags during build).
var version = "dev"

// errUsage marks errors already reported by the flag package
var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix("asciimandel: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			log.Printf("Error: %v", err)
		}
		stop()
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	verbose     bool
	showVersion bool
	workers     int
	params      mandel.Params
}

// parseFlags layers explicitly set flags over the config file over the built-in defaults
func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("asciimandel", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := options{workers: 1}
	flags := mandel.DefaultParams()
	var workers int

	fs.StringVar(&opts.configPath, "config", "", "Path to a TOML or YAML configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to a TOML or YAML configuration file (shorthand)")
	fs.IntVar(&flags.Viewport.W, "width", flags.Viewport.W, "Viewport width in characters")
	fs.IntVar(&flags.Viewport.H, "height", flags.Viewport.H, "Viewport height in characters")
	fs.Float64Var(&flags.Region.Xmin, "x1", flags.Region.Xmin, "Real part of the first plane corner")
	fs.Float64Var(&flags.Region.Ymin, "y1", flags.Region.Ymin, "Imaginary part of the first plane corner")
	fs.Float64Var(&flags.Region.Xmax, "x2", flags.Region.Xmax, "Real part of the second plane corner")
	fs.Float64Var(&flags.Region.Ymax, "y2", flags.Region.Ymax, "Imaginary part of the second plane corner")
	fs.IntVar(&flags.MaxIter, "max-iter", flags.MaxIter, "Iteration budget per cell (must be positive)")
	fs.IntVar(&workers, "workers", 1, "Rows computed concurrently (1 renders sequentially)")
	fs.BoolVar(&opts.verbose, "v", false, "Log timing and progress to stderr")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: asciimandel [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, err
		}
		return opts, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %q\n", fs.Args())
		fs.Usage()
		return opts, fmt.Errorf("%w: unexpected arguments %q", errUsage, fs.Args())
	}

	opts.params = mandel.DefaultParams()
	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return opts, fmt.Errorf("config: %w", err)
		}
		cfg.Apply(&opts.params, &opts.workers)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			opts.params.Viewport.W = flags.Viewport.W
		case "height":
			opts.params.Viewport.H = flags.Viewport.H
		case "x1":
			opts.params.Region.Xmin = flags.Region.Xmin
		case "y1":
			opts.params.Region.Ymin = flags.Region.Ymin
		case "x2":
			opts.params.Region.Xmax = flags.Region.Xmax
		case "y2":
			opts.params.Region.Ymax = flags.Region.Ymax
		case "max-iter":
			opts.params.MaxIter = flags.MaxIter
		case "workers":
			opts.workers = workers
		}
	})

	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "asciimandel %s\n", version)
		return nil
	}

	if err := opts.params.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(stderr, "asciimandel: ", log.Lmicroseconds)
	}

	warnIfTerminalTooNarrow(stdout, opts.params.Viewport.W)

	p := opts.params
	logger.Printf("rendering %dx%d, region %+v, max iterations %d, workers %d",
		p.Viewport.W, p.Viewport.H, p.Region, p.MaxIter, opts.workers)

	start := time.Now()
	err = render.Render(ctx, stdout, p,
		render.WithWorkers(opts.workers),
		render.WithProgress(func(done, total int) {
			if done%10 == 0 || done == total {
				logger.Printf("rows: %d/%d", done, total)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	logger.Printf("render took %s", time.Since(start))
	return nil
}

// warnIfTerminalTooNarrow logs when rows would wrap on the attached terminal
func warnIfTerminalTooNarrow(w io.Writer, width int) {
	f, ok := w.(*os.File)
	if !ok {
		return
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols >= width {
		return
	}
	log.Printf("warning: terminal is %d columns wide, rows of %d characters will wrap", cols, width)
}
