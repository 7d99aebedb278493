// Command mimeinspect parses AS2 messages and prints how each MIME entity is
// classified (signed, encrypted, compressed, report, binary, multipart).
//
// Usage:
//
//	mimeinspect [-config config.yaml] [-mbox] [-format yaml|text] FILE...
//
// Without FILE arguments a single message is read from standard input.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sirosfoundation/go-as2/internal/config"
	"github.com/sirosfoundation/go-as2/internal/inspect"
)

var (
	configPath = flag.String("config", "", "Path to YAML configuration file")
	isMbox     = flag.Bool("mbox", false, "Treat input files as mbox archives")
	format     = flag.String("format", "", "Output format: yaml or text (overrides config)")
)

func main() {
	flag.Parse()

	if err := run(flag.Args(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mimeinspect: %v\n", err)
		os.Exit(1)
	}
}

func run(paths []string, stdin io.Reader, stdout io.Writer) error {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *format != "" {
		cfg.Output.Format = *format
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	inspector := inspect.New(cfg, logger)

	var reports []*inspect.Report
	if len(paths) == 0 {
		stdinReports, err := inspectStdin(inspector, stdin)
		if err != nil {
			return err
		}
		reports = stdinReports
	}

	for _, path := range paths {
		fileReports, err := inspector.InspectFile(path, *isMbox)
		if err != nil {
			return err
		}
		reports = append(reports, fileReports...)
	}

	switch cfg.Output.Format {
	case "text":
		return inspect.WriteText(stdout, reports)
	case "yaml":
		return inspect.WriteYAML(stdout, reports)
	default:
		return fmt.Errorf("unknown output format: %s", cfg.Output.Format)
	}
}

func inspectStdin(inspector *inspect.Inspector, stdin io.Reader) ([]*inspect.Report, error) {
	if *isMbox {
		return inspector.InspectMbox(stdin)
	}
	report, err := inspector.InspectReader(stdin)
	if err != nil {
		return nil, err
	}
	return []*inspect.Report{report}, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
