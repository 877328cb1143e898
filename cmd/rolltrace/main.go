// rolltrace runs the cube choreography headless and prints what it did.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Faultbox/rollcube/internal/choreo"
	"github.com/Faultbox/rollcube/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "run":
		err = cmdRun(os.Stdout, args)
	case "path":
		err = cmdPath(os.Stdout, args)
	case "timing":
		err = cmdTiming(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`rolltrace - headless rollcube timeline

Usage:
  rolltrace <command> [options]

Commands:
  run [-config file] [-step 10ms] [-format table|yaml]   Play one run and print it
  path [-format table|yaml]                              Print the roll path
  timing [-config file] [-format table|yaml]             Print the timeline durations

Examples:
  rolltrace run
  rolltrace run -step 1ms -format yaml
  rolltrace timing -config config.yaml`)
}

// loadTiming reads the animation section of a config file, or the defaults.
func loadTiming(path string) (choreo.Timing, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return choreo.Timing{}, err
	}
	if err := cfg.Validate(); err != nil {
		return choreo.Timing{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg.Animation.Timing(), nil
}

func checkFormat(format string) error {
	switch format {
	case "table", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func cmdRun(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file")
	step := fs.Duration("step", 10*time.Millisecond, "Frame step")
	format := fs.String("format", "table", "Output format: table or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	timing, err := loadTiming(*configPath)
	if err != nil {
		return err
	}
	limit := 2*timing.Total(len(choreo.ReferencePath)) + time.Second
	tr, err := runTrace(timing, *step, limit)
	if err != nil {
		return err
	}

	if *format == "yaml" {
		return writeYAML(w, tr)
	}
	writeTraceTable(w, tr)
	return nil
}

func cmdPath(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("path", flag.ContinueOnError)
	format := fs.String("format", "table", "Output format: table or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	rows := pathRows(choreo.ReferencePath)
	if *format == "yaml" {
		return writeYAML(w, rows)
	}
	writePathTable(w, rows)
	fmt.Fprintf(w, "\n(%d steps, %d footprints)\n", len(rows), choreo.FootprintSteps(choreo.ReferencePath))
	return nil
}

func cmdTiming(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("timing", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file")
	format := fs.String("format", "table", "Output format: table or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	timing, err := loadTiming(*configPath)
	if err != nil {
		return err
	}
	rows := timingRows(timing, len(choreo.ReferencePath))
	if *format == "yaml" {
		return writeYAML(w, rows)
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-12s %s\n", r.Name, r.Duration)
	}
	return nil
}
