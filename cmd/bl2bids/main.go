// Package main provides the CLI entrypoint for bl2bids.
//
// bl2bids reads a brainlife input manifest (config.json) and lays the staged
// inputs out as a BIDS dataset:
//
//	bl2bids [-config config.json] [-out bids] [-copy] [-task-id ID] [-v] [-dump]
//
// Per-record problems are printed and do not change the exit code. The exit
// code is 1 when the manifest cannot be used or the dataset description
// cannot be written.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"

	"bl2bids/internal/install"
	"bl2bids/internal/manifest"
	"bl2bids/internal/placement"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	config  string
	out     string
	copy    bool
	taskID  string
	verbose bool
	dump    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("bl2bids", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.config, "config", "config.json", "input manifest (JSON, or YAML by extension)")
	fs.StringVar(&opts.out, "out", placement.DefaultConfig().OutputRoot, "root of the BIDS tree")
	fs.BoolVar(&opts.copy, "copy", false, "copy files instead of linking them")
	fs.StringVar(&opts.taskID, "task-id", os.Getenv("TASK_ID"), "task id appended to the dataset name")
	fs.BoolVar(&opts.verbose, "v", false, "log debug messages")
	fs.BoolVar(&opts.dump, "dump", false, "dump the resolved manifest and report")

	err := fs.Parse(args)

	return opts, err
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		return exitUsage
	}

	log.SetOutput(stderr)

	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}

	m, err := manifest.LoadFile(opts.config)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	cfg := placement.DefaultConfig()
	cfg.OutputRoot = opts.out
	cfg.TaskID = opts.taskID

	if opts.copy {
		cfg.Mode = install.ModeCopy
	}

	if opts.dump {
		records, _ := manifest.Resolve(m)
		spew.Fdump(stdout, records)
	}

	report, err := placement.NewEngine(cfg, nil, nil, nil).Run(m)

	if report != nil {
		for _, d := range report.Diagnostics.Infos {
			log.WithField("severity", d.Severity.String()).Debug(d.String())
		}

		for _, d := range report.Diagnostics.Warnings {
			fmt.Fprintf(stderr, "%s: %s\n", d.Severity, d)
		}

		if derr := report.Diagnostics.Error(); derr != nil {
			fmt.Fprintf(stderr, "%d record error(s):\n%v\n", len(report.Diagnostics.Errors), derr)
		}

		if opts.dump {
			spew.Fdump(stdout, report)
		}
	}

	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	return exitOK
}
