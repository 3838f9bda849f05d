// Copyright © 2024 Mutker Telag <witty.text5011@fastmail.com>
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"codeberg.org/mutker/xprintidle/internal/config"
	"codeberg.org/mutker/xprintidle/internal/duration"
	"codeberg.org/mutker/xprintidle/internal/errors"
	"codeberg.org/mutker/xprintidle/internal/history"
	"codeberg.org/mutker/xprintidle/internal/idle"
	"codeberg.org/mutker/xprintidle/internal/logger"
	"codeberg.org/mutker/xprintidle/internal/xserver"
	"github.com/spf13/pflag"
)

const programName = "xprintidle"

// Set with -ldflags "-X main.version=...".
var version = "0.3.0"

const (
	exitSuccess = 0
	exitFailure = 1
)

type mode int

const (
	modeRaw mode = iota
	modeHuman
	modeVersion
	modeHelp
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, xserver.Dialer{}))
}

func run(args []string, stdout, stderr io.Writer, dialer idle.Dialer) int {
	m, err := parseArgs(args)
	if err != nil {
		fmt.Fprint(stderr, usage())
		return exitFailure
	}

	switch m {
	case modeVersion:
		fmt.Fprintf(stdout, "%s %s\n", programName, version)
		return exitSuccess
	case modeHelp:
		fmt.Fprint(stdout, usage())
		return exitFailure
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitFailure
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	logger.Init(level, stderr)
	logger.Debug().Str("display", cfg.Display).Msg("Config loaded")

	result, err := idle.Query(dialer, cfg.Display)
	if err != nil {
		logger.Debug().Str("error_code", string(errors.CodeOf(err))).Msg("Idle query failed")
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	record(cfg, result)

	if m == modeHuman {
		fmt.Fprint(stdout, duration.Human(result.Millis()))
	} else {
		fmt.Fprintln(stdout, strconv.FormatUint(result.Millis(), 10))
	}

	return exitSuccess
}

// record appends result to the sample history. Failures are logged and
// never affect the printed result.
func record(cfg *config.Config, result idle.Result) {
	rec, err := history.NewService(history.Config{
		DBPath:  cfg.History.Path,
		Enabled: cfg.History.Enabled,
	}, logger.Default())
	if err != nil {
		logger.Warn().Err(err).Msg("failed to open history")
		return
	}
	defer func() {
		if err := rec.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close history")
		}
	}()

	err = rec.Record(context.Background(), &history.Sample{
		Timestamp:     time.Now(),
		RawMillis:     result.Raw,
		Millis:        result.Millis(),
		VendorRelease: result.VendorRelease,
		Gated:         result.Gated,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to record idle sample")
	}
}

type flags struct {
	version bool
	human   bool
	help    bool
}

func newFlagSet(f *flags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.BoolVarP(&f.help, "help", "h", false, "print this help and exit")
	fs.BoolVarP(&f.version, "version", "v", false, "print version information and exit")
	fs.BoolVarP(&f.human, "human-readable", "H", false, "print idle time in a human-readable format")

	return fs
}

// knownOptions lists the only accepted spellings. pflag alone would also
// take forms like "--version=true" or "-vH".
var knownOptions = map[string]bool{
	"-h": true, "--help": true,
	"-v": true, "--version": true,
	"-H": true, "--human-readable": true,
}

// parseArgs accepts no arguments or exactly one recognized flag.
func parseArgs(args []string) (mode, error) {
	errFactory := errors.New()

	if len(args) == 0 {
		return modeRaw, nil
	}

	if len(args) > 1 {
		return modeRaw, errFactory.WithData(errors.ErrUsage, strings.Join(args, " "))
	}

	if !knownOptions[args[0]] {
		return modeRaw, errFactory.WithData(errors.ErrUsage, args[0])
	}

	var f flags
	fs := newFlagSet(&f)
	if err := fs.Parse(args); err != nil {
		return modeRaw, errFactory.Wrap(errors.ErrUsage, err)
	}

	if fs.NArg() != 0 || fs.NFlag() != 1 {
		return modeRaw, errFactory.WithData(errors.ErrUsage, args[0])
	}

	switch {
	case f.version:
		return modeVersion, nil
	case f.human:
		return modeHuman, nil
	case f.help:
		return modeHelp, nil
	default:
		return modeRaw, errFactory.WithData(errors.ErrUsage, args[0])
	}
}

func usage() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Usage: %s [OPTION]\n", programName)
	b.WriteString("Print the time since the last user input in milliseconds.\n\n")
	b.WriteString("Options:\n")
	b.WriteString(newFlagSet(&flags{}).FlagUsages())

	return b.String()
}
