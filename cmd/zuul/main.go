// Zuul's Dungeon is a turn-based text adventure.
// Usage: zuul [--version] [--plain] [--script <file>] [--trace] [--config <file>] [--content <dir>] [--seed <n>]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/zuul/cli"
	"github.com/nathoo/zuul/config"
	"github.com/nathoo/zuul/content"
	"github.com/nathoo/zuul/engine"
	"github.com/nathoo/zuul/engine/state"
	"github.com/nathoo/zuul/loader"
	"github.com/nathoo/zuul/logger"
	"github.com/nathoo/zuul/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: zuul [--version] [--plain] [--script <file>] [--trace] [--config <file>] [--content <dir>] [--seed <n>]"

// options holds the parsed command line.
type options struct {
	version    bool
	plain      bool
	trace      bool
	scriptFile string
	configFile string
	contentDir string
	seed       int64
}

var errUsage = errors.New(usage)

func parseArgs(args []string) (options, error) {
	var opts options
	value := func(i *int, flag string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "--version":
			opts.version = true
		case "--plain":
			opts.plain = true
		case "--trace":
			opts.trace = true
		case "--script":
			opts.scriptFile, err = value(&i, "--script")
		case "--config":
			opts.configFile, err = value(&i, "--config")
		case "--content":
			opts.contentDir, err = value(&i, "--content")
		case "--seed":
			var s string
			if s, err = value(&i, "--seed"); err == nil {
				opts.seed, err = strconv.ParseInt(s, 10, 64)
				if err != nil {
					err = fmt.Errorf("--seed: %w", err)
				}
			}
		default:
			err = errUsage
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if opts.version {
		fmt.Printf("zuul %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if opts.contentDir != "" {
		cfg.ContentDir = opts.contentDir
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}

	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, logOut)

	// Load and compile Lua game content.
	var defs *state.Defs
	if cfg.ContentDir != "" {
		defs, err = loader.Load(cfg.ContentDir)
	} else {
		defs, err = loader.LoadFS(content.FS)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.WithField("seed", seed).Debug("dice seeded")

	start := func(name string) (*engine.Engine, error) {
		return engine.New(defs, name, engine.Options{
			Logger:              log,
			Seed:                seed,
			HistoryLimit:        cfg.HistoryLimit,
			CountdownTurns:      cfg.CountdownTurns,
			DisableCountdown:    !cfg.Countdown,
			UnknownCountsAsTurn: cfg.UnknownCountsAsTurn,
		})
	}

	// Script mode: open file, force plain, echo commands.
	if opts.scriptFile != "" {
		f, err := os.Open(opts.scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(start)
		c.In = f
		c.EchoInput = true
		c.Trace = opts.trace
		c.Width = cfg.WrapWidth
		runPlain(c)
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if opts.plain || !isTerminal() {
		c := cli.New(start)
		c.Trace = opts.trace
		c.Width = cfg.WrapWidth
		runPlain(c)
		return
	}

	if err := tui.Run(start, defs.Game.Title); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPlain(c *cli.CLI) {
	if err := c.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
