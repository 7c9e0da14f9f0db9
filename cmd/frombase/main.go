// Command frombase converts numbers written in an arbitrary radix to bytes.
//
// Usage:
//
//	frombase convert [-base N] [-table TABLE] [-binary] [-out hex|raw|base64] [INPUT]
//	frombase encode [-table TABLE] [-in hex|raw|base64] [INPUT]
//	frombase serve [-encoding json|msgpack] [-workers N]
//	frombase signature
//	frombase tables
//
// With convert,
// INPUT is text decoded through TABLE,
// whose length is the radix.
// If -base is also given it must equal the table length.
// With -binary,
// INPUT is a hex string such as "0x[01 0A 17 10]"
// whose bytes already are digit values,
// and -base is required.
// When INPUT is omitted it is read from standard input.
//
// TABLE is either a literal alphabet or @NAME for a registered table
// (see frombase tables).
// Additional tables can be defined in the config file.
//
// With serve,
// frombase speaks the plugin protocol on standard input and output.
//
// Configuration is read from frombase.yaml in the working directory
// or in $HOME/.config/frombase,
// or from the file named by $FROMBASE_CONFIG.
// Any setting can be overridden with a FROMBASE_ environment variable,
// e.g. FROMBASE_LOG_LEVEL=debug.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bobg/subcmd/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/horasal/frombase/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return errors.Wrap(err, "loading config")
	}
	if err := cfg.RegisterTables(); err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := maincmd{
		cfg:    cfg,
		log:    logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
	return subcmd.Run(ctx, c, os.Args[1:])
}

type maincmd struct {
	cfg    *config.Config
	log    zerolog.Logger
	stdin  io.Reader
	stdout io.Writer
}

func (c maincmd) Subcmds() subcmd.Map {
	return subcmd.Commands(
		"convert", c.doConvert, "convert text or digit bytes in some base to bytes", subcmd.Params(
			"-base", subcmd.Int, 0, "base of input (required with -binary)",
			"-table", subcmd.String, c.cfg.DefaultTable, "source table, literal or @name",
			"-binary", subcmd.Bool, false, "input is hex-encoded digit bytes",
			"-out", subcmd.String, "hex", "output format: hex, raw or base64",
		),
		"encode", c.doEncode, "render bytes as text in the base of a table", subcmd.Params(
			"-table", subcmd.String, c.cfg.DefaultTable, "target table, literal or @name",
			"-in", subcmd.String, "hex", "input format: hex, raw or base64",
		),
		"serve", c.doServe, "speak the plugin protocol on stdin and stdout", subcmd.Params(
			"-encoding", subcmd.String, c.cfg.Plugin.Encoding, "wire encoding: json or msgpack",
			"-workers", subcmd.Int, c.cfg.Plugin.Workers, "maximum concurrent conversions",
		),
		"signature", c.doSignature, "print the plugin signature as JSON", subcmd.Params(),
		"tables", c.doTables, "list registered tables", subcmd.Params(),
	)
}

func newLogger(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "parsing log level %q", cfg.Level)
	}
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
