// strand-check verifies that files hold exactly one well-formed JSON value.
//
// Every file is scanned with the JSON format of the strand package without
// building any values. For each file a line with either "ok" or the decode
// error, including its offset, is printed. The exit code is 1 if any file
// failed.
package main

import (
	"errors"
	"fmt"
	"github.com/go-gum/strand"
	"github.com/spf13/pflag"
	"io"
	"log/slog"
	"os"
)

var errInvalid = errors.New("invalid input")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}

type options struct {
	Whitespace bool
	JSONC      bool
	Debug      bool
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("strand-check", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.BoolVarP(&opts.Whitespace, "whitespace", "w", false, "allow whitespace between tokens")
	flagSet.BoolVar(&opts.JSONC, "jsonc", false, "allow comments and trailing commas, implies --whitespace")
	flagSet.BoolVar(&opts.Debug, "debug", false, "log every scanned value to stderr")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}

		return err
	}

	files := flagSet.Args()
	if len(files) == 0 {
		return fmt.Errorf("usage: strand-check [flags] FILE...")
	}

	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	decoder := strand.Trace("value", logger, strand.Raw())

	failed := 0

	for _, file := range files {
		input, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}

		if err := check(input, decoder, opts); err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", file, err)
			failed++
			continue
		}

		fmt.Fprintf(stdout, "%s: ok\n", file)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed: %w", failed, len(files), errInvalid)
	}

	return nil
}

func check(input []byte, decoder strand.Decoder[[]byte], opts options) error {
	if opts.JSONC {
		_, err := strand.DecodeJSONC(input, decoder)
		return err
	}

	_, err := strand.Decode(input, decoder, strand.JSON{Whitespace: opts.Whitespace})
	return err
}
