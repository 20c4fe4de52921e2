package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
)

type CLI struct {
	LogLevel  string `help:"Log level (debug, info, warn, error)" env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error"`
	LogFormat string `help:"Log output format" env:"LOG_FORMAT" default:"text" enum:"text,json"`

	Decode DecodeCLI `cmd:"" help:"Decode a multipart/form-data body and print it as JSON"`
	Serve  ServeCLI  `cmd:"" help:"Run the HTTP form decoding service"`
}

func main() {
	var cli CLI
	ktx := kong.Parse(&cli,
		kong.Name("multiform"),
		kong.Description("Decode multipart/form-data request bodies."),
		kong.UsageOnError(),
	)

	logger, err := newLogger(os.Stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ktx.FatalIfErrorf(ktx.Run(logger))
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
	default:
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})), nil
	}
}
