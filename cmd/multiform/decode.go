package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tomasbasham/multiform"
)

type DecodeCLI struct {
	Boundary    string `help:"Boundary token, without the leading dashes" short:"b" xor:"boundary"`
	ContentType string `help:"Content-Type header value to take the boundary from" short:"t" xor:"boundary"`
	Store       string `help:"Directory to write uploaded files to (default: system temp dir)" short:"s" type:"path"`
	DryRun      bool   `help:"Keep uploaded files in memory instead of writing them" short:"n"`
	File        string `arg:"" help:"File holding the raw body, or - for stdin" default:"-"`
}

func (c *DecodeCLI) Run(logger *slog.Logger) error {
	in := io.Reader(os.Stdin)
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("unable to open body: %w", err)
		}
		defer f.Close()
		in = f
	}

	return c.run(context.Background(), logger, in, os.Stdout)
}

func (c *DecodeCLI) run(ctx context.Context, logger *slog.Logger, in io.Reader, out io.Writer) error {
	boundary, err := c.boundary()
	if err != nil {
		return err
	}

	var sink multiform.FileSink = multiform.TempDirSink{Dir: c.Store}
	if c.DryRun {
		sink = multiform.NewMemorySink()
	}

	dec := multiform.NewDecoder(multiform.WithSink(sink), multiform.WithLogger(logger))
	form, err := dec.DecodeReader(ctx, in, boundary)
	if err != nil {
		return err
	}
	logger.Debug("decoded body",
		slog.Int("fields", len(form.Fields)),
		slog.Int("files", len(form.Files)))

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(form)
}

func (c *DecodeCLI) boundary() (string, error) {
	switch {
	case c.Boundary != "":
		return c.Boundary, nil
	case c.ContentType != "":
		return multiform.BoundaryFromContentType(c.ContentType)
	default:
		return "", errors.New("one of --boundary or --content-type is required")
	}
}
