package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleBody = "--sep\r\n" +
	"Content-Disposition: form-data; name=\"name\"\r\n" +
	"\r\n" +
	"ann\r\n" +
	"--sep\r\n" +
	"Content-Disposition: form-data; name=\"tags[]\"\r\n" +
	"\r\n" +
	"a\r\n" +
	"--sep\r\n" +
	"Content-Disposition: form-data; name=\"doc\"; filename=\"notes.txt\"\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"hello\r\n" +
	"--sep--\r\n"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeCLI_Run(t *testing.T) {
	tests := map[string]DecodeCLI{
		"boundary flag":     {Boundary: "sep", DryRun: true},
		"content-type flag": {ContentType: `multipart/form-data; boundary="sep"`, DryRun: true},
	}
	for name, cli := range tests {
		cli := cli
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			err := cli.run(context.Background(), discardLogger(), strings.NewReader(sampleBody), &out)
			require.NoError(t, err)

			var got struct {
				Fields map[string]interface{}            `json:"fields"`
				Files  map[string]map[string]interface{} `json:"files"`
			}
			require.NoError(t, json.Unmarshal(out.Bytes(), &got))
			require.Equal(t, "ann", got.Fields["name"])
			require.Equal(t, []interface{}{"a"}, got.Fields["tags"])
			require.Equal(t, "notes.txt", got.Files["doc"]["name"])
			require.Equal(t, "text/plain", got.Files["doc"]["type"])
			require.Equal(t, "mem://1", got.Files["doc"]["path"])
			require.Equal(t, "ok", got.Files["doc"]["error"])
			require.EqualValues(t, 5, got.Files["doc"]["size"])
		})
	}
}

func TestDecodeCLI_RunStoresToDir(t *testing.T) {
	dir := t.TempDir()
	cli := DecodeCLI{Boundary: "sep", Store: dir}

	var out bytes.Buffer
	require.NoError(t, cli.run(context.Background(), discardLogger(), strings.NewReader(sampleBody), &out))
	require.Contains(t, out.String(), dir)
}

func TestDecodeCLI_RunErrors(t *testing.T) {
	tests := map[string]DecodeCLI{
		"no boundary":      {},
		"not multipart":    {ContentType: "text/plain"},
		"missing boundary": {ContentType: "multipart/form-data"},
	}
	for name, cli := range tests {
		cli := cli
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			err := cli.run(context.Background(), discardLogger(), strings.NewReader(sampleBody), &out)
			require.Error(t, err)
			require.Empty(t, out.String())
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "shown", rec["msg"])
	require.Equal(t, "v", rec["k"])

	_, err = newLogger(&buf, "loud", "text")
	require.Error(t, err)
}
