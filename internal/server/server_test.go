package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomasbasham/multiform"
)

func newTestServer(t *testing.T, maxBody int64) (*httptest.Server, *multiform.MemorySink) {
	t.Helper()

	sink := multiform.NewMemorySink()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(Config{
		Decoder:      multiform.NewDecoder(multiform.WithSink(sink), multiform.WithLogger(logger)),
		MaxBodyBytes: maxBody,
		Logger:       logger,
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, sink
}

func encodeBody(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	enc, err := multiform.NewEncoder(&buf, "")
	require.NoError(t, err)
	require.NoError(t, enc.WriteField("title", "holiday"))
	require.NoError(t, enc.WriteField("tags[]", "sea"))
	require.NoError(t, enc.WriteField("tags[]", "sun"))
	require.NoError(t, enc.WriteFile("photo", "beach.jpg", "image/jpeg", []byte("JPEG")))
	require.NoError(t, enc.Close())
	return &buf, enc.ContentType()
}

func TestPostForm(t *testing.T) {
	srv, sink := newTestServer(t, 0)
	body, contentType := encodeBody(t)

	resp, err := http.Post(srv.URL+"/forms", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got map[string]map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	require.Equal(t, "holiday", got["fields"]["title"])
	require.Equal(t, []interface{}{"sea", "sun"}, got["fields"]["tags"])
	require.Equal(t, map[string]interface{}{
		"name":  "beach.jpg",
		"type":  "image/jpeg",
		"path":  "mem://1",
		"error": "ok",
		"size":  float64(4),
	}, got["files"]["photo"])

	content, ok := sink.Open("mem://1")
	require.True(t, ok)
	require.Equal(t, []byte("JPEG"), content)
}

func TestPostForm_Errors(t *testing.T) {
	tests := map[string]struct {
		contentType string
		body        string
		maxBody     int64
		wantStatus  int
		wantError   string
	}{
		"not multipart": {
			contentType: "application/json",
			body:        "{}",
			wantStatus:  http.StatusUnsupportedMediaType,
			wantError:   "not multipart/form-data",
		},
		"missing boundary": {
			contentType: "multipart/form-data",
			body:        "",
			wantStatus:  http.StatusUnsupportedMediaType,
			wantError:   "no boundary",
		},
		"body too large": {
			contentType: "multipart/form-data; boundary=B",
			body:        "--B\r\n" + strings.Repeat("x", 64) + "\r\n--B--",
			maxBody:     16,
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantError:   "failed to read body",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.maxBody)

			resp, err := http.Post(srv.URL+"/forms", tt.contentType, strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.wantStatus, resp.StatusCode)

			var got errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			require.Contains(t, got.Error, tt.wantError)
		})
	}
}

func TestPostForm_EmptyForm(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	resp, err := http.Post(srv.URL+"/forms", "multipart/form-data; boundary=B", strings.NewReader("no delimiters here"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"fields":{},"files":{}}`, string(b))
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(b))
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	resp, err := http.Get(srv.URL + "/forms")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
