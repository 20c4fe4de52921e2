package multiform

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
)

// Encoder writes a multipart/form-data body. It is the counterpart of
// [Decoder] and is mostly useful to clients and tests.
type Encoder struct {
	mw *multipart.Writer
}

// NewEncoder creates a new [Encoder] that writes to w. If boundary is empty a
// random one is chosen.
func NewEncoder(w io.Writer, boundary string) (*Encoder, error) {
	mw := multipart.NewWriter(w)
	if boundary != "" {
		if err := mw.SetBoundary(boundary); err != nil {
			return nil, fmt.Errorf("multiform: %w", err)
		}
	}
	return &Encoder{mw: mw}, nil
}

// Boundary returns the boundary separating the parts.
func (e *Encoder) Boundary() string {
	return e.mw.Boundary()
}

// ContentType returns the Content-Type header value for the body.
func (e *Encoder) ContentType() string {
	return e.mw.FormDataContentType()
}

// WriteField writes a plain field part.
func (e *Encoder) WriteField(name, value string) error {
	return e.mw.WriteField(name, value)
}

// WriteFile writes a file part. An empty contentType is sent as
// application/octet-stream.
func (e *Encoder) WriteFile(name, filename, contentType string, body []byte) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(name), escapeQuotes(filename)))
	h.Set("Content-Type", contentType)

	w, err := e.mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// EncodeValues writes one part per value in vs. Lists are written as
// "name[]" parts in order and maps as "name[key]" parts in key order.
func (e *Encoder) EncodeValues(vs Values[string]) error {
	for _, name := range sortedKeys(vs) {
		entry := vs[name]
		switch entry.Kind {
		case List:
			for _, v := range entry.List {
				if err := e.WriteField(renderKey(name, ""), v); err != nil {
					return err
				}
			}
		case Map:
			for _, k := range sortedKeys(entry.Map) {
				if err := e.WriteField(renderKey(name, k), entry.Map[k]); err != nil {
					return err
				}
			}
		default:
			if err := e.WriteField(name, entry.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close writes the closing delimiter.
func (e *Encoder) Close() error {
	return e.mw.Close()
}

func renderKey(base, sub string) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("[")
	b.WriteString(sub)
	b.WriteString("]")
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
