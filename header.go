package multiform

import (
	"bytes"
	"strings"
)

var (
	crlf         = []byte("\r\n")
	headerEnding = []byte("\r\n\r\n")
)

// Header holds the headers of one part. Keys are lower-cased header names and
// values keep the order in which the lines appeared.
type Header map[string][]string

// Get returns the first value of the named header, or "" when it is absent.
// The name is matched case-insensitively.
func (h Header) Get(name string) string {
	vs := h[strings.ToLower(name)]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// Values returns every value of the named header.
func (h Header) Values(name string) []string {
	return h[strings.ToLower(name)]
}

// disposition parses the first Content-Disposition value. A part without
// one yields an empty Disposition.
func (h Header) disposition() Disposition {
	vs := h["content-disposition"]
	if len(vs) == 0 {
		return Disposition{}
	}
	return ParseDisposition(vs[0])
}

// part is one boundary-delimited block split into its header block and
// body. body still carries the line ending that precedes the next
// delimiter.
type part struct {
	rawHeader []byte
	header    Header
	body      []byte
}

// parsePart splits a raw block at the first blank line. It reports false
// when the block has no blank line separating headers from the body.
func parsePart(block []byte) (*part, bool) {
	block = bytes.TrimLeft(block, "\r\n")

	raw, body, found := bytes.Cut(block, headerEnding)
	if !found {
		return nil, false
	}

	return &part{
		rawHeader: raw,
		header:    parseHeader(raw),
		body:      body,
	}, true
}

// parseHeader reads "Name: value" lines separated by CRLF. Whitespace around
// the first colon is dropped and the name is lower-cased. A line without a
// colon carries no usable name and is skipped.
func parseHeader(raw []byte) Header {
	h := make(Header)
	for len(raw) > 0 {
		var line []byte
		line, raw, _ = bytes.Cut(raw, crlf)

		name, value, found := bytes.Cut(line, []byte(":"))
		if !found {
			continue
		}

		key := strings.ToLower(string(bytes.TrimRight(name, " \t")))
		h[key] = append(h[key], string(bytes.TrimLeft(value, " \t")))
	}
	return h
}

// trimLineEnds drops every trailing CR and LF.
func trimLineEnds(b []byte) []byte {
	return bytes.TrimRight(b, "\r\n")
}
