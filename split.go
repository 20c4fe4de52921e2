package multiform

import "bytes"

// splitBody cuts body at every delimiter, where a delimiter is a run of one
// or more dashes immediately followed by the boundary. The segment after the
// last delimiter holds the closing "--" and any epilogue and is dropped. A
// body without a delimiter yields no segments.
func splitBody(body []byte, boundary string) [][]byte {
	b := []byte(boundary)

	var (
		segments [][]byte
		start    int
	)
	for pos := 0; pos < len(body); {
		i := bytes.Index(body[pos:], b)
		if i == -1 {
			break
		}
		i += pos

		dashes := i
		for dashes > start && body[dashes-1] == '-' {
			dashes--
		}
		if dashes < i {
			segments = append(segments, body[start:dashes])
			start = i + len(b)
		}
		pos = i + len(b)
	}
	return segments
}
