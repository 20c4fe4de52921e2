package multiform

import "bytes"

type blockKind int

const (
	plainBlock blockKind = iota
	octetStreamBlock
	fileBlock
)

func (k blockKind) String() string {
	switch k {
	case fileBlock:
		return "file"
	case octetStreamBlock:
		return "octet-stream"
	default:
		return "field"
	}
}

var (
	filenameMarker    = []byte("filename")
	octetStreamMarker = []byte("application/octet-stream")
)

// classify decides how a part is decoded by looking for marker text in its
// raw header block. This is a textual check: a field whose name contains
// "filename" is treated as a file upload. Octet-stream parts that carry a
// filename are files; the octet-stream rule only catches older clients that
// send a bare stream without one.
func classify(rawHeader []byte) blockKind {
	switch {
	case bytes.Contains(rawHeader, filenameMarker):
		return fileBlock
	case bytes.Contains(rawHeader, octetStreamMarker):
		return octetStreamBlock
	default:
		return plainBlock
	}
}
