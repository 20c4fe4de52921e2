package multiform

import (
	"context"
	"fmt"
	"log/slog"
)

// UploadError reports whether an uploaded file was stored.
type UploadError int

const (
	// UploadOK means the file contents were written to the sink.
	UploadOK UploadError = iota
	// UploadWriteFailed means the sink could not store the contents.
	UploadWriteFailed
)

func (e UploadError) String() string {
	switch e {
	case UploadOK:
		return "ok"
	case UploadWriteFailed:
		return "write_failed"
	default:
		return fmt.Sprintf("UploadError(%d)", int(e))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (e UploadError) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *UploadError) UnmarshalText(b []byte) error {
	switch string(b) {
	case "ok":
		*e = UploadOK
	case "write_failed":
		*e = UploadWriteFailed
	default:
		return fmt.Errorf("multiform: unknown upload error %q", b)
	}
	return nil
}

// File describes an uploaded file. Name and Type are empty when the part did
// not carry a filename or a Content-Type. Size is zero when the write failed.
type File struct {
	Name  string      `json:"name,omitempty"`
	Type  string      `json:"type,omitempty"`
	Path  string      `json:"path"`
	Error UploadError `json:"error"`
	Size  int64       `json:"size"`
}

// materialize stores the body of a file part and records it under the
// part's name. It reports false when the part carries no name.
func (d *Decoder) materialize(ctx context.Context, form *Form, p *part) bool {
	disp := p.header.disposition()
	name, ok := disp.Name()
	if !ok {
		return false
	}

	filename, _ := disp.Filename()
	f := &File{
		Name: filename,
		Type: p.header.Get("Content-Type"),
	}

	path, size, err := d.sink.Store(ctx, trimLineEnds(p.body))
	f.Path = path
	if err != nil {
		d.logger.Warn("failed to store uploaded file",
			slog.String("field", name),
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		f.Error = UploadWriteFailed
	} else {
		f.Size = size
	}

	form.Files.Add(name, f)
	return true
}
