package multiform

import (
	"bytes"
	"context"
	"io"
	"log/slog"
)

// Decoder decodes multipart/form-data bodies. A Decoder only holds
// configuration: every call to Decode builds a new [Form], so one Decoder may
// be used from many goroutines at once.
type Decoder struct {
	sink   FileSink
	logger *slog.Logger
}

// NewDecoder returns a Decoder configured by opts.
//
// Example:
//
//	dec := multiform.NewDecoder(multiform.WithSink(multiform.TempDirSink{Dir: "/var/uploads"}))
//	form, err := dec.Decode(ctx, body, boundary)
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}

	if d.sink == nil {
		d.sink = TempDirSink{}
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode decodes body with a Decoder that stores uploads in the system
// temporary directory.
func Decode(ctx context.Context, body []byte, boundary string) (*Form, error) {
	return defaultDecoder.Decode(ctx, body, boundary)
}

// Decode splits body on boundary and decodes every part. The boundary is the
// token from the Content-Type header, without leading dashes.
//
// Parts that cannot be decoded are dropped, and a body in which the boundary
// never occurs yields an empty Form. A file that cannot be stored is recorded
// with [UploadWriteFailed]. The only errors returned are [ErrEmptyBoundary]
// and the error of ctx once it is done.
func (d *Decoder) Decode(ctx context.Context, body []byte, boundary string) (*Form, error) {
	if boundary == "" {
		return nil, ErrEmptyBoundary
	}

	form := newForm()
	for i, block := range splitBody(body, boundary) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(block) == 0 {
			continue
		}
		d.decodePart(ctx, form, i, block)
	}
	return form, nil
}

func (d *Decoder) decodePart(ctx context.Context, form *Form, index int, block []byte) {
	p, ok := parsePart(block)
	if !ok {
		d.drop(index, "no blank line after headers")
		return
	}

	kind := classify(p.rawHeader)
	switch kind {
	case fileBlock:
		if !d.materialize(ctx, form, p) {
			d.drop(index, "file part has no name")
		}
	default:
		name, ok := p.header.disposition().Name()
		if !ok {
			d.drop(index, kind.String()+" part has no name")
			return
		}
		// Only the CRLF before the next delimiter is dropped, so a value
		// that ends in its own line break keeps it.
		form.Fields.Add(name, string(bytes.TrimSuffix(p.body, crlf)))
	}
}

func (d *Decoder) drop(index int, reason string) {
	d.logger.Debug("dropping multipart part",
		slog.Int("part", index),
		slog.String("reason", reason))
}
