package multiform

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DecodeReader reads r to the end and decodes what it read. The body is
// buffered in full before decoding starts.
func (d *Decoder) DecodeReader(ctx context.Context, r io.Reader, boundary string) (*Form, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("multiform: failed to read body: %w", err)
	}

	return d.Decode(ctx, body, boundary)
}

// DecodeRequest decodes the body of r, taking the boundary from its
// Content-Type header. Callers that need a size limit should wrap r.Body with
// [http.MaxBytesReader] first.
func (d *Decoder) DecodeRequest(r *http.Request) (*Form, error) {
	boundary, err := BoundaryFromContentType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	return d.DecodeReader(r.Context(), r.Body, boundary)
}

// BoundaryFromContentType returns the boundary parameter of a
// multipart/form-data Content-Type header value.
func BoundaryFromContentType(contentType string) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		return "", ErrNotMultipart
	}

	boundary := params["boundary"]
	if boundary == "" {
		return "", ErrMissingBoundary
	}
	return boundary, nil
}
