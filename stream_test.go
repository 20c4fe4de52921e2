package multiform_test

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomasbasham/multiform"
)

func TestBoundaryFromContentType(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    string
		wantErr error
	}{
		"plain boundary": {
			input: "multipart/form-data; boundary=abc123",
			want:  "abc123",
		},
		"quoted boundary": {
			input: `multipart/form-data; boundary="a b:c"`,
			want:  "a b:c",
		},
		"mixed case media type": {
			input: "Multipart/Form-Data; Boundary=abc",
			want:  "abc",
		},
		"missing boundary": {
			input:   "multipart/form-data",
			wantErr: multiform.ErrMissingBoundary,
		},
		"other multipart type": {
			input:   "multipart/mixed; boundary=abc",
			wantErr: multiform.ErrNotMultipart,
		},
		"urlencoded": {
			input:   "application/x-www-form-urlencoded",
			wantErr: multiform.ErrNotMultipart,
		},
		"empty": {
			input:   "",
			wantErr: multiform.ErrNotMultipart,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := multiform.BoundaryFromContentType(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDecodeRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/forms", bytes.NewReader(body(field("a", "1"), field("b[]", "2"))))
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)

	dec := multiform.NewDecoder(multiform.WithSink(multiform.NewMemorySink()))
	form, err := dec.DecodeRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := multiform.Values[string]{
		"a": scalar("1"),
		"b": list("2"),
	}
	if diff := cmp.Diff(want, form.Fields); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeRequest_NotMultipart(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/forms", bytes.NewReader([]byte("a=1")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	dec := multiform.NewDecoder(multiform.WithSink(multiform.NewMemorySink()))
	if _, err := dec.DecodeRequest(req); !errors.Is(err, multiform.ErrNotMultipart) {
		t.Fatalf("expected ErrNotMultipart, got %v", err)
	}
}
