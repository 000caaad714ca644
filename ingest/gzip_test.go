package ingest

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"
)

func TestIsGzipped(t *testing.T) {
	cases := []struct {
		encoding string
		want     bool
	}{
		{"", false},
		{"gzip", true},
		{"GZIP", true},
		{"x-gzip", true},
		{"deflate, gzip", true},
		{"deflate", false},
		{"br", false},
	}
	for _, tc := range cases {
		if got := isGzipped(tc.encoding); got != tc.want {
			t.Fatalf("isGzipped(%q) = %v, want %v", tc.encoding, got, tc.want)
		}
	}
}

func TestGzipCompressRoundTrip(t *testing.T) {
	in := []byte(`{"type":"error","message":"boom"}`)

	compressed, err := gzipCompress(in)
	if err != nil {
		t.Fatal(err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatal(err)
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("round trip = %q, want %q", out, in)
	}
}

func TestGzipCompressEmptyPayload(t *testing.T) {
	compressed, err := gzipCompress(nil)
	if err != nil {
		t.Fatal(err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatal(err)
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("empty payload round trip = %q", out)
	}
}
