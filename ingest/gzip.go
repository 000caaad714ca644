package ingest

import (
	"bytes"
	"compress/gzip"
	"strings"
)

// isGzipped reports whether the declared content encoding marks the
// payload as already compressed.
func isGzipped(contentEncoding string) bool {
	return strings.Contains(strings.ToLower(contentEncoding), "gzip")
}

// gzipCompress compresses raw payload bytes. Called at most once per
// submission: payloads the client already compressed pass through
// untouched.
func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
