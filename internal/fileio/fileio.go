// Package fileio is the only disk-touching collaborator of the parsers: it
// turns a file path into text. The parsers themselves stay pure functions
// of their input string.
package fileio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ReadText reads the whole file as a string. Files ending in .gz are
// decompressed transparently, so compressed topology and configuration
// dumps load like plain ones.
func ReadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("fileio: open gzip %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("fileio: read %s: %w", path, err)
	}
	return string(data), nil
}
