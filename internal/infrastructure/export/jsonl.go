// Package export writes roll events as JSON Lines, optionally compressed.
package export

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/doeshing/dicelog/internal/domain"
)

// Compression is the container format of an export file.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionXZ
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionXZ:
		return "xz"
	default:
		return "none"
	}
}

// CompressionFor picks the format from the file suffix (.gz or .xz).
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".xz":
		return CompressionXZ
	default:
		return CompressionNone
	}
}

// WriteJSONL encodes one event per line to w.
func WriteJSONL(w io.Writer, events []domain.RollEvent) error {
	enc := json.NewEncoder(w)
	for _, event := range events {
		if err := enc.Encode(event); err != nil {
			return err
		}
	}
	return nil
}

// ToFile writes events to path, compressing according to its suffix.
func ToFile(path string, events []domain.RollEvent) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePermissions)
	if err != nil {
		return err
	}

	w, closeWriter, err := compressor(file, CompressionFor(path))
	if err != nil {
		_ = file.Close()
		return err
	}
	if err := WriteJSONL(w, events); err != nil {
		_ = closeWriter()
		_ = file.Close()
		return err
	}
	if err := closeWriter(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadJSONL decodes events written by WriteJSONL, decompressing by suffix.
func ReadJSONL(path string) ([]domain.RollEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	switch CompressionFor(path) {
	case CompressionGzip:
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	case CompressionXZ:
		xr, err := xz.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xr
	}

	var events []domain.RollEvent
	dec := json.NewDecoder(r)
	for dec.More() {
		var event domain.RollEvent
		if err := dec.Decode(&event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func compressor(w io.Writer, c Compression) (io.Writer, func() error, error) {
	switch c {
	case CompressionGzip:
		gz := gzip.NewWriter(w)
		return gz, gz.Close, nil
	case CompressionXZ:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xw, xw.Close, nil
	default:
		return w, func() error { return nil }, nil
	}
}
