package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/couchcryptid/station-data-ingest/internal/domain"
	"github.com/couchcryptid/station-data-ingest/internal/wire"
)

// ErrPersistence marks directory-creation and write failures.
var ErrPersistence = errors.New("persistence failure")

// ByteSink stores encoded measurements.
type ByteSink interface {
	// EnsureDir creates dir and its parents; it must succeed if dir exists.
	EnsureDir(dir string) error
	// WriteFile replaces the contents of path with data.
	WriteFile(path string, data []byte) error
}

// Persister writes measurements to their canonical path under a base directory.
type Persister struct {
	sink   ByteSink
	encode func(domain.Measurement) ([]byte, error)
}

// NewPersister creates a Persister that encodes with wire.Encode.
func NewPersister(sink ByteSink) *Persister {
	return &Persister{sink: sink, encode: wire.Encode}
}

// Persist stores m at domain.Path(base, m), overwriting any previous file,
// and returns the path and the number of bytes written. Sink errors wrap
// ErrPersistence; encode errors are returned as-is. Nothing is retried.
func (p *Persister) Persist(base string, m domain.Measurement) (string, int, error) {
	path := domain.Path(base, m)

	if err := p.sink.EnsureDir(filepath.Dir(path)); err != nil {
		return path, 0, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	data, err := p.encode(m)
	if err != nil {
		return path, 0, fmt.Errorf("encode station %d: %w", m.Station(), err)
	}

	if err := p.sink.WriteFile(path, data); err != nil {
		return path, 0, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return path, len(data), nil
}
