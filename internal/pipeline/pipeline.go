package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/station-data-ingest/internal/domain"
	"github.com/couchcryptid/station-data-ingest/internal/observability"
	"github.com/couchcryptid/station-data-ingest/internal/wire"
)

// Source yields record elements until it returns io.EOF.
type Source interface {
	Next(ctx context.Context) (domain.Element, error)
}

// Parser converts a record element into a measurement.
type Parser interface {
	Parse(el domain.Element) (domain.Measurement, error)
}

// Store persists a measurement under a base directory.
type Store interface {
	Persist(base string, m domain.Measurement) (path string, n int, err error)
}

// offsetSource is implemented by sources that can report where in the input
// the last record ended.
type offsetSource interface {
	InputOffset() int64
}

// Summary counts the outcome of one Run.
type Summary struct {
	Read      int
	Persisted int
	Skipped   int
	Elapsed   time.Duration
}

// Ingester parses and persists every record from a source, one at a time.
type Ingester struct {
	parser  Parser
	store   Store
	baseDir string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Ingester that writes under baseDir.
func New(parser Parser, store Store, baseDir string, logger *slog.Logger, metrics *observability.Metrics) *Ingester {
	return &Ingester{
		parser:  parser,
		store:   store,
		baseDir: baseDir,
		logger:  logger,
		metrics: metrics,
	}
}

// Run drains src. Records that fail to parse, encode or persist are logged,
// counted and skipped. Run stops at io.EOF, on a source error, or when ctx is
// cancelled; the last two are returned alongside the partial summary.
func (i *Ingester) Run(ctx context.Context, src Source) (Summary, error) {
	i.metrics.IngestRunning.Set(1)
	defer i.metrics.IngestRunning.Set(0)

	var sum Summary
	start := clock.Now()

	for {
		if err := ctx.Err(); err != nil {
			return i.finish(&sum, start), err
		}

		el, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return i.finish(&sum, start), nil
		}
		if err != nil {
			i.logger.Error("read record failed", "error", err, "index", sum.Read)
			return i.finish(&sum, start), err
		}

		sum.Read++
		i.metrics.RecordsRead.Inc()
		at := []any{"index", sum.Read - 1}
		if o, ok := src.(offsetSource); ok {
			at = append(at, "offset", o.InputOffset())
		}
		if i.process(el, at) {
			sum.Persisted++
		} else {
			sum.Skipped++
		}
	}
}

func (i *Ingester) finish(sum *Summary, start time.Time) Summary {
	sum.Elapsed = clock.Since(start)
	return *sum
}

// process handles one record and reports whether it was persisted. at holds
// the record's position attributes for logging.
func (i *Ingester) process(el domain.Element, at []any) bool {
	start := clock.Now()
	defer func() { i.metrics.RecordDuration.Observe(clock.Since(start).Seconds()) }()

	m, err := i.parser.Parse(el)
	if err != nil {
		stn, _ := el.Lookup(domain.TagStation)
		i.skip(err, at, "station", stn)
		return false
	}

	path, n, err := i.store.Persist(i.baseDir, m)
	if err != nil {
		i.skip(err, at, "station", m.Station(), "path", path)
		return false
	}

	i.metrics.RecordsPersisted.Inc()
	i.metrics.BytesWritten.Add(float64(n))
	i.logger.Debug("measurement persisted", "station", m.Station(), "path", path, "bytes", n)
	return true
}

func (i *Ingester) skip(err error, at []any, attrs ...any) {
	reason := skipReason(err)
	i.metrics.RecordsSkipped.WithLabelValues(reason).Inc()

	args := make([]any, 0, len(at)+len(attrs)+4)
	args = append(args, at...)
	args = append(args, attrs...)
	i.logger.Warn("record skipped", append(args, "reason", reason, "error", err)...)
}

// skipReason maps an error to its RecordsSkipped label.
func skipReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		return observability.ReasonMissingField
	case errors.Is(err, domain.ErrMalformedTimestamp):
		return observability.ReasonMalformedTimestamp
	case errors.Is(err, domain.ErrMalformedEventCode):
		return observability.ReasonMalformedEventCode
	case errors.Is(err, domain.ErrMalformedFieldValue):
		return observability.ReasonMalformedFieldValue
	case errors.Is(err, domain.ErrFieldOutOfRange):
		return observability.ReasonFieldOutOfRange
	case errors.Is(err, wire.ErrRequiredFieldMissing):
		return observability.ReasonRequiredFieldMissing
	case errors.Is(err, ErrPersistence):
		return observability.ReasonPersistenceFailure
	default:
		return observability.ReasonOther
	}
}
