package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/govalues/decimal"
)

// Tags that are not part of the field catalogue.
const (
	TagStation   = "STN"
	TagDate      = "DATE"
	TagTime      = "TIME"
	TagEventCode = "FRSHTT"
)

// timestampRe enforces the fixed "yyyy-MM-dd HH:mm:ss" shape before calendar
// validation; time.Parse alone accepts single-digit hours.
var timestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

// Element gives access to the child tags of one XML record.
type Element interface {
	// Lookup returns the text of the named child tag, or false if it is absent.
	Lookup(tag string) (string, bool)
}

// Tags is an Element backed by a map, keyed by tag name.
type Tags map[string]string

func (t Tags) Lookup(tag string) (string, bool) {
	v, ok := t[tag]
	return v, ok
}

// Parser turns elements into Measurements.
type Parser struct {
	location   *time.Location
	eventRadix int
	rangeCheck bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithLocation sets the zone DATE and TIME are interpreted in. Nil means time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.location = loc
		}
	}
}

// WithEventRadix selects how FRSHTT digits are read: 10 (default), where the
// digits form a decimal number masked to its low six bits, or 2, where each
// digit is one flag and codes above 63 are malformed. Other values are ignored.
func WithEventRadix(radix int) Option {
	return func(p *Parser) {
		if radix == 2 || radix == 10 {
			p.eventRadix = radix
		}
	}
}

// WithRangeCheck rejects field values outside their schema range or precision.
func WithRangeCheck(enabled bool) Option {
	return func(p *Parser) {
		p.rangeCheck = enabled
	}
}

// NewParser creates a Parser. Without options it reads timestamps in
// time.Local, event codes in base 10 and does not range-check fields.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		location:   time.Local,
		eventRadix: 10,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse validates el and builds a Measurement. On error no Measurement is
// returned; the error wraps one of the Err* sentinels in a *FieldError.
func (p *Parser) Parse(el Element) (Measurement, error) {
	station, err := parseStation(el)
	if err != nil {
		return Measurement{}, err
	}

	timestamp, err := p.parseTimestamp(el)
	if err != nil {
		return Measurement{}, err
	}

	events, err := p.parseEventCode(el)
	if err != nil {
		return Measurement{}, err
	}

	var fields [NumFields]Value
	for _, spec := range schema {
		v, err := p.parseField(el, spec)
		if err != nil {
			return Measurement{}, err
		}
		fields[spec.Field] = v
	}

	return NewMeasurement(station, timestamp, events, fields), nil
}

// lookup trims the tag text and treats empty text as absent.
func lookup(el Element, tag string) (string, bool) {
	v, ok := el.Lookup(tag)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func parseStation(el Element) (int32, error) {
	raw, ok := lookup(el, TagStation)
	if !ok {
		return 0, &FieldError{Tag: TagStation, Err: ErrMissingField}
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, &FieldError{Tag: TagStation, Value: raw, Err: ErrMissingField, Cause: err}
	}
	return int32(n), nil
}

func (p *Parser) parseTimestamp(el Element) (time.Time, error) {
	date, ok := lookup(el, TagDate)
	if !ok {
		return time.Time{}, &FieldError{Tag: TagDate, Err: ErrMalformedTimestamp}
	}
	clock, ok := lookup(el, TagTime)
	if !ok {
		return time.Time{}, &FieldError{Tag: TagTime, Err: ErrMalformedTimestamp}
	}

	combined := date + " " + clock
	tag := TagDate + " " + TagTime
	if !timestampRe.MatchString(combined) {
		return time.Time{}, &FieldError{Tag: tag, Value: combined, Err: ErrMalformedTimestamp}
	}
	t, err := time.ParseInLocation(timestampLayout, combined, p.location)
	if err != nil {
		return time.Time{}, &FieldError{Tag: tag, Value: combined, Err: ErrMalformedTimestamp, Cause: err}
	}
	return t, nil
}

func (p *Parser) parseEventCode(el Element) (int, error) {
	raw, ok := lookup(el, TagEventCode)
	if !ok {
		return 0, nil
	}

	if p.eventRadix == 10 {
		n, err := parseDecimalCode(raw)
		if err != nil {
			return 0, &FieldError{Tag: TagEventCode, Value: raw, Err: ErrMalformedEventCode, Cause: err}
		}
		return int(n & eventMask), nil
	}

	n, err := strconv.ParseUint(raw, 2, 8)
	if err != nil {
		return 0, &FieldError{Tag: TagEventCode, Value: raw, Err: ErrMalformedEventCode, Cause: err}
	}
	if n > MaxEventCode {
		return 0, &FieldError{
			Tag: TagEventCode, Value: raw, Err: ErrMalformedEventCode,
			Cause: fmt.Errorf("code %d exceeds %d", n, MaxEventCode),
		}
	}
	return int(n), nil
}

func (p *Parser) parseField(el Element, spec FieldSpec) (Value, error) {
	raw, ok := lookup(el, spec.Tag)
	if !ok {
		return Absent(), nil
	}

	d, err := decimal.Parse(raw)
	if err != nil {
		return Value{}, &FieldError{Tag: spec.Tag, Value: raw, Err: ErrMalformedFieldValue, Cause: err}
	}
	if p.rangeCheck && !spec.Contains(d) {
		return Value{}, &FieldError{
			Tag: spec.Tag, Value: raw, Err: ErrFieldOutOfRange,
			Cause: fmt.Errorf("want %s..%s with %d decimals", spec.Min, spec.Max, spec.Precision),
		}
	}
	return Present(d), nil
}

// parseDecimalCode reads a signed decimal integer. Numbers too large for
// int64 are reduced to their last six digits: 10^6 is a multiple of 64, so
// the low six bits are unchanged.
func parseDecimalCode(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if !errors.Is(err, strconv.ErrRange) {
		return n, err
	}
	sign, digits := "", raw
	if digits[0] == '-' || digits[0] == '+' {
		sign, digits = digits[:1], digits[1:]
	}
	return strconv.ParseInt(sign+digits[len(digits)-6:], 10, 64)
}
