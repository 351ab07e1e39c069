package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/govalues/decimal"
)

const timestampLayout = "2006-01-02 15:04:05"

// Value is an optional decimal reading. The zero Value is absent.
type Value struct {
	d  decimal.Decimal
	ok bool
}

// Present wraps d as a present value.
func Present(d decimal.Decimal) Value {
	return Value{d: d, ok: true}
}

// Absent returns a value with no reading.
func Absent() Value {
	return Value{}
}

// Get returns the reading and whether it is present.
func (v Value) Get() (decimal.Decimal, bool) {
	return v.d, v.ok
}

// IsPresent reports whether the tag was supplied.
func (v Value) IsPresent() bool {
	return v.ok
}

func (v Value) String() string {
	if !v.ok {
		return "null"
	}
	return v.d.String()
}

// Measurement is one validated station observation. It is built by Parser or
// NewMeasurement and never modified afterwards.
type Measurement struct {
	station   int32
	timestamp time.Time
	events    int
	fields    [NumFields]Value
}

// NewMeasurement assembles a measurement from already validated parts. The
// event code is reduced to its six defined bits.
func NewMeasurement(station int32, timestamp time.Time, eventCode int, fields [NumFields]Value) Measurement {
	return Measurement{
		station:   station,
		timestamp: timestamp,
		events:    eventCode & eventMask,
		fields:    fields,
	}
}

// Station returns the reporting station's id.
func (m Measurement) Station() int32 { return m.station }

// Timestamp returns the observation time in the location it was parsed in.
func (m Measurement) Timestamp() time.Time { return m.timestamp }

// EventCode returns the packed event bitmask in [0, MaxEventCode].
func (m Measurement) EventCode() int { return m.events }

// Events returns the decoded event flags.
func (m Measurement) Events() Events { return DecodeEvents(m.events) }

// Field returns the value for f, absent if f was not reported or is not a valid field.
func (m Measurement) Field(f Field) Value {
	if !f.Valid() {
		return Value{}
	}
	return m.fields[f]
}

// Fields returns a copy of all ten values indexed by Field.
func (m Measurement) Fields() [NumFields]Value {
	return m.fields
}

// String renders the measurement as a header line followed by one
// tab-indented line per field in schema order.
func (m Measurement) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s:\n", m.station, m.timestamp.Format(timestampLayout))
	for _, spec := range schema {
		fmt.Fprintf(&sb, "\t%s = %s\n", spec.Tag, m.fields[spec.Field])
	}
	return sb.String()
}
