package domain

import (
	"fmt"

	"github.com/govalues/decimal"
)

// Field identifies one of the ten measurable quantities a station reports.
type Field int

const (
	Temperature Field = iota
	SnowDepth
	Precipitation
	WindSpeed
	Visibility
	SeaLevelPressure
	StationPressure
	DewPoint
	CloudCover
	WindDirection
)

// NumFields is the number of field kinds. Every Measurement carries exactly this many values.
const NumFields = 10

// FieldSpec describes a field's source tag and its valid inclusive range.
type FieldSpec struct {
	Field     Field
	Tag       string
	Unit      string
	Min       decimal.Decimal
	Max       decimal.Decimal
	Precision int // fractional digits
}

// schema is indexed by Field and kept in declaration order.
var schema = [NumFields]FieldSpec{
	{Field: Temperature, Tag: "TEMP", Unit: "°C", Min: decimal.MustNew(-99999, 1), Max: decimal.MustNew(99999, 1), Precision: 1},
	{Field: SnowDepth, Tag: "SNDP", Unit: "cm", Min: decimal.MustNew(-99999, 1), Max: decimal.MustNew(99999, 1), Precision: 1},
	{Field: Precipitation, Tag: "PRCP", Unit: "cm", Min: decimal.MustNew(0, 2), Max: decimal.MustNew(99999, 2), Precision: 2},
	{Field: WindSpeed, Tag: "WDSP", Unit: "km/h", Min: decimal.MustNew(0, 1), Max: decimal.MustNew(9999, 1), Precision: 1},
	{Field: Visibility, Tag: "VISIB", Unit: "km", Min: decimal.MustNew(0, 1), Max: decimal.MustNew(9999, 1), Precision: 1},
	{Field: SeaLevelPressure, Tag: "SLP", Unit: "mbar", Min: decimal.MustNew(0, 1), Max: decimal.MustNew(99999, 1), Precision: 1},
	{Field: StationPressure, Tag: "STP", Unit: "mbar", Min: decimal.MustNew(0, 1), Max: decimal.MustNew(99999, 1), Precision: 1},
	{Field: DewPoint, Tag: "DEWP", Unit: "°C", Min: decimal.MustNew(-99999, 1), Max: decimal.MustNew(99999, 1), Precision: 1},
	{Field: CloudCover, Tag: "CLDC", Unit: "%", Min: decimal.MustNew(0, 1), Max: decimal.MustNew(999, 1), Precision: 1},
	{Field: WindDirection, Tag: "WNDDIR", Unit: "°", Min: decimal.MustNew(0, 0), Max: decimal.MustNew(359, 0), Precision: 0},
}

// Schema returns a copy of the field catalogue in declaration order.
func Schema() []FieldSpec {
	s := schema
	return s[:]
}

// FieldByTag returns the field whose source tag is tag.
func FieldByTag(tag string) (Field, bool) {
	for _, spec := range schema {
		if spec.Tag == tag {
			return spec.Field, true
		}
	}
	return 0, false
}

// Valid reports whether f is one of the declared field kinds.
func (f Field) Valid() bool {
	return f >= 0 && f < NumFields
}

// Spec returns the catalogue entry for f. It panics if f is not Valid.
func (f Field) Spec() FieldSpec {
	return schema[f]
}

// Tag returns the XML tag the field is read from.
func (f Field) Tag() string {
	if !f.Valid() {
		return ""
	}
	return schema[f].Tag
}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return schema[f].Tag
}

// Contains reports whether d lies within the field's range and carries no more
// fractional digits than its precision. Trailing zeros do not count.
func (s FieldSpec) Contains(d decimal.Decimal) bool {
	if d.Cmp(s.Min) < 0 || d.Cmp(s.Max) > 0 {
		return false
	}
	return d.Trim(0).Scale() <= s.Precision
}
