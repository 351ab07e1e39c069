// Package wire encodes measurements as weatherstation.v1.Measurement protobuf
// messages (api/proto/weatherstation/v1/measurement.proto).
//
// The message is written field by field with protowire in field-number order,
// omitting proto3 default values, so output is byte-identical to a generated
// proto3 marshaller. The eight float fields are mandatory on the wire: a
// measurement missing any of them is rejected with ErrRequiredFieldMissing
// rather than written as 0.
package wire

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/couchcryptid/station-data-ingest/internal/domain"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of weatherstation.v1.Measurement.
const (
	fieldStation            protowire.Number = 1
	fieldDatetime           protowire.Number = 2
	fieldDewpoint           protowire.Number = 3
	fieldFallenSnow         protowire.Number = 4
	fieldOvercast           protowire.Number = 5
	fieldPrecipitation      protowire.Number = 6
	fieldSeaAirPressure     protowire.Number = 7
	fieldStationAirPressure protowire.Number = 8
	fieldTemperature        protowire.Number = 9
	fieldVisibility         protowire.Number = 10
	fieldFreeze             protowire.Number = 11
	fieldRain               protowire.Number = 12
	fieldSnow               protowire.Number = 13
	fieldHail               protowire.Number = 14
	fieldStorm              protowire.Number = 15
	fieldTornado            protowire.Number = 16
)

// ErrRequiredFieldMissing is wrapped by *RequiredFieldError.
var ErrRequiredFieldMissing = errors.New("required field missing")

// RequiredFieldError names the absent field a wire float is sourced from.
type RequiredFieldError struct {
	Field domain.Field
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRequiredFieldMissing, e.Field)
}

func (e *RequiredFieldError) Unwrap() error {
	return ErrRequiredFieldMissing
}

// Record mirrors weatherstation.v1.Measurement.
type Record struct {
	Station            int32
	Datetime           int32
	Dewpoint           float32
	FallenSnow         float32
	Overcast           float32
	Precipitation      float32
	SeaAirPressure     float32
	StationAirPressure float32
	Temperature        float32
	Visibility         float32
	Freeze             bool
	Rain               bool
	Snow               bool
	Hail               bool
	Storm              bool
	Tornado            bool
}

// NewRecord maps m onto the wire schema. Datetime is m's timestamp in whole
// seconds since the epoch, truncated to 32 bits.
func NewRecord(m domain.Measurement) (Record, error) {
	r := Record{
		Station:  m.Station(),
		Datetime: int32(m.Timestamp().Unix()),
	}

	floats := []struct {
		dst   *float32
		field domain.Field
	}{
		{&r.Dewpoint, domain.DewPoint},
		{&r.FallenSnow, domain.SnowDepth},
		{&r.Overcast, domain.CloudCover},
		{&r.Precipitation, domain.Precipitation},
		{&r.SeaAirPressure, domain.SeaLevelPressure},
		{&r.StationAirPressure, domain.StationPressure},
		{&r.Temperature, domain.Temperature},
		{&r.Visibility, domain.Visibility},
	}
	for _, f := range floats {
		v, err := float32Of(m, f.field)
		if err != nil {
			return Record{}, err
		}
		*f.dst = v
	}

	ev := m.Events()
	r.Freeze = ev.Freeze
	r.Rain = ev.Rain
	r.Snow = ev.Snow
	r.Hail = ev.Hail
	r.Storm = ev.Storm
	r.Tornado = ev.Tornado
	return r, nil
}

// float32Of converts through the decimal's text so the result is the float32
// nearest to the reported value, not a double-rounded float64.
func float32Of(m domain.Measurement, f domain.Field) (float32, error) {
	d, ok := m.Field(f).Get()
	if !ok {
		return 0, &RequiredFieldError{Field: f}
	}
	v, err := strconv.ParseFloat(d.String(), 32)
	if err != nil {
		return 0, fmt.Errorf("convert %s: %w", f, err)
	}
	return float32(v), nil
}

// Encode returns the wire bytes for m.
func Encode(m domain.Measurement) ([]byte, error) {
	r, err := NewRecord(m)
	if err != nil {
		return nil, err
	}
	return r.Marshal(), nil
}

// Marshal appends fields in number order, skipping proto3 defaults.
func (r Record) Marshal() []byte {
	b := make([]byte, 0, 64)
	b = appendInt32(b, fieldStation, r.Station)
	b = appendInt32(b, fieldDatetime, r.Datetime)
	b = appendFloat(b, fieldDewpoint, r.Dewpoint)
	b = appendFloat(b, fieldFallenSnow, r.FallenSnow)
	b = appendFloat(b, fieldOvercast, r.Overcast)
	b = appendFloat(b, fieldPrecipitation, r.Precipitation)
	b = appendFloat(b, fieldSeaAirPressure, r.SeaAirPressure)
	b = appendFloat(b, fieldStationAirPressure, r.StationAirPressure)
	b = appendFloat(b, fieldTemperature, r.Temperature)
	b = appendFloat(b, fieldVisibility, r.Visibility)
	b = appendBool(b, fieldFreeze, r.Freeze)
	b = appendBool(b, fieldRain, r.Rain)
	b = appendBool(b, fieldSnow, r.Snow)
	b = appendBool(b, fieldHail, r.Hail)
	b = appendBool(b, fieldStorm, r.Storm)
	b = appendBool(b, fieldTornado, r.Tornado)
	return b
}

// Time returns Datetime as a time in loc.
func (r Record) Time(loc *time.Location) time.Time {
	return time.Unix(int64(r.Datetime), 0).In(loc)
}

// Events returns the six flags as domain events.
func (r Record) Events() domain.Events {
	return domain.Events{
		Freeze:  r.Freeze,
		Rain:    r.Rain,
		Snow:    r.Snow,
		Hail:    r.Hail,
		Storm:   r.Storm,
		Tornado: r.Tornado,
	}
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

// appendFloat compares raw bits so -0.0 is still written.
func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	bits := math.Float32bits(v)
	if bits == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, bits)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}
