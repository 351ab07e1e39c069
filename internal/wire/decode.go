package wire

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Decode parses a weatherstation.v1.Measurement message. Unknown fields are
// skipped; a known field with an unexpected wire type is an error.
func Decode(b []byte) (Record, error) {
	var r Record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Record{}, fmt.Errorf("decode tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num >= fieldStation && num <= fieldDatetime:
			v, n, err := consumeVarint(num, typ, b)
			if err != nil {
				return Record{}, err
			}
			b = b[n:]
			if num == fieldStation {
				r.Station = int32(v)
			} else {
				r.Datetime = int32(v)
			}

		case num >= fieldDewpoint && num <= fieldVisibility:
			if typ != protowire.Fixed32Type {
				return Record{}, fmt.Errorf("decode field %d: wire type %d, want fixed32", num, typ)
			}
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return Record{}, fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
			*r.floatField(num) = math.Float32frombits(v)

		case num >= fieldFreeze && num <= fieldTornado:
			v, n, err := consumeVarint(num, typ, b)
			if err != nil {
				return Record{}, err
			}
			b = b[n:]
			*r.boolField(num) = protowire.DecodeBool(v)

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Record{}, fmt.Errorf("skip field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return r, nil
}

func consumeVarint(num protowire.Number, typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, fmt.Errorf("decode field %d: wire type %d, want varint", num, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
	}
	return v, n, nil
}

func (r *Record) floatField(num protowire.Number) *float32 {
	switch num {
	case fieldDewpoint:
		return &r.Dewpoint
	case fieldFallenSnow:
		return &r.FallenSnow
	case fieldOvercast:
		return &r.Overcast
	case fieldPrecipitation:
		return &r.Precipitation
	case fieldSeaAirPressure:
		return &r.SeaAirPressure
	case fieldStationAirPressure:
		return &r.StationAirPressure
	case fieldTemperature:
		return &r.Temperature
	default:
		return &r.Visibility
	}
}

func (r *Record) boolField(num protowire.Number) *bool {
	switch num {
	case fieldFreeze:
		return &r.Freeze
	case fieldRain:
		return &r.Rain
	case fieldSnow:
		return &r.Snow
	case fieldHail:
		return &r.Hail
	case fieldStorm:
		return &r.Storm
	default:
		return &r.Tornado
	}
}
