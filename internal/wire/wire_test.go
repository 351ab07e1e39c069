package wire_test

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/couchcryptid/station-data-ingest/internal/domain"
	"github.com/couchcryptid/station-data-ingest/internal/wire"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEpoch = 1252818000 // 2009-09-13T05:00:00Z

func fullTags() domain.Tags {
	return domain.Tags{
		"STN":    "123456",
		"DATE":   "2009-09-13",
		"TIME":   "05:00:00",
		"FRSHTT": "42",
		"TEMP":   "-60.1",
		"SNDP":   "11.1",
		"PRCP":   "11.28",
		"WDSP":   "10.8",
		"VISIB":  "123.7",
		"SLP":    "1007.6",
		"STP":    "1034.5",
		"DEWP":   "-58.1",
		"CLDC":   "87.4",
		"WNDDIR": "342",
	}
}

func parse(t *testing.T, tags domain.Tags, loc *time.Location) domain.Measurement {
	t.Helper()
	m, err := domain.NewParser(domain.WithLocation(loc)).Parse(tags)
	require.NoError(t, err)
	return m
}

func TestEncode_RoundTrip(t *testing.T) {
	m := parse(t, fullTags(), time.UTC)

	b, err := wire.Encode(m)
	require.NoError(t, err)

	got, err := wire.Decode(b)
	require.NoError(t, err)

	want := wire.Record{
		Station:            123456,
		Datetime:           testEpoch,
		Dewpoint:           -58.1,
		FallenSnow:         11.1,
		Overcast:           87.4,
		Precipitation:      11.28,
		SeaAirPressure:     1007.6,
		StationAirPressure: 1034.5,
		Temperature:        -60.1,
		Visibility:         123.7,
		Rain:               true,
		Hail:               true,
		Tornado:            true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, m.Events(), got.Events())
	assert.True(t, m.Timestamp().Equal(got.Time(time.UTC)))
}

func TestEncode_EventBitOrder(t *testing.T) {
	tags := fullTags()
	tags["FRSHTT"] = "21"

	rec, err := wire.NewRecord(parse(t, tags, time.UTC))
	require.NoError(t, err)

	assert.True(t, rec.Freeze)
	assert.False(t, rec.Rain)
	assert.True(t, rec.Snow)
	assert.False(t, rec.Hail)
	assert.True(t, rec.Storm)
	assert.False(t, rec.Tornado)
}

func TestEncode_RequiredFieldMissing(t *testing.T) {
	required := map[string]domain.Field{
		"DEWP":  domain.DewPoint,
		"SNDP":  domain.SnowDepth,
		"CLDC":  domain.CloudCover,
		"PRCP":  domain.Precipitation,
		"SLP":   domain.SeaLevelPressure,
		"STP":   domain.StationPressure,
		"TEMP":  domain.Temperature,
		"VISIB": domain.Visibility,
	}

	for tag, field := range required {
		t.Run(tag, func(t *testing.T) {
			tags := fullTags()
			delete(tags, tag)

			b, err := wire.Encode(parse(t, tags, time.UTC))
			require.Error(t, err)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, wire.ErrRequiredFieldMissing)

			var rf *wire.RequiredFieldError
			require.ErrorAs(t, err, &rf)
			assert.Equal(t, field, rf.Field)
			assert.Contains(t, err.Error(), tag)
		})
	}
}

func TestEncode_OffWireFieldsOptional(t *testing.T) {
	tags := fullTags()
	delete(tags, "WDSP")
	delete(tags, "WNDDIR")

	_, err := wire.Encode(parse(t, tags, time.UTC))
	assert.NoError(t, err)
}

func TestEncode_DatetimeFollowsParserLocation(t *testing.T) {
	amsterdam, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	utc, err := wire.NewRecord(parse(t, fullTags(), time.UTC))
	require.NoError(t, err)
	local, err := wire.NewRecord(parse(t, fullTags(), amsterdam))
	require.NoError(t, err)

	assert.Equal(t, int32(testEpoch), utc.Datetime)
	assert.Equal(t, int32(testEpoch-2*60*60), local.Datetime)
}

func TestRecord_Marshal(t *testing.T) {
	t.Run("golden bytes", func(t *testing.T) {
		r := wire.Record{Station: 123456, Datetime: testEpoch, Temperature: 1.5, Rain: true}
		assert.Equal(t, "08c0c40710d0f8b1d5044d0000c03f6001", hex.EncodeToString(r.Marshal()))
	})

	t.Run("defaults omitted", func(t *testing.T) {
		assert.Empty(t, wire.Record{}.Marshal())
	})

	t.Run("negative zero written", func(t *testing.T) {
		negZero := float32(0)
		negZero = -negZero
		b := wire.Record{Temperature: negZero}.Marshal()
		assert.Equal(t, "4d00000080", hex.EncodeToString(b))
	})

	t.Run("negative int32 sign extended", func(t *testing.T) {
		b := wire.Record{Station: -5}.Marshal()
		assert.Equal(t, "08fbffffffffffffffff01", hex.EncodeToString(b))

		got, err := wire.Decode(b)
		require.NoError(t, err)
		assert.Equal(t, int32(-5), got.Station)
	})
}

func TestDecode(t *testing.T) {
	t.Run("skips unknown fields", func(t *testing.T) {
		// field 1 = 7, field 20 (varint) = 1, field 21 (bytes) = "x"
		b, _ := hex.DecodeString("0807a00101aa010178")
		got, err := wire.Decode(b)
		require.NoError(t, err)
		assert.Equal(t, wire.Record{Station: 7}, got)
	})

	t.Run("wrong wire type", func(t *testing.T) {
		// field 9 encoded as varint
		b, _ := hex.DecodeString("4801")
		_, err := wire.Decode(b)
		assert.ErrorContains(t, err, "want fixed32")
	})

	t.Run("truncated", func(t *testing.T) {
		b, _ := hex.DecodeString("4d0000")
		_, err := wire.Decode(b)
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := wire.Decode(nil)
		require.NoError(t, err)
		assert.Equal(t, wire.Record{}, got)
	})
}
