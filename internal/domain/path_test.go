package domain

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	sep := string(filepath.Separator)
	at := func(hour int) Measurement {
		return NewMeasurement(123456, time.Date(2009, 9, 13, hour, 0, 0, 0, time.UTC), 0, [NumFields]Value{})
	}
	want := sep + "data" + sep + "2009-09-13" + sep + "123456" + sep

	tests := []struct {
		name string
		base string
		m    Measurement
		want string
	}{
		{"hour unpadded", sep + "data", at(5), want + "5.dat"},
		{"trailing separator", sep + "data" + sep, at(5), want + "5.dat"},
		{"repeated trailing separators", sep + "data" + sep + sep, at(5), want + "5.dat"},
		{"midnight", sep + "data", at(0), want + "0.dat"},
		{"two digit hour", sep + "data", at(23), want + "23.dat"},
		{"relative base", "data", at(3), "data" + sep + "2009-09-13" + sep + "123456" + sep + "3.dat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Path(tt.base, tt.m))
		})
	}
}

func TestPath_UsesTimestampLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	m := NewMeasurement(7, time.Date(2009, 9, 13, 1, 0, 0, 0, loc), 0, [NumFields]Value{})

	got := Path("base", m)
	assert.Equal(t, filepath.Join("base", "2009-09-13", "7", "1.dat"), got)
}
