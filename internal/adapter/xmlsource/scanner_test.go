package xmlsource

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/couchcryptid/station-data-ingest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `<?xml version="1.0"?>
<WEATHERDATA>
	<MEASUREMENT>
		<STN>123456</STN>
		<DATE>2009-09-13</DATE>
		<TIME>05:00:00</TIME>
		<TEMP>-60.1</TEMP>
		<FRSHTT>010101</FRSHTT>
		<WNDDIR></WNDDIR>
	</MEASUREMENT>
	<MEASUREMENT>
		<STN>654321</STN>
		<DATE>2009-09-13</DATE>
		<TIME>06:00:00</TIME>
	</MEASUREMENT>
</WEATHERDATA>`

func drain(t *testing.T, s *Scanner) []domain.Element {
	t.Helper()
	var out []domain.Element
	for {
		el, err := s.Next(context.Background())
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, el)
	}
}

func TestScanner_Next(t *testing.T) {
	records := drain(t, NewScanner(strings.NewReader(testDocument), ""))
	require.Len(t, records, 2)

	stn, ok := records[0].Lookup("STN")
	assert.True(t, ok)
	assert.Equal(t, "123456", stn)

	frshtt, ok := records[0].Lookup("FRSHTT")
	assert.True(t, ok)
	assert.Equal(t, "010101", frshtt)

	wnddir, ok := records[0].Lookup("WNDDIR")
	assert.True(t, ok, "empty tag is present with empty text")
	assert.Empty(t, wnddir)

	_, ok = records[1].Lookup("TEMP")
	assert.False(t, ok)
}

func TestScanner_FeedsParser(t *testing.T) {
	records := drain(t, NewScanner(strings.NewReader(testDocument), DefaultRecordTag))
	p := domain.NewParser()

	m, err := p.Parse(records[0])
	require.NoError(t, err)
	assert.Equal(t, int32(123456), m.Station())
	assert.Equal(t, "-60.1", m.Field(domain.Temperature).String())
	assert.False(t, m.Field(domain.WindDirection).IsPresent())
	assert.Equal(t, domain.Events{Freeze: true, Snow: true, Storm: true, Tornado: true}, m.Events(), "010101 is decimal 10101")
}

func TestScanner_CustomRecordTag(t *testing.T) {
	doc := `<root><obs><STN>1</STN></obs><MEASUREMENT><STN>2</STN></MEASUREMENT></root>`
	records := drain(t, NewScanner(strings.NewReader(doc), "obs"))
	require.Len(t, records, 1)

	stn, _ := records[0].Lookup("STN")
	assert.Equal(t, "1", stn)
}

func TestScanner_LookupIgnoresGrandchildren(t *testing.T) {
	doc := `<MEASUREMENT><EXTRA><STN>9</STN></EXTRA></MEASUREMENT>`
	records := drain(t, NewScanner(strings.NewReader(doc), ""))
	require.Len(t, records, 1)

	_, ok := records[0].Lookup("STN")
	assert.False(t, ok)
}

func TestScanner_SyntaxError(t *testing.T) {
	s := NewScanner(strings.NewReader(`<WEATHERDATA><MEASUREMENT><STN>1</MEASUREMENT>`), "")
	_, err := s.Next(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestScanner_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(strings.NewReader(testDocument), "").Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanner_EmptyDocument(t *testing.T) {
	s := NewScanner(strings.NewReader(""), "")
	_, err := s.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.Zero(t, s.InputOffset())
}
