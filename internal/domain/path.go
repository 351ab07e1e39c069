package domain

import (
	"path/filepath"
	"strconv"
	"strings"
)

const (
	dateLayout = "2006-01-02"
	fileExt    = ".dat"
)

// Path returns where m is stored under base:
// base/<yyyy-MM-dd>/<station>/<hour>.dat, hour unpadded (5, not 05).
// Trailing separators on base collapse to exactly one.
func Path(base string, m Measurement) string {
	sep := string(filepath.Separator)
	base = strings.TrimRight(base, sep) + sep

	ts := m.Timestamp()
	return base +
		ts.Format(dateLayout) + sep +
		strconv.FormatInt(int64(m.Station()), 10) + sep +
		strconv.Itoa(ts.Hour()) + fileExt
}
