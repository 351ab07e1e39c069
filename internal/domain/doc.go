// Package domain models daily weather-station observations.
//
// # Data Source
//
// Stations report one XML record per observation. Each record is a flat set
// of child tags under a record element, e.g.
//
//	<MEASUREMENT>
//	  <STN>123456</STN>
//	  <DATE>2009-09-13</DATE>
//	  <TIME>05:00:00</TIME>
//	  <TEMP>-60.1</TEMP>
//	  ...
//	  <FRSHTT>010101</FRSHTT>
//	</MEASUREMENT>
//
// The package never sees XML. Records arrive through the [Element] lookup,
// which returns the text of a named child tag or reports it absent.
//
// # Conventions
//
// Timestamp:
//
//	DATE (yyyy-MM-dd) and TIME (HH:mm:ss) are joined with a single space and
//	parsed as "yyyy-MM-dd HH:mm:ss" in the parser's location. Stored files
//	predate any timezone handling and were written in the host's local zone,
//	which is why [time.Local] is the default.
//
// Event code (FRSHTT):
//
//	Six cumulative daily flags packed into one integer. Bit 0 is freeze, then
//	rain, snow, hail, storm, tornado. The tag text is read as a decimal number
//	and only the low six bits are kept, as existing files were written. With
//	WithEventRadix(2) each digit is one flag instead.
//
// Field values:
//
//	Ten optional decimal quantities, see [Schema]. A missing or empty tag is
//	absent, never zero. Ranges and precisions are descriptive unless range
//	checking is enabled with [WithRangeCheck].
//
// # Storage Layout
//
// Each measurement lives at <base>/<yyyy-MM-dd>/<station>/<hour>.dat with the
// hour unpadded (see [Path]), one file per station per hour.
package domain
