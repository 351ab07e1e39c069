package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/station-data-ingest/internal/domain"
	"github.com/couchcryptid/station-data-ingest/internal/wire"
	"github.com/jessevdk/go-flags"
)

type CmdArgs struct {
	Timezone string `long:"timezone" default:"Local" description:"IANA zone used to print datetimes"`

	Positional struct {
		Files []string `positional-arg-name:"FILE" required:"1" description:".dat files to decode"`
	} `positional-args:"yes"`
}

func main() {
	args := CmdArgs{}
	if _, err := flags.Parse(&args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, "See 'inspect -h' for help")
		os.Exit(2)
	}

	loc, err := time.LoadLocation(args.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --timezone: %v\n", err)
		os.Exit(2)
	}

	failed := false
	for _, name := range args.Positional.Files {
		if err := inspect(os.Stdout, name, loc); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(w io.Writer, name string, loc *time.Location) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	rec, err := wire.Decode(data)
	if err != nil {
		return err
	}
	return printRecord(w, name, rec, loc)
}

func printRecord(w io.Writer, name string, r wire.Record, loc *time.Location) error {
	floats := []struct {
		name  string
		value float32
		field domain.Field
	}{
		{"dewpoint", r.Dewpoint, domain.DewPoint},
		{"fallenSnow", r.FallenSnow, domain.SnowDepth},
		{"overcast", r.Overcast, domain.CloudCover},
		{"precipitation", r.Precipitation, domain.Precipitation},
		{"seaAirPressure", r.SeaAirPressure, domain.SeaLevelPressure},
		{"stationAirPressure", r.StationAirPressure, domain.StationPressure},
		{"temperature", r.Temperature, domain.Temperature},
		{"visibility", r.Visibility, domain.Visibility},
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n", name)
	fmt.Fprintf(&sb, "\tstation = %d\n", r.Station)
	fmt.Fprintf(&sb, "\tdatetime = %s (%d)\n", r.Time(loc).Format(time.DateTime), r.Datetime)
	for _, f := range floats {
		fmt.Fprintf(&sb, "\t%s = %g %s\n", f.name, f.value, f.field.Spec().Unit)
	}
	fmt.Fprintf(&sb, "\tFRSHTT = %d\n", r.Events().Encode())

	_, err := io.WriteString(w, sb.String())
	return err
}
