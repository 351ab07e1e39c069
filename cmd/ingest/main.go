package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/station-data-ingest/internal/adapter/filestore"
	"github.com/couchcryptid/station-data-ingest/internal/adapter/xmlsource"
	"github.com/couchcryptid/station-data-ingest/internal/config"
	"github.com/couchcryptid/station-data-ingest/internal/domain"
	"github.com/couchcryptid/station-data-ingest/internal/observability"
	"github.com/couchcryptid/station-data-ingest/internal/pipeline"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

type CmdArgs struct {
	BaseDir    string `long:"dir" description:"base directory for measurement files, overrides DATA_DIR"`
	Timezone   string `long:"timezone" description:"IANA zone used to read DATE/TIME, overrides TIMEZONE"`
	RecordTag  string `long:"record-tag" description:"element name of one record, overrides RECORD_TAG"`
	RangeCheck bool   `long:"range-check" description:"reject field values outside their physical range"`
	EnvFile    string `long:"env-file" default:".env" description:"optional file of environment defaults"`

	Positional struct {
		Files []string `positional-arg-name:"FILE" description:"XML files to ingest; none or '-' reads stdin"`
	} `positional-args:"yes"`
}

func main() {
	args := CmdArgs{}
	if _, err := flags.Parse(&args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, "See 'ingest -h' for help")
		os.Exit(2)
	}

	if err := godotenv.Load(args.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load env file", "path", args.EnvFile, "error", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(&args)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	parser := domain.NewParser(
		domain.WithLocation(cfg.Location),
		domain.WithEventRadix(cfg.EventCodeRadix),
		domain.WithRangeCheck(cfg.RangeCheck),
	)
	persister := pipeline.NewPersister(filestore.New())
	ingester := pipeline.New(parser, persister, cfg.DataDir, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("ingest starting",
		"data_dir", cfg.DataDir,
		"timezone", cfg.Timezone,
		"event_code_radix", cfg.EventCodeRadix,
		"range_check", cfg.RangeCheck,
	)

	failed := ingestAll(ctx, ingester, cfg.RecordTag, args.Positional.Files, logger)

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("write metrics textfile failed", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if failed > 0 {
		logger.Error("ingest finished with failed inputs", "failed", failed)
		stop()
		os.Exit(1)
	}
	logger.Info("ingest complete")
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(args *CmdArgs) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if args.BaseDir != "" {
		cfg.DataDir = args.BaseDir
	}
	if args.RecordTag != "" {
		cfg.RecordTag = args.RecordTag
	}
	if args.RangeCheck {
		cfg.RangeCheck = true
	}
	if args.Timezone != "" {
		loc, err := time.LoadLocation(args.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid --timezone: %w", err)
		}
		cfg.Timezone = args.Timezone
		cfg.Location = loc
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ingestAll runs every input in order and returns how many could not be
// fully read. Cancellation stops before the next input.
func ingestAll(ctx context.Context, ing *pipeline.Ingester, recordTag string, files []string, logger *slog.Logger) int {
	if len(files) == 0 {
		files = []string{"-"}
	}

	failed := 0
	for _, name := range files {
		if ctx.Err() != nil {
			logger.Warn("ingest interrupted", "remaining_from", name)
			return failed + 1
		}
		if err := ingestFile(ctx, ing, recordTag, name, logger); err != nil {
			logger.Error("input failed", "input", name, "error", err)
			failed++
		}
	}
	return failed
}

func ingestFile(ctx context.Context, ing *pipeline.Ingester, recordTag, name string, logger *slog.Logger) error {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	sum, err := ing.Run(ctx, xmlsource.NewScanner(r, recordTag))
	logger.Info("input ingested",
		"input", name,
		"read", sum.Read,
		"persisted", sum.Persisted,
		"skipped", sum.Skipped,
		"elapsed", sum.Elapsed,
	)
	return err
}
