// Package main implements the calendar dimension seeding command. It
// prompts for a year range (or takes it from flags), then inserts one row
// per day into the calendar_days table.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver

	"github.com/mbranch/crud-api/internal/config"
	"github.com/mbranch/crud-api/internal/platform/logger"
	"github.com/mbranch/crud-api/internal/platform/postgres"
	"github.com/mbranch/crud-api/internal/service"
	"github.com/mbranch/crud-api/internal/store"
)

// maxPromptAttempts bounds how often an interactive prompt re-asks after
// invalid input before the command gives up.
const maxPromptAttempts = 3

func main() {
	startYear := flag.Int("start", 0, "first year to seed (prompted for when omitted)")
	endYear := flag.Int("end", 0, "last year to seed (prompted for when omitted)")
	flag.Parse()

	if err := run(*startYear, *endYear); err != nil {
		log.Fatalf("calendar seeding failed: %v", err)
	}
}

func run(startYear, endYear int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	in := bufio.NewReader(os.Stdin)

	if startYear == 0 {
		startYear, err = promptYear(in, os.Stdout, "Start year", service.ValidateYear)
		if err != nil {
			return err
		}
	}
	if endYear == 0 {
		endYear, err = promptYear(in, os.Stdout, "End year", func(year int) error {
			return service.ValidateYearRange(startYear, year)
		})
		if err != nil {
			return err
		}
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// The whole seed runs in one transaction so a mid-range failure leaves
	// no partial calendar behind.
	var rows int64
	err = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		seeder := service.NewCalendarSeeder(postgres.NewCalendarStore(tx, appLogger), appLogger)
		rows, err = seeder.Seed(ctx, startYear, endYear)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d calendar rows for %d-%d.\n", rows, startYear, endYear)
	return nil
}

// promptYear asks for a year on stdout and reads it from the reader,
// re-asking on invalid input up to maxPromptAttempts times.
func promptYear(in *bufio.Reader, out io.Writer, label string, validate func(int) error) (int, error) {
	for attempt := 1; attempt <= maxPromptAttempts; attempt++ {
		fmt.Fprintf(out, "%s [%d-%d]: ", label, service.MinSeedYear, service.MaxSeedYear)

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}

		year, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintf(out, "Not a number: %s\n", strings.TrimSpace(line))
			continue
		}
		if err := validate(year); err != nil {
			fmt.Fprintf(out, "Invalid year: %v\n", err)
			continue
		}
		return year, nil
	}

	return 0, fmt.Errorf("no valid %s after %d attempts", strings.ToLower(label), maxPromptAttempts)
}
