// Command seedhistory fills a running server with weeks of plausible
// check-ins and training sessions through the same forms the browser uses.
// Useful for exercising baselines, weekly status, and progression detection
// against something other than an empty database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jlahtela/ridgeline/internal/e2etest"
	"github.com/jlahtela/ridgeline/internal/logging"
	"github.com/jlahtela/ridgeline/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	historyWeeks            = 8
	daysPerWeek             = 7
	maxConcurrentOperations = 10
	seedTimeout             = 5 * time.Minute
	successRateThreshold    = 95.0
	percentageMultiplier    = 100
	expectedArgsCount       = 2
)

// checkInValues builds a morning check-in for the given day with small
// day-to-day variation so the recovery baseline has something to chew on.
func checkInValues(day time.Time) url.Values {
	seed := day.YearDay()
	hrv := 60 + seed%7
	restingHR := 52 + seed%4
	sleepHours := 7.0 + float64(seed%3)*0.5

	return url.Values{
		"date":          {day.Format(time.DateOnly)},
		"sleep_quality": {"good"},
		"sleep_hours":   {strconv.FormatFloat(sleepHours, 'f', 1, 64)},
		"hrv":           {strconv.Itoa(hrv)},
		"resting_hr":    {strconv.Itoa(restingHR)},
		"legs":          {"4"},
		"energy":        {"4"},
		"motivation":    {"4"},
	}
}

// seedDay posts a check-in plus the day's training through the web forms.
// The weekly pattern alternates hikes, strength work, and climbing so the
// stimulus overview lights up more than one dimension.
func seedDay(ctx context.Context, client *e2etest.Client, day time.Time) error {
	if _, err := client.PostForm(ctx, "/checkin", checkInValues(day)); err != nil {
		return fmt.Errorf("check-in for %s: %w", day.Format(time.DateOnly), err)
	}

	date := day.Format(time.DateOnly)
	weekday := day.Weekday()
	seed := day.YearDay()

	switch weekday {
	case time.Monday, time.Thursday:
		// Progressing bench press gives the overload detector real data.
		weight := 95 + (seed/daysPerWeek)%8*5
		if _, err := client.PostForm(ctx, "/log/strength", url.Values{
			"date":        {date},
			"exercise_id": {"bench-press"},
			"sets":        {"3"},
			"reps":        {"5"},
			"weight":      {strconv.Itoa(weight)},
			"unit":        {"lbs"},
		}); err != nil {
			return fmt.Errorf("strength for %s: %w", date, err)
		}
	case time.Wednesday:
		if _, err := client.PostForm(ctx, "/log/climbing", url.Values{
			"date":       {date},
			"discipline": {"bouldering"},
			"climbs":     {"V4 send\nV5 attempt\nV4 send"},
		}); err != nil {
			return fmt.Errorf("climbing for %s: %w", date, err)
		}
	case time.Saturday:
		if _, err := client.PostForm(ctx, "/log/cardio", url.Values{
			"date":              {date},
			"activity_type":     {"Hike"},
			"duration_minutes":  {strconv.Itoa(120 + seed%60)},
			"elevation_gain_ft": {strconv.Itoa(2000 + seed%500)},
			"pack_weight_lbs":   {"30"},
		}); err != nil {
			return fmt.Errorf("cardio for %s: %w", date, err)
		}
	case time.Tuesday, time.Friday, time.Sunday:
		// Rest or easy days, check-in only.
	}

	return nil
}

// SeedHistory posts the full history window day by day. Days run
// concurrently because every write lands on its own date.
func SeedHistory(ctx context.Context, client *e2etest.Client, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	var (
		successCount atomic.Int64
		failureCount atomic.Int64
	)

	now := time.Now().UTC()
	totalDays := historyWeeks * daysPerWeek

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)

	for i := range totalDays {
		day := now.AddDate(0, 0, -(totalDays - 1 - i))
		g.Go(func() error {
			if err := seedDay(ctx, client, day); err != nil {
				failureCount.Add(1)
				logger.LogAttrs(ctx, slog.LevelWarn, "failed to seed day",
					slog.String("date", day.Format(time.DateOnly)),
					slog.Any("error", err))
				return nil // Keep seeding the remaining days.
			}
			successCount.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("seed history: %w", err)
	}

	successRate := float64(successCount.Load()) / float64(totalDays) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "history seeded",
		slog.Int64("successful_days", successCount.Load()),
		slog.Int64("failed_days", failureCount.Load()),
		slog.Float64("success_rate", successRate))

	if successRate < successRateThreshold {
		return fmt.Errorf("seeding failed: success rate %.1f%% below threshold", successRate)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: seedhistory <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	serverURL := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		serverURL = "http://" + hostname
	}

	client, err := e2etest.NewClient(serverURL)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = SeedHistory(ctx, client, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error seeding history", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Seeding completed 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
