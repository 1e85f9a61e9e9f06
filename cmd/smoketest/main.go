package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jlahtela/ridgeline/internal/e2etest"
	"github.com/jlahtela/ridgeline/internal/logging"
	"github.com/jlahtela/ridgeline/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

// checkPage fetches a page and asserts the expected heading is rendered.
func checkPage(ctx context.Context, client *e2etest.Client, path, heading string) error {
	doc, err := client.GetDoc(ctx, path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	if !strings.Contains(doc.Find("main").Text(), heading) {
		return fmt.Errorf("page %s is missing heading %q", path, heading)
	}
	return nil
}

// TestPages drives every page of the dashboard in parallel.
func TestPages(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	pages := []struct {
		path    string
		heading string
	}{
		{path: "/", heading: "Today"},
		{path: "/checkin", heading: "check-in"},
		{path: "/log", heading: "Activity log"},
		{path: "/status", heading: "Weekly status"},
		{path: "/config", heading: "Training config"},
		{path: "/objectives", heading: "Objectives"},
		{path: "/zones", heading: "Heart-rate zones"},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, page := range pages {
		g.Go(func() error {
			return checkPage(ctx, client, page.path, page.heading)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("check pages: %w", err)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = TestPages(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error checking pages", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
