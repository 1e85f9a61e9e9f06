package main

import (
	"net/url"
	"strings"
	"testing"
)

func Test_application_dashboard(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	t.Run("initial state recommends with defaults", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}

		if got := doc.Find("main h3").First().Text(); !strings.Contains(got, "Full body day") {
			t.Errorf("Expected a full body recommendation with no data, got %q", got)
		}
		if !strings.Contains(doc.Text(), "No check-in today") {
			t.Error("Expected the no-check-in warning note")
		}
		if !strings.Contains(doc.Text(), "No check-in yet today") {
			t.Error("Expected the check-in prompt")
		}
	})

	t.Run("poor sleep check-in turns the day into rest", func(t *testing.T) {
		doc, err := client.PostForm(ctx, "/checkin", url.Values{
			"sleep_quality": {"poor"},
			"sleep_hours":   {"5"},
			"legs":          {"3"},
			"energy":        {"3"},
			"motivation":    {"3"},
		})
		if err != nil {
			t.Fatalf("Failed to submit check-in: %v", err)
		}

		if got := doc.Find("main h3").First().Text(); !strings.Contains(got, "Rest Day") {
			t.Errorf("Expected a rest day after a poor-sleep check-in, got %q", got)
		}
		if !strings.Contains(doc.Text(), "Checked in for today") {
			t.Error("Expected the dashboard to show the check-in state")
		}
	})
}
