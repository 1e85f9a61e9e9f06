package main

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func Test_application_activityLog(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()
	date := time.Now().UTC().Format(time.DateOnly)

	t.Run("log a cardio session", func(t *testing.T) {
		doc, err := client.PostForm(ctx, "/log/cardio", url.Values{
			"date":              {date},
			"activity_type":     {"Hike"},
			"duration_minutes":  {"90"},
			"elevation_gain_ft": {"1200"},
			"pack_weight_lbs":   {"35"},
		})
		if err != nil {
			t.Fatalf("Failed to log cardio: %v", err)
		}
		if doc.Find("form[action^='/log/cardio/']").Length() != 1 {
			t.Error("Expected one cardio session with a delete form")
		}
	})

	t.Run("log a climbing session", func(t *testing.T) {
		doc, err := client.PostForm(ctx, "/log/climbing", url.Values{
			"date":       {date},
			"discipline": {"bouldering"},
			"climbs":     {"V4 send\nV5 attempt\nV3 send"},
		})
		if err != nil {
			t.Fatalf("Failed to log climbing: %v", err)
		}
		row := doc.Find("form[action^='/log/climbing/']").Closest("tr")
		if !strings.Contains(row.Text(), "3") {
			t.Error("Expected three climbs in the session row")
		}
	})

	t.Run("delete a session", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/log")
		if err != nil {
			t.Fatalf("Failed to get log: %v", err)
		}
		action, exists := doc.Find("form[action^='/log/cardio/']").Attr("action")
		if !exists {
			t.Fatal("Expected a cardio delete form")
		}
		doc, err = client.PostForm(ctx, action, url.Values{})
		if err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if doc.Find("form[action^='/log/cardio/']").Length() != 0 {
			t.Error("Expected the cardio session to be gone")
		}
	})
}
