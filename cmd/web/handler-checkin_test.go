package main

import (
	"net/url"
	"strings"
	"testing"
)

func Test_application_checkIn(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	t.Run("form renders with defaults", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/checkin")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		if doc.Find("form[action='/checkin']").Length() != 1 {
			t.Error("Expected the check-in form")
		}
		if doc.Find("form[action='/checkin/reclassify']").Length() != 0 {
			t.Error("Re-classify must not show before the first save")
		}
	})

	t.Run("save and edit preserve the classification snapshot", func(t *testing.T) {
		if _, err := client.PostForm(ctx, "/checkin", url.Values{
			"sleep_quality": {"good"},
			"sleep_hours":   {"8"},
			"legs":          {"4"},
			"energy":        {"4"},
			"motivation":    {"4"},
		}); err != nil {
			t.Fatalf("Failed to save check-in: %v", err)
		}

		doc, err := client.GetDoc(ctx, "/checkin")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		if !strings.Contains(doc.Text(), "Saved classification: full") {
			t.Error("Expected a full classification after a good check-in")
		}

		// Editing with worse inputs keeps the original snapshot.
		if _, err = client.PostForm(ctx, "/checkin", url.Values{
			"sleep_quality": {"poor"},
			"sleep_hours":   {"4"},
			"legs":          {"4"},
			"energy":        {"4"},
			"motivation":    {"4"},
		}); err != nil {
			t.Fatalf("Failed to edit check-in: %v", err)
		}
		doc, err = client.GetDoc(ctx, "/checkin")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		if !strings.Contains(doc.Text(), "Saved classification: full") {
			t.Error("Editing a check-in must preserve the original classification")
		}

		// The explicit re-classify action recomputes it.
		doc, err = client.SubmitForm(ctx, doc, "/checkin/reclassify", nil)
		if err != nil {
			t.Fatalf("Failed to re-classify: %v", err)
		}
		if !strings.Contains(doc.Text(), "Saved classification: rest") {
			t.Error("Re-classify must recompute against the edited fields")
		}
	})

	t.Run("manual baseline fallbacks round-trip", func(t *testing.T) {
		doc, err := client.PostForm(ctx, "/checkin/baseline", url.Values{
			"manual_hrv":        {"62"},
			"manual_resting_hr": {"50"},
		})
		if err != nil {
			t.Fatalf("Failed to save baseline fallbacks: %v", err)
		}
		if value, _ := doc.Find("input[name='manual_hrv']").Attr("value"); value != "62" {
			t.Errorf("Expected manual HRV 62 in the form, got %q", value)
		}
	})
}
