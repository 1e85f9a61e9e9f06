package main

import (
	"net/url"
	"strings"
	"testing"
)

func Test_application_zones(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	t.Run("default zones derive from the age formula", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/zones")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		// Age 40 default: zone 5 tops out at 180.
		if !strings.Contains(doc.Text(), "180") {
			t.Error("Expected the age-40 default ceiling in the zone table")
		}
	})

	t.Run("switching to MAF recomputes the table", func(t *testing.T) {
		doc, err := client.PostForm(ctx, "/zones", url.Values{
			"method": {"maf"},
			"age":    {"35"},
		})
		if err != nil {
			t.Fatalf("Failed to save method: %v", err)
		}
		// MAF for age 35 is 145, the zone 2 ceiling.
		if !strings.Contains(doc.Text(), "145") {
			t.Error("Expected the MAF ceiling in the zone table")
		}
	})

	t.Run("overlapping custom zones are rejected with the table unchanged", func(t *testing.T) {
		_, err := client.PostForm(ctx, "/zones/custom", url.Values{
			"zone1_high": {"150"},
			"zone2_high": {"130"},
			"zone3_high": {"150"},
			"zone4_high": {"170"},
		})
		if err == nil {
			t.Fatal("Expected overlapping zones to be rejected")
		}
		if !strings.Contains(err.Error(), "422") {
			t.Errorf("Expected 422 for overlapping zones, got: %v", err)
		}

		doc, err := client.GetDoc(ctx, "/zones")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		if !strings.Contains(doc.Text(), "145") {
			t.Error("Rejected custom zones must not replace the stored method")
		}
	})

	t.Run("valid custom zones are stored", func(t *testing.T) {
		doc, err := client.PostForm(ctx, "/zones/custom", url.Values{
			"zone1_high": {"110"},
			"zone2_high": {"130"},
			"zone3_high": {"150"},
			"zone4_high": {"170"},
		})
		if err != nil {
			t.Fatalf("Failed to save custom zones: %v", err)
		}
		if !strings.Contains(doc.Text(), "custom") {
			t.Error("Expected the custom method after saving ceilings")
		}
	})

	t.Run("weight unit preference persists", func(t *testing.T) {
		doc, err := client.PostForm(ctx, "/zones/unit", url.Values{
			"weight_unit": {"kg"},
		})
		if err != nil {
			t.Fatalf("Failed to save weight unit: %v", err)
		}
		if doc.Find("option[value='kg'][selected]").Length() != 1 {
			t.Error("Expected kilograms to be the selected unit")
		}
	})
}

func Test_application_notFound(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	resp, err := client.Get(ctx, "/no-such-page")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != 404 {
		t.Errorf("Expected 404 for an unknown path, got %d", resp.StatusCode)
	}
}
