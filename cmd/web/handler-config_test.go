package main

import (
	"net/url"
	"strings"
	"testing"
)

func Test_application_config(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	t.Run("defaults notice before the first apply", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/config")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		if !strings.Contains(doc.Text(), "No config applied") {
			t.Error("Expected the built-in default notice")
		}
	})

	t.Run("invalid document is rejected whole", func(t *testing.T) {
		_, err := client.PostForm(ctx, "/config", url.Values{
			"config_json": {`{"cardioPriority":"sprint"}`},
		})
		if err == nil {
			t.Fatal("Expected an invalid config to be rejected")
		}
		if !strings.Contains(err.Error(), "422") {
			t.Errorf("Expected 422 for an invalid config, got: %v", err)
		}
	})

	t.Run("valid config applies and supersedes", func(t *testing.T) {
		config := `{
			"fatigueState": "accumulating",
			"cardioPriority": "build",
			"strengthPriority": "maintain",
			"climbingPriority": "maintain",
			"emphases": {"posterior_chain": "high"},
			"proximity": "normal"
		}`
		doc, err := client.PostForm(ctx, "/config", url.Values{"config_json": {config}})
		if err != nil {
			t.Fatalf("Failed to apply config: %v", err)
		}
		if !strings.Contains(doc.Text(), "Active config") {
			t.Error("Expected the active config section after apply")
		}

		second := strings.Replace(config, `"build"`, `"peak"`, 1)
		doc, err = client.PostForm(ctx, "/config", url.Values{"config_json": {second}})
		if err != nil {
			t.Fatalf("Failed to apply second config: %v", err)
		}
		if !strings.Contains(doc.Text(), "History") {
			t.Error("Expected the superseded config in history")
		}
	})
}
