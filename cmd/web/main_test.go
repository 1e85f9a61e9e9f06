package main

import (
	"testing"

	"github.com/jlahtela/ridgeline/internal/e2etest"
	"github.com/jlahtela/ridgeline/internal/testhelpers"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "RIDGELINE_SQLITE_URL":
		return ":memory:", true
	case "RIDGELINE_ADDR":
		return "localhost:0", true
	default:
		return "", false
	}
}

func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	return server
}
