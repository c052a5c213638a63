package ingest

import (
	"os"
	"testing"

	"github.com/krishimarga/mandi-indexer/internal/logger"
)

// TestMain initializes the global logger the orchestrator logs through
func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
