package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunCommand_InitLoggerFails(t *testing.T) {
	flags := &cmdFlags{
		LogLevel: "WrongLogLevel",
	}

	err := RunCommand(t.Context(), flags)
	assert.ErrorContains(t, err, "failed to init logger")
}

func TestRunCommand_LoadConfigFails(t *testing.T) {
	flags := &cmdFlags{
		LogLevel:   "info",
		ConfigPath: "/nonexistent/path/config.yaml",
	}

	err := RunCommand(t.Context(), flags)
	assert.ErrorContains(t, err, "failed to load config")
}

func TestRunCommand_MissingSearchIndex(t *testing.T) {
	t.Setenv("API_LISTEN", ":0")
	t.Setenv("STORAGE_BUCKET", "govreposcrape")

	err := RunCommand(t.Context(), &cmdFlags{LogLevel: "info"})
	assert.ErrorContains(t, err, "failed to create search client")
}

func TestRunCommand_MissingStorageBucket(t *testing.T) {
	t.Setenv("API_LISTEN", ":0")
	t.Setenv("SEARCH_INDEX", "code-search")

	err := RunCommand(t.Context(), &cmdFlags{LogLevel: "info"})
	assert.ErrorContains(t, err, "failed to create object store")
}

func TestRunCommand_Success(t *testing.T) {
	t.Setenv("API_LISTEN", ":0")
	t.Setenv("SEARCH_INDEX", "code-search")
	t.Setenv("SEARCH_ADDRESSES", "http://localhost:9200")
	t.Setenv("STORAGE_BUCKET", "govreposcrape")
	t.Setenv("STORAGE_REGION", "us-east-1")

	ctx, cancel := context.WithCancel(t.Context())

	go func() {
		time.Sleep(100 * time.Millisecond)

		cancel()
	}()

	err := RunCommand(ctx, &cmdFlags{LogLevel: "info"})
	assert.NoError(t, err, "expected RunCommand to succeed with valid configuration")
}
