package hermes

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClose_UnreachableServerReturnsPromptly(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Nothing listens on port 1; the client keeps retrying in the background.
	client, err := NewClient(context.Background(), "nats://127.0.0.1:1", "", logger)
	require.NoError(t, err)
	assert.False(t, client.conn.IsConnected())

	start := time.Now()
	client.Close()
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, client.conn.IsClosed())
}
