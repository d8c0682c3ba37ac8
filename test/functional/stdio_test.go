package functional_test

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func findBinary(t *testing.T) string {
	t.Helper()
	for _, path := range []string{"./bin/cloneai", "../../bin/cloneai"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("Server binary not found. Run 'make build' first.")
	return ""
}

func TestStdio_ProtocolCompliance(t *testing.T) {
	binaryPath := findBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "mcp")
	cmd.Env = append(os.Environ(),
		"CLONEAI_DB_PATH=:memory:",
		"CLONEAI_LOG_LEVEL=debug",
		"GEMINI_API_KEY=",
		"API_KEY=",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err, "Failed to connect to server")
	defer session.Close()

	t.Run("ServerInfo", func(t *testing.T) {
		initResult := session.InitializeResult()
		require.NotNil(t, initResult)
		require.Equal(t, "cloneai", initResult.ServerInfo.Name)
	})

	t.Run("ListProjectsEmpty", func(t *testing.T) {
		raw, isErr := callTool(t, session, "list_projects", nil)
		require.False(t, isErr)
		require.JSONEq(t, `[]`, string(raw))
	})

	t.Run("CloneWithoutKeyFails", func(t *testing.T) {
		raw, isErr := callTool(t, session, "clone_website", map[string]any{"description": "a blog"})
		require.True(t, isErr)
		require.Contains(t, string(raw), "CLONE_FAILED")
	})
}
