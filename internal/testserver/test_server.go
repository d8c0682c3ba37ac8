package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/cloneai/internal/app"
	"github.com/rpggio/cloneai/internal/config"
	"github.com/rpggio/cloneai/internal/coordinator"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Token  string
}

// New starts the full HTTP stack on an in-memory database. An empty token
// leaves /api and /mcp open.
func New(t *testing.T, token string, gen coordinator.Generator) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.DB.Path = fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	cfg.Auth.Token = token

	a, err := app.New(context.Background(), cfg, app.Options{Generator: gen})
	require.NoError(t, err)

	server := httptest.NewServer(a.Handler())
	ts := &TestServer{Server: server, App: a, Token: token}

	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return ts
}

// Do sends a request with the bearer token set.
func (ts *TestServer) Do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	if ts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.Token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// ConnectMCP opens an MCP client session against /mcp.
func (ts *TestServer) ConnectMCP(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	httpClient := &http.Client{Transport: bearerTransport{token: ts.Token, base: http.DefaultTransport}}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: httpClient,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if b.token == "" {
		return b.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(req)
}
