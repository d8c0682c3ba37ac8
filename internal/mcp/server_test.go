package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/cloneai/internal/coordinator"
	"github.com/rpggio/cloneai/internal/domain/activity"
	"github.com/rpggio/cloneai/internal/domain/project"
	"github.com/rpggio/cloneai/internal/generation"
	"github.com/rpggio/cloneai/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type activityStub struct {
	listFn func(context.Context, activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

func (a activityStub) GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	return a.listFn(ctx, opts)
}

func newTestCoordinator(t *testing.T, gen *mocks.Generator, initial []project.Project) *coordinator.Coordinator {
	t.Helper()
	persister := new(mocks.Persister)
	persister.On("Load", mock.Anything).Return(initial, nil)
	persister.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()

	coord, err := coordinator.New(context.Background(), coordinator.Config{
		Store:     project.NewStore(persister, nil),
		Generator: gen,
	})
	require.NoError(t, err)
	return coord
}

func connect(t *testing.T, services Services) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	server := NewServer(Config{Services: services, TransportMode: "stdio"})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) (*sdkmcp.CallToolResult, string) {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return res, text.Text
}

func TestListTools(t *testing.T) {
	session := connect(t, Services{Coordinator: newTestCoordinator(t, new(mocks.Generator), nil)})

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	for _, def := range buildToolCatalog() {
		require.Contains(t, names, def.Name)
	}
}

func TestCloneWebsite(t *testing.T) {
	gen := new(mocks.Generator)
	gen.On("Generate", mock.Anything, " URL: https://apple.com", "").
		Return(generation.Result{Code: "const ClonedWebsite = () => <div>Hi</div>;", Analysis: "x"}, nil)
	coord := newTestCoordinator(t, gen, nil)
	session := connect(t, Services{Coordinator: coord})

	res, text := callTool(t, session, "clone_website", map[string]any{"url": "https://apple.com"})
	require.False(t, res.IsError)

	var proj project.Project
	require.NoError(t, json.Unmarshal([]byte(text), &proj))
	require.Equal(t, "https://apple.com", proj.Name)
	require.Equal(t, "x", proj.Analysis)

	_, text = callTool(t, session, "get_state", nil)
	var state StateResponse
	require.NoError(t, json.Unmarshal([]byte(text), &state))
	require.Equal(t, coordinator.PhaseSuccess, state.Phase)
	require.Equal(t, coordinator.ViewPreview, state.View)
	require.Equal(t, proj.ID, state.ActiveProjectID)
	require.Equal(t, 1, state.ProjectCount)
}

func TestCloneWebsite_Errors(t *testing.T) {
	gen := new(mocks.Generator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("bad key"))
	session := connect(t, Services{Coordinator: newTestCoordinator(t, gen, nil)})

	res, text := callTool(t, session, "clone_website", map[string]any{})
	require.True(t, res.IsError)
	require.Contains(t, text, "EMPTY_REQUEST")

	res, text = callTool(t, session, "clone_website", map[string]any{"description": "a blog"})
	require.True(t, res.IsError)
	require.Contains(t, text, "CLONE_FAILED")
	require.Contains(t, text, coordinator.FailureMessage)
	require.NotContains(t, text, "bad key")
}

func TestProjectTools(t *testing.T) {
	initial := []project.Project{
		{ID: "b", Name: "second", Code: "const x = 1;", Timestamp: 2},
		{ID: "a", Name: "first", Code: "export default ClonedWebsite;", ImageURL: "data:image/png;base64,AA==", Timestamp: 1},
	}
	session := connect(t, Services{Coordinator: newTestCoordinator(t, new(mocks.Generator), initial)})

	_, text := callTool(t, session, "list_projects", nil)
	var summaries []ProjectSummaryResponse
	require.NoError(t, json.Unmarshal([]byte(text), &summaries))
	require.Len(t, summaries, 2)
	require.Equal(t, "b", summaries[0].ID)
	require.True(t, summaries[1].HasImage)
	require.NotContains(t, text, "const x")

	_, text = callTool(t, session, "get_project", map[string]any{"id": "a"})
	require.Contains(t, text, `"name":"first"`)

	res, text := callTool(t, session, "get_project", map[string]any{"id": "zzz"})
	require.True(t, res.IsError)
	require.Contains(t, text, "PROJECT_NOT_FOUND")

	_, text = callTool(t, session, "render_code", map[string]any{"id": "b"})
	var rendered RenderResponse
	require.NoError(t, json.Unmarshal([]byte(text), &rendered))
	require.Equal(t, "naive", rendered.Highlighter)
	require.Equal(t, `<span class="text-blue-400">const</span> x = 1;`, rendered.HTML)

	_, text = callTool(t, session, "render_preview", map[string]any{"id": "a"})
	require.NoError(t, json.Unmarshal([]byte(text), &rendered))
	require.True(t, strings.HasPrefix(rendered.HTML, "<!DOCTYPE html>"))
	require.NotContains(t, rendered.HTML, "export default ClonedWebsite;")

	_, text = callTool(t, session, "delete_project", map[string]any{"id": "a"})
	require.Contains(t, text, `"deleted":"a"`)

	_, text = callTool(t, session, "list_projects", nil)
	require.NoError(t, json.Unmarshal([]byte(text), &summaries))
	require.Len(t, summaries, 1)
}

func TestGetRecentActivity(t *testing.T) {
	var gotOpts activity.ListActivityOptions
	stub := activityStub{listFn: func(_ context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
		gotOpts = opts
		return []activity.ActivityEntry{{ID: 1, ActivityType: activity.TypeCloneFailed, Summary: "Clone failed", Details: "401"}}, nil
	}}
	session := connect(t, Services{
		Coordinator: newTestCoordinator(t, new(mocks.Generator), nil),
		Activity:    stub,
	})

	res, text := callTool(t, session, "get_recent_activity", map[string]any{"type": "clone_failed", "limit": 5})
	require.False(t, res.IsError)
	require.Contains(t, text, `"details":"401"`)
	require.NotNil(t, gotOpts.ActivityType)
	require.Equal(t, activity.TypeCloneFailed, *gotOpts.ActivityType)
	require.Equal(t, 5, gotOpts.Limit)

	res, text = callTool(t, session, "get_recent_activity", map[string]any{"type": "bogus"})
	require.True(t, res.IsError)
	require.Contains(t, text, "INVALID_INPUT")
}

func TestDocResource(t *testing.T) {
	session := connect(t, Services{Coordinator: newTestCoordinator(t, new(mocks.Generator), nil)})

	res, err := session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "cloneai://docs/index"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "CLONE_IN_FLIGHT")
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("other")))
	require.Equal(t, "PROJECT_NOT_FOUND", MapError(project.ErrProjectNotFound).Code)
	require.Equal(t, "CLONE_IN_FLIGHT", MapError(coordinator.ErrCloneInFlight).Code)
	require.Equal(t, coordinator.FailureMessage, MapError(coordinator.ErrCloneFailed).Message)
}
