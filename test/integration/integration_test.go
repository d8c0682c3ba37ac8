package integration_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/cloneai/internal/coordinator"
	"github.com/rpggio/cloneai/internal/domain/activity"
	"github.com/rpggio/cloneai/internal/domain/project"
	"github.com/rpggio/cloneai/internal/generation"
	"github.com/rpggio/cloneai/internal/persistence"
	"github.com/rpggio/cloneai/internal/repository/mocks"
	"github.com/rpggio/cloneai/internal/sqlite"
	"github.com/rpggio/cloneai/internal/testserver"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var noRedirect = &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}}

func postForm(t *testing.T, ts *testserver.TestServer, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := noRedirect.Post(ts.Server.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestIntegration_BrowserWorkflow(t *testing.T) {
	gen := new(mocks.Generator)
	gen.On("Generate", mock.Anything, " URL: https://apple.com", "").
		Return(generation.Result{Code: "export default ClonedWebsite;\nconst ClonedWebsite = () => <div>Hi</div>;", Analysis: "x"}, nil).Once()
	gen.On("Generate", mock.Anything, "dashboard", "").
		Return(nil, errors.New("503 overloaded")).Once()
	ts := testserver.New(t, "", gen)
	coord := ts.App.Coordinator

	resp := postForm(t, ts, "/clone", url.Values{"url": {"https://apple.com"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Eventually(t, func() bool { return coord.Snapshot().Phase == coordinator.PhaseSuccess }, 2*time.Second, 10*time.Millisecond)

	snap := coord.Snapshot()
	require.Equal(t, "https://apple.com", snap.Active.Name)
	require.Equal(t, coordinator.ViewPreview, snap.View)
	firstID := snap.Active.ID

	postForm(t, ts, "/new", nil)
	resp = postForm(t, ts, "/clone", url.Values{"description": {"dashboard"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Eventually(t, func() bool { return coord.Snapshot().Phase == coordinator.PhaseError }, 2*time.Second, 10*time.Millisecond)

	page, err := http.Get(ts.Server.URL + "/")
	require.NoError(t, err)
	defer page.Body.Close()
	var body strings.Builder
	_, err = io.Copy(&body, page.Body)
	require.NoError(t, err)
	require.Contains(t, body.String(), coordinator.FailureMessage)
	require.NotContains(t, body.String(), "503 overloaded")

	// The persisted value is the JSON array under the fixed key.
	raw, err := sqlite.NewKVStore(ts.App.DB).Get(context.Background(), persistence.ProjectsKey)
	require.NoError(t, err)
	var stored []project.Project
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Len(t, stored, 1)
	require.Equal(t, firstID, stored[0].ID)

	postForm(t, ts, "/projects/"+firstID+"/delete", nil)
	raw, err = sqlite.NewKVStore(ts.App.DB).Get(context.Background(), persistence.ProjectsKey)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, raw)

	entries, err := ts.App.Activity.GetRecentActivity(context.Background(), activity.ListActivityOptions{})
	require.NoError(t, err)
	types := make([]activity.ActivityType, 0, len(entries))
	for _, e := range entries {
		types = append(types, e.ActivityType)
	}
	require.Equal(t, []activity.ActivityType{
		activity.TypeProjectDeleted,
		activity.TypeCloneFailed,
		activity.TypeCloneRequested,
		activity.TypeCloneSucceeded,
		activity.TypeCloneRequested,
	}, types)
}

func TestIntegration_CorruptStorageStartsEmpty(t *testing.T) {
	ts := testserver.New(t, "", new(mocks.Generator))
	require.NoError(t, sqlite.NewKVStore(ts.App.DB).Set(context.Background(), persistence.ProjectsKey, "{not json"))

	_, err := coordinator.New(context.Background(), coordinator.Config{
		Store:     project.NewStore(persistence.NewAdapter(sqlite.NewKVStore(ts.App.DB)), nil),
		Generator: new(mocks.Generator),
	})
	require.NoError(t, err)
}
